/*
Copyright © 2024 the GIRAFE authors.
This file is part of GIRAFE.

GIRAFE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GIRAFE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GIRAFE.  If not, see <http://www.gnu.org/licenses/>.*/

package girafeutil

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/girafe/emissions/release"
	"github.com/spf13/cast"
)

// textValue holds the text of a scalar configuration node. TOML
// numbers and booleans are kept in their decimal form.
type textValue string

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *textValue) UnmarshalText(b []byte) error {
	*t = textValue(strings.TrimSpace(string(b)))
	return nil
}

func (t textValue) String() string { return string(t) }

// float parses the node as a float. field names the node in errors.
func (t textValue) float(field string) (float64, error) {
	if t == "" {
		return 0, &release.ConfigurationError{Field: field, Msg: "value is missing"}
	}
	v, err := cast.ToFloat64E(string(t))
	if err != nil {
		return 0, &release.ConfigurationError{Field: field, Msg: fmt.Sprintf("%q is not a number", t)}
	}
	return v, nil
}

// ConfigData holds a GIRAFE scenario.
type ConfigData struct {
	Paths struct {
		// WorkingDir is the FLEXPART working directory. The RELEASES
		// file is written to its options subdirectory by default.
		WorkingDir string `xml:"working_dir" toml:"working_dir"`

		// Emissions is the path to the emission dataset.
		Emissions string `xml:"emissions" toml:"emissions"`
	} `xml:"paths" toml:"paths"`

	Flexpart struct {
		Releases ReleasesConfig `xml:"releases" toml:"releases"`
	} `xml:"flexpart" toml:"flexpart"`
}

// ReleasesConfig holds the release settings of a scenario.
type ReleasesConfig struct {
	// Species is the FLEXPART species number of the released tracer.
	Species textValue `xml:"species" toml:"species"`

	// Variable is the emission variable of inventory sources.
	Variable string `xml:"variable" toml:"variable"`

	// MinConfidence is the detection confidence threshold of fire
	// sources.
	MinConfidence textValue `xml:"min_confidence" toml:"min_confidence"`

	// SourceKind optionally overrides the source kind chosen from the
	// emission file name.
	SourceKind string `xml:"source_kind" toml:"source_kind"`

	Release []ReleaseConfig `xml:"release" toml:"release"`
}

// ReleaseConfig holds one release episode.
type ReleaseConfig struct {
	Name        string       `xml:"name,attr" toml:"name"`
	StartDate   textValue    `xml:"start_date" toml:"start_date"`
	StartTime   textValue    `xml:"start_time" toml:"start_time"`
	EndTime     textValue    `xml:"end_time" toml:"end_time"`
	Duration    textValue    `xml:"duration" toml:"duration"`
	AltitudeMin textValue    `xml:"altitude_min" toml:"altitude_min"`
	AltitudeMax textValue    `xml:"altitude_max" toml:"altitude_max"`
	Zones       []ZoneConfig `xml:"zones>zone" toml:"zones"`
}

// ZoneConfig holds one release zone.
type ZoneConfig struct {
	Name   string    `xml:"name,attr" toml:"name"`
	LonMin textValue `xml:"lonmin" toml:"lonmin"`
	LonMax textValue `xml:"lonmax" toml:"lonmax"`
	LatMin textValue `xml:"latmin" toml:"latmin"`
	LatMax textValue `xml:"latmax" toml:"latmax"`
}

// ReadConfigFile reads a scenario from the XML or TOML file at path,
// choosing the format from the file extension.
func ReadConfigFile(path string) (*ConfigData, error) {
	path = os.ExpandEnv(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("girafeutil: problem opening configuration file: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML(f)
	case ".xml", "":
		return decodeXML(f)
	default:
		return nil, fmt.Errorf("girafeutil: configuration file %s must be XML or TOML", path)
	}
}

func decodeTOML(r io.Reader) (*ConfigData, error) {
	c := new(ConfigData)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("girafeutil: problem parsing configuration file: %v", err)
	}
	return c, nil
}

// decodeXML decodes the first girafe element in r, which may be the
// document root or one of its children.
func decodeXML(r io.Reader) (*ConfigData, error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, &release.ConfigurationError{Field: "girafe", Msg: "no girafe element in configuration file"}
		} else if err != nil {
			return nil, fmt.Errorf("girafeutil: problem parsing configuration file: %v", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "girafe" {
			continue
		}
		c := new(ConfigData)
		if err := d.DecodeElement(c, &se); err != nil {
			return nil, fmt.Errorf("girafeutil: problem parsing configuration file: %v", err)
		}
		return c, nil
	}
}

// Species returns the FLEXPART species number.
func (c *ConfigData) Species() (int, error) {
	s := c.Flexpart.Releases.Species
	if s == "" {
		return 0, &release.ConfigurationError{Field: "flexpart/releases/species", Msg: "value is missing"}
	}
	v, err := cast.ToIntE(string(s))
	if err != nil || v <= 0 {
		return 0, &release.ConfigurationError{Field: "flexpart/releases/species",
			Msg: fmt.Sprintf("%q is not a positive species number", s)}
	}
	return v, nil
}

// MinConfidence returns the fire detection confidence threshold, which
// is zero when it is not set.
func (c *ConfigData) MinConfidence() (float64, error) {
	if c.Flexpart.Releases.MinConfidence == "" {
		return 0, nil
	}
	return c.Flexpart.Releases.MinConfidence.float("flexpart/releases/min_confidence")
}

// Definitions maps the configured releases to release definitions, in
// document order.
func (c *ConfigData) Definitions() ([]*release.Definition, error) {
	rs := c.Flexpart.Releases.Release
	if len(rs) == 0 {
		return nil, &release.ConfigurationError{Field: "flexpart/releases", Msg: "no releases are defined"}
	}
	defs := make([]*release.Definition, len(rs))
	for i, r := range rs {
		d, err := r.definition(i)
		if err != nil {
			return nil, err
		}
		defs[i] = d
	}
	return defs, nil
}

func (r ReleaseConfig) definition(i int) (*release.Definition, error) {
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("release%d", i+1)
	}
	node := "release " + name
	at := func(err error, field string) error {
		if ce, ok := err.(*release.ConfigurationError); ok {
			return &release.ConfigurationError{Field: node + "/" + field, Msg: ce.Msg}
		}
		return err
	}

	d := &release.Definition{Name: name}
	var err error
	if d.Date, err = release.ParseDate(r.StartDate.String()); err != nil {
		return nil, at(err, "start_date")
	}
	if d.Start, err = release.ParseOffset(r.StartTime.String()); err != nil {
		return nil, at(err, "start_time")
	}
	switch {
	case r.EndTime != "":
		if d.End, err = release.ParseOffset(r.EndTime.String()); err != nil {
			return nil, at(err, "end_time")
		}
	case r.Duration != "":
		dur, err := release.ParseOffset(r.Duration.String())
		if err != nil {
			return nil, at(err, "duration")
		}
		d.End = d.Start + dur
	default:
		return nil, &release.ConfigurationError{Field: node, Msg: "either end_time or duration must be set"}
	}
	if d.AltitudeMin, err = r.AltitudeMin.float(node + "/altitude_min"); err != nil {
		return nil, err
	}
	if d.AltitudeMax, err = r.AltitudeMax.float(node + "/altitude_max"); err != nil {
		return nil, err
	}
	for j, zc := range r.Zones {
		z, err := zc.zone(node, j)
		if err != nil {
			return nil, err
		}
		d.Zones = append(d.Zones, z)
	}
	return d, nil
}

func (zc ZoneConfig) zone(node string, j int) (release.Zone, error) {
	z := release.Zone{Name: zc.Name}
	if z.Name == "" {
		z.Name = fmt.Sprintf("zone%d", j+1)
	}
	node += "/zone " + z.Name
	var err error
	for _, v := range []struct {
		field string
		text  textValue
		dst   *float64
	}{
		{"lonmin", zc.LonMin, &z.LonMin},
		{"lonmax", zc.LonMax, &z.LonMax},
		{"latmin", zc.LatMin, &z.LatMin},
		{"latmax", zc.LatMax, &z.LatMax},
	} {
		if *v.dst, err = v.text.float(node + "/" + v.field); err != nil {
			return z, err
		}
	}
	return z, nil
}

// checkOutputFile fills in the default RELEASES location when f is
// empty and makes sure the output directory exists.
func checkOutputFile(f, workingDir string) (string, error) {
	if f == "" {
		if workingDir == "" {
			return "", fmt.Errorf("girafeutil: you need to specify either an output file (--output) " +
				"or a working directory in the configuration file (paths/working_dir)")
		}
		f = filepath.Join(os.ExpandEnv(workingDir), "options", "RELEASES")
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(filepath.Dir(f)); err != nil {
		return f, fmt.Errorf("girafeutil: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, workingDir, outputFile string) string {
	if logFile != "" {
		return os.ExpandEnv(logFile)
	}
	if workingDir != "" {
		return filepath.Join(os.ExpandEnv(workingDir), "girafe-simulation.log")
	}
	return strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
}

// checkEmissions expands any environment variables in the emission
// dataset path.
func checkEmissions(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "" {
		return "", &release.ConfigurationError{Field: "paths/emissions", Msg: "value is missing"}
	}
	return path, nil
}
