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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/girafe/emissions/release"
	"github.com/spatialmodel/girafe/internal/hash"
)

// ErrNoEmissions is returned when a run releases no particles.
var ErrNoEmissions = errors.New("girafeutil: no emission sources found")

// ReleaseOptions holds the settings of a run that are not part of the
// scenario file.
type ReleaseOptions struct {
	// OutputFile is the RELEASES file to write. It defaults to
	// options/RELEASES in the working directory.
	OutputFile string

	// ShapeFile, if set, receives the footprint of every record.
	ShapeFile string

	// SourceKind overrides the source kind of the scenario.
	SourceKind string

	PartsPerRelease int
	FireParticles   int
	FireBaseline    float64

	// MinConfidence overrides the scenario fire confidence threshold
	// when it is not negative.
	MinConfidence float64

	// LogFile defaults to girafe-simulation.log in the working
	// directory.
	LogFile string
	Verbose bool
}

// releaseConfig maps the scenario and options to a conversion
// configuration and the selected source kind, without touching the
// emission dataset.
func releaseConfig(c *ConfigData, o *ReleaseOptions) (*release.Config, release.Kind, error) {
	defs, err := c.Definitions()
	if err != nil {
		return nil, release.KindUnknown, err
	}
	species, err := c.Species()
	if err != nil {
		return nil, release.KindUnknown, err
	}
	source, err := checkEmissions(c.Paths.Emissions)
	if err != nil {
		return nil, release.KindUnknown, err
	}
	kindName := o.SourceKind
	if kindName == "" {
		kindName = c.Flexpart.Releases.SourceKind
	}
	override, err := release.ParseKind(kindName)
	if err != nil {
		return nil, release.KindUnknown, &release.ConfigurationError{Field: "source_kind", Msg: err.Error()}
	}
	kind, err := release.Select(source, override)
	if err != nil {
		return nil, release.KindUnknown, err
	}
	minConf := o.MinConfidence
	if minConf < 0 {
		if minConf, err = c.MinConfidence(); err != nil {
			return nil, release.KindUnknown, err
		}
	}
	variable := c.Flexpart.Releases.Variable
	if variable == "" && kind == release.KindGridded {
		variable = release.DefaultVariable
	}
	cfg := &release.Config{
		Source: source,
		Kind:   kind,
		Options: release.SourceOptions{
			Variable:      variable,
			MinConfidence: minConf,
		},
		Species:         species,
		Definitions:     defs,
		PartsPerRelease: o.PartsPerRelease,
		FireParticles:   o.FireParticles,
		FireBaseline:    o.FireBaseline,
	}
	if err := cfg.Validate(); err != nil {
		return nil, release.KindUnknown, err
	}
	return cfg, kind, nil
}

// Releases writes the FLEXPART RELEASES file for scenario c, prints a
// summary of the run to stdout and returns the number of particles
// released. The scenario is validated before any file is created.
func Releases(stdout io.Writer, c *ConfigData, o *ReleaseOptions) (int, error) {
	cfg, kind, err := releaseConfig(c, o)
	if err != nil {
		return 0, err
	}
	outputFile, err := checkOutputFile(o.OutputFile, c.Paths.WorkingDir)
	if err != nil {
		return 0, err
	}
	log, closeLog, err := newLogger(stdout, checkLogFile(o.LogFile, c.Paths.WorkingDir, outputFile), o.Verbose)
	if err != nil {
		return 0, err
	}
	defer closeLog()

	total, err := writeReleases(log, stdout, cfg, kind, outputFile, o.ShapeFile)
	if err != nil {
		log.Error(err)
		return total, err
	}
	return total, nil
}

func writeReleases(log *logrus.Logger, stdout io.Writer, cfg *release.Config, kind release.Kind, outputFile, shapeFile string) (int, error) {
	summary := NewSummary(kind, cfg.Definitions)
	cfg.Recorders = append(cfg.Recorders, summary)
	if shapeFile != "" {
		shp, err := release.NewShapefileRecorder(os.ExpandEnv(shapeFile))
		if err != nil {
			return 0, err
		}
		defer shp.Close()
		cfg.Recorders = append(cfg.Recorders, shp)
	}

	log.WithFields(logrus.Fields{
		"file":     outputFile,
		"scenario": hash.Key(cfg.Definitions),
	}).Info("Preparing RELEASES file for FLEXPART")
	f, err := os.Create(outputFile)
	if err != nil {
		return 0, fmt.Errorf("girafeutil: problem creating RELEASES file: %v", err)
	}
	total, err := release.Convert(cfg, f, log)
	if err != nil {
		f.Close()
		os.Remove(outputFile)
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("girafeutil: problem closing RELEASES file: %v", err)
	}
	fmt.Fprintln(stdout, summary.Render())
	if total == 0 {
		return 0, ErrNoEmissions
	}
	return total, nil
}

// Check validates scenario c and its zones without reading the
// emission dataset, and logs what a run would do.
func Check(log logrus.FieldLogger, c *ConfigData, o *ReleaseOptions) error {
	cfg, kind, err := releaseConfig(c, o)
	if err != nil {
		return err
	}
	var zones int
	for _, d := range cfg.Definitions {
		zones += len(d.Zones)
		log.WithFields(logrus.Fields{
			"release": d.Name,
			"begin":   d.Begin().Format("2006-01-02 15:04:05"),
			"end":     d.Finish().Format("2006-01-02 15:04:05"),
			"zones":   len(d.Zones),
		}).Info("release is valid")
	}
	fields := logrus.Fields{
		"scenario": hash.Key(cfg.Definitions),
		"source":   cfg.Source,
		"kind":     kind,
		"releases": len(cfg.Definitions),
		"zones":    zones,
	}
	if _, err := os.Stat(cfg.Source); err != nil {
		log.WithFields(fields).Warn("emission dataset is not readable")
		return nil
	}
	log.WithFields(fields).Info("configuration is valid")
	return nil
}
