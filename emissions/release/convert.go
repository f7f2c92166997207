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

// Package release converts emission datasets into particle releases
// for the FLEXPART Lagrangian dispersion model.
//
// Three kinds of source are supported: gridded NetCDF inventories with
// a fixed layout, NetCDF inventories whose coordinates are discovered
// from metadata, and tables of satellite fire detections. Each
// configured release Definition is sampled inside its zones, turned
// into Records by an Apportioner and written in the RELEASES file
// format by a Writer.
package release

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Config holds the inputs of a conversion.
type Config struct {
	// Source is the path to the emission dataset.
	Source string

	// Kind overrides the source kind chosen from the path when it is
	// not KindUnknown.
	Kind Kind

	// Options holds settings specific to the source kind.
	Options SourceOptions

	// Species is the FLEXPART species number of the released tracer.
	Species int

	// Definitions are the releases to convert, in output order.
	Definitions []*Definition

	// PartsPerRelease is the number of particles of each inventory
	// release.
	PartsPerRelease int

	// FireParticles is the particle budget of the dimmest fire detection
	// before the baseline reduction, and FireBaseline the fraction of
	// that budget held back.
	FireParticles int
	FireBaseline  float64

	// Recorders receive the records of every release.
	Recorders []Recorder
}

// Apportioner returns the apportionment policy for kind.
func (c *Config) Apportioner(kind Kind) Apportioner {
	if kind == KindFire {
		parts := c.FireParticles
		if parts <= 0 {
			parts = DefaultFireParticles
		}
		return ProportionalBudget{Parts: parts, Baseline: c.FireBaseline}
	}
	return MassConservation{Parts: c.PartsPerRelease}
}

// Validate checks every definition and the particle settings without
// touching any file.
func (c *Config) Validate() error {
	if len(c.Definitions) == 0 {
		return &ConfigurationError{Field: "releases", Msg: "no release is defined"}
	}
	if c.FireBaseline < 0 || c.FireBaseline >= 1 {
		return &ConfigurationError{Field: "FireBaseline", Msg: fmt.Sprintf(
			"baseline %g must be in [0, 1)", c.FireBaseline)}
	}
	names := make(map[string]bool)
	for _, d := range c.Definitions {
		if err := d.Validate(); err != nil {
			return err
		}
		if names[d.Name] {
			return &ConfigurationError{Field: "release " + d.Name, Msg: "release name is used more than once"}
		}
		names[d.Name] = true
	}
	return nil
}

// Convert writes the RELEASES file for cfg to w and returns the total
// number of particles released. Every definition is validated before
// the source is opened.
func Convert(cfg *Config, w io.Writer, log logrus.FieldLogger) (int, error) {
	kind, err := Select(cfg.Source, cfg.Kind)
	if err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	src, err := Open(kind, cfg.Source, cfg.Options)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	log.WithFields(logrus.Fields{
		"source": cfg.Source,
		"kind":   kind,
	}).Info("reading emissions")

	ap := cfg.Apportioner(kind)
	rw := NewWriter(w, cfg.Species)
	for _, d := range cfg.Definitions {
		qs, err := src.Extract(d)
		if err != nil {
			return 0, fmt.Errorf("release: extracting %s: %w", d.Name, err)
		}
		recs := ap.Apportion(d, qs)
		rlog := log.WithFields(logrus.Fields{
			"release": d.Name,
			"zones":   len(d.Zones),
			"quanta":  len(qs),
			"records": len(recs),
		})
		if len(recs) == 0 {
			rlog.Warn("release has no emissions in its zones")
		} else {
			rlog.Debug("release converted")
		}
		for _, r := range recs {
			if err := rw.Write(r); err != nil {
				return 0, fmt.Errorf("release: writing %s: %w", d.Name, err)
			}
		}
		for _, rec := range cfg.Recorders {
			if err := rec.Record(recs); err != nil {
				return 0, err
			}
		}
	}
	if err := rw.Flush(); err != nil {
		return 0, fmt.Errorf("release: writing RELEASES: %w", err)
	}
	log.WithField("records", humanize.Comma(int64(rw.Count()))).
		Infof("%s particles released", humanize.Comma(int64(rw.Total())))
	return rw.Total(), nil
}
