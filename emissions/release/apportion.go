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

package release

import (
	"math"
	"time"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// Default particle budgets.
const (
	DefaultPartsPerRelease = 10000
	DefaultFireParticles   = 10000
	DefaultFireBaseline    = 0.1
)

// A Record is one particle release in the RELEASES file.
type Record struct {
	Begin, End time.Time
	Footprint  *geom.Bounds
	ZMin, ZMax float64 // [m]
	Mass       float64 // [kg]
	Parts      int
	Zone       string
	Release    string
}

// An Apportioner turns the quanta of a release into release records.
type Apportioner interface {
	Apportion(d *Definition, qs []Quantum) []Record
}

func newRecord(d *Definition, q Quantum) Record {
	return Record{
		Begin:     d.Begin(),
		End:       d.Finish(),
		Footprint: q.Footprint,
		ZMin:      d.AltitudeMin,
		ZMax:      d.AltitudeMax,
		Zone:      q.Zone,
		Release:   d.Name,
	}
}

// MassConservation releases the mass of each quantum unchanged with a
// fixed number of particles, so the released mass equals the inventory
// mass.
type MassConservation struct {
	Parts int
}

// Apportion returns one record per quantum with non-zero mass. Sinks
// keep their negative mass.
func (m MassConservation) Apportion(d *Definition, qs []Quantum) []Record {
	parts := m.Parts
	if parts <= 0 {
		parts = DefaultPartsPerRelease
	}
	var recs []Record
	for _, q := range qs {
		if q.Value == 0 || math.IsNaN(q.Value) {
			continue
		}
		r := newRecord(d, q)
		r.Mass = q.Value
		r.Parts = parts
		recs = append(recs, r)
	}
	return recs
}

// ProportionalBudget assigns particles to fire detections in proportion
// to their brightness relative to the dimmest detection of the release.
// The dimmest detection gets Parts·(1-Baseline) particles. Every record
// carries a unit mass.
type ProportionalBudget struct {
	Parts    int
	Baseline float64
}

// Apportion returns one record per detection with positive brightness
// and a non-zero particle count.
func (p ProportionalBudget) Apportion(d *Definition, qs []Quantum) []Record {
	var b []float64
	for _, q := range qs {
		if q.Value > 0 {
			b = append(b, q.Value)
		}
	}
	if len(b) == 0 {
		return nil
	}
	bMin := floats.Min(b)
	budget := float64(p.Parts) * (1 - p.Baseline)
	var recs []Record
	for _, q := range qs {
		if !(q.Value > 0) {
			continue
		}
		parts := int(math.Floor(budget * (q.Value / bMin)))
		if parts <= 0 {
			continue
		}
		r := newRecord(d, q)
		r.Mass = 1
		r.Parts = parts
		recs = append(recs, r)
	}
	return recs
}
