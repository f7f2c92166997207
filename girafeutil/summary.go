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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spatialmodel/girafe/emissions/release"
	"gonum.org/v1/gonum/floats"
)

// summaryRow holds the totals of one release.
type summaryRow struct {
	name    string
	zones   int
	records int
	parts   int
	mass    []float64
}

// Summary is a release.Recorder that tallies records per release.
type Summary struct {
	kind  release.Kind
	rows  []*summaryRow
	index map[string]*summaryRow
}

// NewSummary returns a Summary with one row per definition, in order.
func NewSummary(kind release.Kind, defs []*release.Definition) *Summary {
	s := &Summary{kind: kind, index: make(map[string]*summaryRow)}
	for _, d := range defs {
		r := &summaryRow{name: d.Name, zones: len(d.Zones)}
		s.rows = append(s.rows, r)
		s.index[d.Name] = r
	}
	return s
}

// Record implements release.Recorder.
func (s *Summary) Record(recs []release.Record) error {
	for _, rec := range recs {
		r, ok := s.index[rec.Release]
		if !ok {
			return fmt.Errorf("girafeutil: summary: unknown release %q", rec.Release)
		}
		r.records++
		r.parts += rec.Parts
		r.mass = append(r.mass, rec.Mass)
	}
	return nil
}

// Render returns the summary as a table.
func (s *Summary) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Release", "Kind", "Zones", "Records", "Particles", "Mass"})
	var records, parts int
	var mass float64
	for _, r := range s.rows {
		m := floats.Sum(r.mass)
		tw.AppendRow(table.Row{
			r.name,
			s.kind.String(),
			r.zones,
			humanize.Comma(int64(r.records)),
			humanize.Comma(int64(r.parts)),
			fmt.Sprintf("%.4E", m),
		})
		records += r.records
		parts += r.parts
		mass += m
	}
	tw.AppendFooter(table.Row{"Total", "", "",
		humanize.Comma(int64(records)),
		humanize.Comma(int64(parts)),
		fmt.Sprintf("%.4E", mass),
	})

	configs := make([]table.ColumnConfig, 0, 6)
	for i := 1; i <= 6; i++ {
		align := text.AlignLeft
		if i > 2 {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i,
			Align:       align,
			AlignFooter: align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
