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
	"fmt"
	"math"
	"time"

	"github.com/ctessum/unit"
)

// DefaultVariable is the flux variable read from gridded inventories
// when none is configured.
const DefaultVariable = "sum"

// fluxDims are the dimensions of an emission flux [kg m-2 s-1].
var fluxDims = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -2, unit.TimeDim: -1}

// cellMass returns the mass [kg] emitted over dur by a cell with the
// given flux [kg m-2 s-1].
func cellMass(flux, dLat, dLon, lat float64, dur time.Duration) (float64, error) {
	m := unit.Mul(
		unit.New(flux, fluxDims),
		cellAreaUnit(dLat, dLon, lat),
		unit.New(dur.Seconds(), unit.Second),
	)
	if err := m.Check(unit.Kilogram); err != nil {
		return 0, fmt.Errorf("release: computing cell mass: %w", err)
	}
	return m.Value(), nil
}

// inclusiveIndices returns the indices of the coordinates that lie in
// [lo, hi], in storage order.
func inclusiveIndices(coords []float64, lo, hi float64) []int {
	var idx []int
	for i, c := range coords {
		if InRange(c, lo, hi) {
			idx = append(idx, i)
		}
	}
	return idx
}

// GriddedInventory reads a time-indexed gridded emission inventory with
// time, lat and lon coordinate variables and a [time, lat, lon] flux
// variable, as distributed for CEDS and CMIP inventories.
type GriddedInventory struct {
	nc       *ncFile
	variable string

	times, lats, lons []float64
}

// OpenGriddedInventory opens the inventory at path. variable names the
// flux variable; if empty, DefaultVariable is used.
func OpenGriddedInventory(path, variable string) (*GriddedInventory, error) {
	if variable == "" {
		variable = DefaultVariable
	}
	nc, err := openNetCDF(path)
	if err != nil {
		return nil, err
	}
	g := &GriddedInventory{nc: nc, variable: variable}
	if err := g.load(); err != nil {
		nc.Close()
		return nil, err
	}
	return g, nil
}

func (g *GriddedInventory) load() error {
	var err error
	if g.times, err = g.nc.readAll("time"); err != nil {
		return err
	}
	if g.lats, err = g.nc.readAll("lat"); err != nil {
		return err
	}
	if g.lons, err = g.nc.readAll("lon"); err != nil {
		return err
	}
	l := g.nc.lengths(g.variable)
	if l == nil {
		return fmt.Errorf("release: variable %s not found in %s", g.variable, g.nc.path)
	}
	if len(l) != 3 || l[1] != len(g.lats) || l[2] != len(g.lons) {
		return fmt.Errorf("release: variable %s in %s has shape %v; expected [time, lat(%d), lon(%d)]",
			g.variable, g.nc.path, l, len(g.lats), len(g.lons))
	}
	return nil
}

// Kind returns KindGridded.
func (g *GriddedInventory) Kind() Kind { return KindGridded }

// Close closes the inventory file.
func (g *GriddedInventory) Close() error { return g.nc.Close() }

// Extract returns the non-zero cells of every zone of d at the time
// step nearest to the release date, with Value holding the mass emitted
// over the release duration.
func (g *GriddedInventory) Extract(d *Definition) ([]Quantum, error) {
	t, err := NearestIndex(g.times, DaysSince(InventoryEpoch, d.Date))
	if err != nil {
		return nil, fmt.Errorf("release: %s: %w", g.nc.path, err)
	}
	ny, nx := len(g.lats), len(g.lons)
	if ny == 0 || nx == 0 {
		return nil, nil
	}
	flux, err := g.nc.readSlab(g.variable, []int{t, 0, 0}, []int{t, ny - 1, nx - 1})
	if err != nil {
		return nil, err
	}
	dur := d.Duration()
	var qs []Quantum
	for _, z := range d.Zones {
		rows := inclusiveIndices(g.lats, z.LatMin, z.LatMax)
		cols := inclusiveIndices(g.lons, z.LonMin, z.LonMax)
		for _, i := range rows {
			lat := g.lats[i]
			dLat := gridPointsToGridSpacing(g.lats, i)
			for _, j := range cols {
				v := flux[i*nx+j]
				if v == 0 || math.IsNaN(v) {
					continue
				}
				m, err := cellMass(v, dLat, gridPointsToGridSpacing(g.lons, j), lat, dur)
				if err != nil {
					return nil, err
				}
				qs = append(qs, Quantum{
					Zone:      z.Name,
					Lat:       lat,
					Lon:       g.lons[j],
					Value:     m,
					Footprint: pointBounds(lat, g.lons[j]),
					Row:       i,
					Col:       j,
				})
			}
		}
	}
	return qs, nil
}
