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
)

// IrregularInventory reads emission inventories whose coordinate
// variables carry arbitrary names, such as CAMS or EDGAR files. The
// latitude and longitude variables are found through their metadata and
// the time axis is the first dimension of the emission variable.
type IrregularInventory struct {
	nc       *ncFile
	variable string

	latVar, lonVar string
	latAxis        int // position of the latitude dimension in variable
	lats, lons     []float64

	times []float64 // de-duplicated, in days since epoch
	keep  []int     // file index of each entry of times
	epoch float64   // InventoryEpoch offset of the time axis reference [days]
}

// OpenIrregularInventory opens the inventory at path and discovers the
// coordinates of variable, which must be set.
func OpenIrregularInventory(path, variable string) (*IrregularInventory, error) {
	if variable == "" {
		return nil, &ConfigurationError{Field: "variable",
			Msg: "the emission variable must be set for irregular inventories"}
	}
	nc, err := openNetCDF(path)
	if err != nil {
		return nil, err
	}
	g := &IrregularInventory{nc: nc, variable: variable}
	if err := g.load(); err != nil {
		nc.Close()
		return nil, err
	}
	return g, nil
}

func (g *IrregularInventory) load() error {
	h := g.nc.nc.Header
	dims := h.Dimensions(g.variable)
	if dims == nil {
		return fmt.Errorf("release: variable %s not found in %s", g.variable, g.nc.path)
	}
	if len(dims) != 3 {
		return fmt.Errorf("release: variable %s in %s has dimensions %v; expected [time, lat, lon] in any spatial order",
			g.variable, g.nc.path, dims)
	}

	var err error
	if g.latVar, err = g.nc.findCoordinate("latitude"); err != nil {
		return err
	}
	if g.lonVar, err = g.nc.findCoordinate("longitude"); err != nil {
		return err
	}
	latDims, lonDims := h.Dimensions(g.latVar), h.Dimensions(g.lonVar)
	if len(latDims) != 1 || len(lonDims) != 1 {
		return fmt.Errorf("release: coordinates %s and %s in %s must be one-dimensional",
			g.latVar, g.lonVar, g.nc.path)
	}
	switch {
	case dims[1] == latDims[0] && dims[2] == lonDims[0]:
		g.latAxis = 1
	case dims[1] == lonDims[0] && dims[2] == latDims[0]:
		g.latAxis = 2
	default:
		return fmt.Errorf("release: variable %s in %s is not defined on the %s and %s coordinates",
			g.variable, g.nc.path, g.latVar, g.lonVar)
	}
	if g.lats, err = g.nc.readAll(g.latVar); err != nil {
		return err
	}
	if g.lons, err = g.nc.readAll(g.lonVar); err != nil {
		return err
	}
	return g.loadTime(dims[0])
}

// loadTime reads the time coordinate named after the first dimension of
// the emission variable and converts it to days since InventoryEpoch.
func (g *IrregularInventory) loadTime(timeVar string) error {
	raw, err := g.nc.readAll(timeVar)
	if err != nil {
		return fmt.Errorf("release: reading time axis of %s: %w", g.variable, err)
	}
	toDays := 1.0
	if units := g.nc.stringAttr(timeVar, "units"); units != "" {
		epoch, f, err := ParseTimeUnits(units)
		if err != nil {
			return fmt.Errorf("release: time axis %s in %s: %w", timeVar, g.nc.path, err)
		}
		toDays = f
		g.epoch = float64(epoch.Unix()-InventoryEpoch.Unix()) / secondsPerDay
	}
	g.keep = DedupFirst(raw)
	g.times = make([]float64, len(g.keep))
	for i, k := range g.keep {
		g.times[i] = raw[k] * toDays
	}
	return nil
}

// Kind returns KindIrregular.
func (g *IrregularInventory) Kind() Kind { return KindIrregular }

// Close closes the inventory file.
func (g *IrregularInventory) Close() error { return g.nc.Close() }

// Extract returns the non-zero cells of the time slice nearest to the
// release date, walking each zone's latitude and longitude window
// independently.
func (g *IrregularInventory) Extract(d *Definition) ([]Quantum, error) {
	target := DaysSince(InventoryEpoch, d.Date) - g.epoch
	k, err := NearestIndex(g.times, target)
	if err != nil {
		return nil, fmt.Errorf("release: %s: %w", g.nc.path, err)
	}
	t := g.keep[k]
	ny, nx := len(g.lats), len(g.lons)
	if ny == 0 || nx == 0 {
		return nil, nil
	}
	end := []int{t, ny - 1, nx - 1}
	if g.latAxis == 2 {
		end = []int{t, nx - 1, ny - 1}
	}
	slice, err := g.nc.readSlab(g.variable, []int{t, 0, 0}, end)
	if err != nil {
		return nil, err
	}
	at := func(i, j int) float64 {
		if g.latAxis == 2 {
			return slice[j*ny+i]
		}
		return slice[i*nx+j]
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
				v := at(i, j)
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
