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

	"github.com/ctessum/geom"
	"github.com/ctessum/unit"
)

// EarthRadius is the radius of the Earth in meters.
const EarthRadius = 6378.1e3

// metersPerDegree is the length of one degree of a great circle.
const metersPerDegree = 2 * math.Pi * EarthRadius / 360

// CellArea returns the surface area [m²] of a grid cell centered at
// latitude lat [degrees] with angular sizes dLat and dLon [degrees].
func CellArea(dLat, dLon, lat float64) float64 {
	dy := math.Abs(dLat) * metersPerDegree
	dx := math.Abs(dLon) * metersPerDegree * math.Cos(lat*math.Pi/180)
	return dx * dy
}

// cellAreaUnit is CellArea with dimensions attached.
func cellAreaUnit(dLat, dLon, lat float64) *unit.Unit {
	return unit.New(CellArea(dLat, dLon, lat), unit.Meter2)
}

// gridPointsToGridSpacing returns the size of the grid cell at index
// i when given the grid center points.
func gridPointsToGridSpacing(gridPoints []float64, i int) float64 {
	if len(gridPoints) < 2 {
		return 0
	}
	if i == 0 {
		return gridPoints[1] - gridPoints[0]
	} else if i == len(gridPoints)-1 {
		return gridPoints[len(gridPoints)-1] - gridPoints[len(gridPoints)-2]
	}
	return (gridPoints[i+1] - gridPoints[i-1]) / 2
}

// Footprint returns the ground footprint of a point detection centered
// at (lat, lon) whose along-track and cross-track pixel sizes are
// trackKm and scanKm. Latitude half-widths use the constant length of
// a degree of latitude; longitude half-widths are stretched by
// 1/cos(lat) and never exceed 180°, so a polar footprint spans at most
// the whole parallel.
func Footprint(lat, lon, trackKm, scanKm float64) *geom.Bounds {
	kmPerDegree := metersPerDegree / 1000
	halfLat := trackKm / 2 / kmPerDegree
	halfLon := 180.
	if c := math.Cos(lat * math.Pi / 180); c > 0 {
		halfLon = math.Min(scanKm/2/(kmPerDegree*c), 180)
	}
	return &geom.Bounds{
		Min: geom.Point{X: lon - halfLon, Y: lat - halfLat},
		Max: geom.Point{X: lon + halfLon, Y: lat + halfLat},
	}
}

// pointBounds returns the degenerate footprint of a grid cell center.
func pointBounds(lat, lon float64) *geom.Bounds {
	return geom.NewBoundsPoint(geom.Point{X: lon, Y: lat})
}
