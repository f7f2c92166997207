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

	"github.com/ctessum/geom"
)

// Zone is a named longitude/latitude window that restricts where
// emissions are sampled for a release.
type Zone struct {
	Name           string
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// Bounds returns the zone as a bounding box with longitude on the
// X axis and latitude on the Y axis.
func (z Zone) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: z.LonMin, Y: z.LatMin},
		Max: geom.Point{X: z.LonMax, Y: z.LatMax},
	}
}

// Contains reports whether the point (lon, lat) lies in the zone,
// edges included.
func (z Zone) Contains(lon, lat float64) bool {
	return z.Bounds().Overlaps(geom.Point{X: lon, Y: lat}.Bounds())
}

// InRange reports whether lo <= v <= hi.
func InRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// validLongitude reports whether lon satisfies either the [-180, 180]
// or the [0, 360] convention.
func validLongitude(lon float64) bool {
	return InRange(lon, -180, 180) || InRange(lon, 0, 360)
}

// ValidateZone checks that the zone bounds are within the valid
// geographic ranges and correctly ordered.
func ValidateZone(z Zone) error {
	if !validLongitude(z.LonMin) || !validLongitude(z.LonMax) {
		return &GeometryError{Zone: z.Name, Msg: fmt.Sprintf(
			"longitude bounds [%g, %g] must respect either the [-180°;+180°] or [0°;+360°] convention",
			z.LonMin, z.LonMax)}
	}
	if !InRange(z.LatMin, -90, 90) || !InRange(z.LatMax, -90, 90) {
		return &GeometryError{Zone: z.Name, Msg: fmt.Sprintf(
			"latitude bounds [%g, %g] must be within [-90°;+90°]", z.LatMin, z.LatMax)}
	}
	if z.LonMin >= z.LonMax || z.LatMin >= z.LatMax {
		return &GeometryError{Zone: z.Name, Msg: "minimum latitude and longitude must be less than the maximum values"}
	}
	return nil
}

// ValidateAltitude checks that min <= max.
func ValidateAltitude(min, max float64) error {
	if min > max {
		return &ConfigurationError{Field: "altitude_min", Msg: fmt.Sprintf(
			"minimum altitude (%g) must be less than or equal to the maximum altitude (%g)", min, max)}
	}
	return nil
}
