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
	"testing"

	"github.com/ctessum/unit"
)

func TestCellArea(t *testing.T) {
	// One degree at the equator is about 111.3 km.
	a := CellArea(1, 1, 0)
	if want := 1.2388e10; math.Abs(a-want)/want > 1e-3 {
		t.Errorf("equatorial area: have %g, want about %g", a, want)
	}
	if h := CellArea(1, 1, 60); math.Abs(h-a/2)/a > 1e-12 {
		t.Errorf("area at 60°: have %g, want %g", h, a/2)
	}
	prev := math.Inf(1)
	for lat := 0.0; lat <= 89; lat++ {
		a := CellArea(0.5, 0.5, lat)
		if a >= prev {
			t.Errorf("area not decreasing at %g°: %g >= %g", lat, a, prev)
		}
		if s := CellArea(0.5, 0.5, -lat); s != a {
			t.Errorf("area not symmetric at %g°", lat)
		}
		prev = a
	}
	if err := cellAreaUnit(1, 1, 0).Check(unit.Meter2); err != nil {
		t.Error(err)
	}
}

func TestGridPointsToGridSpacing(t *testing.T) {
	regular := []float64{-0.5, 0, 0.5, 1}
	for i := range regular {
		if s := gridPointsToGridSpacing(regular, i); s != 0.5 {
			t.Errorf("regular spacing at %d: %g", i, s)
		}
	}
	irregular := []float64{0, 1, 3, 6}
	want := []float64{1, 1.5, 2.5, 3}
	for i, w := range want {
		if s := gridPointsToGridSpacing(irregular, i); s != w {
			t.Errorf("irregular spacing at %d: have %g, want %g", i, s, w)
		}
	}
	if s := gridPointsToGridSpacing([]float64{5}, 0); s != 0 {
		t.Errorf("single point: %g", s)
	}
}

func TestFootprint(t *testing.T) {
	kmPerDegree := 2 * math.Pi * 6378.1 / 360
	b := Footprint(0, 10, 2, 4)
	if lat := b.Max.Y - b.Min.Y; math.Abs(lat-2/kmPerDegree) > 1e-12 {
		t.Errorf("latitude extent %g", lat)
	}
	if lon := b.Max.X - b.Min.X; math.Abs(lon-4/kmPerDegree) > 1e-12 {
		t.Errorf("longitude extent %g", lon)
	}
	// Only the longitude extent stretches with latitude.
	b60 := Footprint(60, 10, 2, 4)
	if lat := b60.Max.Y - b60.Min.Y; math.Abs(lat-2/kmPerDegree) > 1e-12 {
		t.Errorf("latitude extent at 60°: %g", lat)
	}
	if lon := b60.Max.X - b60.Min.X; math.Abs(lon-8/kmPerDegree) > 1e-9 {
		t.Errorf("longitude extent at 60°: %g", lon)
	}
	if c := (b60.Min.X + b60.Max.X) / 2; math.Abs(c-10) > 1e-12 {
		t.Errorf("footprint not centered: %g", c)
	}
}

func TestFootprintPole(t *testing.T) {
	for _, lat := range []float64{90, -90, 89.9999999} {
		b := Footprint(lat, 10, 2, 4)
		lon := b.Max.X - b.Min.X
		if math.IsNaN(lon) || math.IsInf(lon, 0) || lon > 360 {
			t.Errorf("longitude extent at %g°: %g", lat, lon)
		}
		if math.IsInf(b.Min.X, 0) || math.IsInf(b.Max.X, 0) {
			t.Errorf("unbounded footprint at %g°: %+v", lat, b)
		}
	}
	if lon := Footprint(90, 10, 2, 4); lon.Max.X-lon.Min.X != 360 {
		t.Errorf("polar footprint should span the whole parallel: %+v", lon)
	}
}
