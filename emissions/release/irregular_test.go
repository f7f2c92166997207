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
	"path/filepath"
	"testing"
)

// writeIrregular writes a CAMS-like file with descending latitudes,
// hourly time steps counted from 2019-12-31 and a duplicated first
// time step. The emission variable is stored as [t, x, y], so
// longitude varies slowest.
func writeIrregular(t *testing.T, dir string, lonMajor bool) string {
	t.Helper()
	lats := []float64{50, 49, 48, 47, 46}
	lons := []float64{0, 0.5, 1, 1.5}
	// 2019-12-31 00:00, same again, 2020-01-01 00:00, 2020-01-02 00:00
	times := []float64{0, 0, 24, 48}
	nt, ny, nx := len(times), len(lats), len(lons)
	data := make([]float64, nt*ny*nx)
	for k := range times {
		for i := range lats {
			for j := range lons {
				var v float64
				switch k {
				case 0:
					v = 1e-10 // first of the duplicated steps
				case 1:
					v = 9e-10 // dropped as a duplicate
				case 2:
					v = float64(i*nx+j+1) * 1e-11
				}
				if lonMajor {
					data[(k*nx+j)*ny+i] = v
				} else {
					data[(k*ny+i)*nx+j] = v
				}
			}
		}
	}
	dims := []string{"t", "y", "x"}
	if lonMajor {
		dims = []string{"t", "x", "y"}
	}
	path := filepath.Join(dir, "CAMS-GLOB-ANT.nc")
	writeNetCDF(t, path, []string{"t", "y", "x"}, []int{nt, ny, nx}, []ncVar{
		{name: "t", dims: []string{"t"}, data: times,
			attrs: map[string]interface{}{"units": "hours since 2019-12-31 00:00:00"}},
		{name: "rlat", dims: []string{"y"}, data: lats,
			attrs: map[string]interface{}{"long_name": "Latitude of cell centre"}},
		{name: "rlon", dims: []string{"x"}, data: lons,
			attrs: map[string]interface{}{"standard_name": "longitude"}},
		{name: "nox", dims: dims, data: data,
			attrs: map[string]interface{}{"units": "kg m-2 s-1"}},
	})
	return path
}

func TestIrregularInventory(t *testing.T) {
	for _, lonMajor := range []bool{false, true} {
		name := "lat-major"
		if lonMajor {
			name = "lon-major"
		}
		t.Run(name, func(t *testing.T) {
			path := writeIrregular(t, t.TempDir(), lonMajor)
			inv, err := OpenIrregularInventory(path, "nox")
			if err != nil {
				t.Fatal(err)
			}
			defer inv.Close()
			if inv.latVar != "rlat" || inv.lonVar != "rlon" {
				t.Errorf("coordinates: have %s, %s", inv.latVar, inv.lonVar)
			}
			if len(inv.times) != 3 {
				t.Errorf("de-duplicated time axis: have %d steps, want 3", len(inv.times))
			}

			d := testDefinition(Zone{Name: "z", LonMin: 0.5, LonMax: 1, LatMin: 47, LatMax: 48})
			qs, err := inv.Extract(d)
			if err != nil {
				t.Fatal(err)
			}
			// Storage order: latitude 48 then 47.
			want := []struct{ lat, lon, flux float64 }{
				{48, 0.5, float64(2*4+1+1) * 1e-11},
				{48, 1, float64(2*4+2+1) * 1e-11},
				{47, 0.5, float64(3*4+1+1) * 1e-11},
				{47, 1, float64(3*4+2+1) * 1e-11},
			}
			if len(qs) != len(want) {
				t.Fatalf("have %d quanta, want %d", len(qs), len(want))
			}
			for i, q := range qs {
				w := want[i]
				if q.Lat != w.lat || q.Lon != w.lon {
					t.Errorf("quantum %d at (%g, %g), want (%g, %g)", i, q.Lat, q.Lon, w.lat, w.lon)
				}
				m := w.flux * CellArea(-1, 0.5, w.lat) * d.Duration().Seconds()
				if q.Value != m {
					t.Errorf("quantum %d mass %g, want %g", i, q.Value, m)
				}
			}
		})
	}
}

func TestIrregularInventoryDuplicateTime(t *testing.T) {
	path := writeIrregular(t, t.TempDir(), false)
	inv, err := OpenIrregularInventory(path, "nox")
	if err != nil {
		t.Fatal(err)
	}
	defer inv.Close()
	d := testDefinition(Zone{Name: "z", LonMin: 0, LonMax: 0, LatMin: 50, LatMax: 50})
	d.Date = testDate.AddDate(0, 0, -1)
	qs, err := inv.Extract(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 {
		t.Fatalf("have %d quanta, want 1", len(qs))
	}
	m := 1e-10 * CellArea(-1, 0.5, 50) * d.Duration().Seconds()
	if qs[0].Value != m {
		t.Errorf("first time step should win: mass %g, want %g", qs[0].Value, m)
	}
}

func TestIrregularInventoryDistantEpoch(t *testing.T) {
	// Days since year 1: 2019-12-31, 2020-01-01 and 2020-01-02.
	times := []float64{737423, 737424, 737425}
	lats := []float64{48, 47}
	lons := []float64{0.5, 1}
	data := make([]float64, len(times)*len(lats)*len(lons))
	for i := 4; i < 8; i++ {
		data[i] = 2e-11
	}
	path := filepath.Join(t.TempDir(), "CAMS-GLOB-ANT.nc")
	writeNetCDF(t, path, []string{"time", "lat", "lon"}, []int{3, 2, 2}, []ncVar{
		{name: "time", dims: []string{"time"}, data: times,
			attrs: map[string]interface{}{"units": "days since 0001-01-01 00:00:00"}},
		{name: "lat", dims: []string{"lat"}, data: lats,
			attrs: map[string]interface{}{"standard_name": "latitude"}},
		{name: "lon", dims: []string{"lon"}, data: lons,
			attrs: map[string]interface{}{"standard_name": "longitude"}},
		{name: "nox", dims: []string{"time", "lat", "lon"}, data: data},
	})
	inv, err := OpenIrregularInventory(path, "nox")
	if err != nil {
		t.Fatal(err)
	}
	defer inv.Close()

	d := testDefinition(Zone{Name: "z", LonMin: 0.5, LonMax: 1, LatMin: 47, LatMax: 48})
	qs, err := inv.Extract(d)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 4 {
		t.Fatalf("have %d quanta, want the 4 cells of 2020-01-01", len(qs))
	}
	for i, q := range qs {
		m := 2e-11 * CellArea(-1, 0.5, q.Lat) * d.Duration().Seconds()
		if q.Value != m {
			t.Errorf("quantum %d mass %g, want %g", i, q.Value, m)
		}
	}
}

func TestIrregularInventoryRequiresVariable(t *testing.T) {
	path := writeIrregular(t, t.TempDir(), false)
	_, err := OpenIrregularInventory(path, "")
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("have %v, want a ConfigurationError", err)
	}
}
