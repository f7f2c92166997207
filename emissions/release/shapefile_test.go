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
	"strings"
	"testing"

	goshp "github.com/jonas-p/go-shp"
)

func TestShapefileRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footprints.shp")
	r, err := NewShapefileRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	d := testDefinition(paris)
	recs := MassConservation{Parts: 10}.Apportion(d, []Quantum{
		{Zone: "paris", Lat: 48, Lon: 2, Value: 1, Footprint: Footprint(48, 2, 1, 1)},
		{Zone: "paris", Lat: 48.5, Lon: 2.5, Value: 2, Footprint: Footprint(48.5, 2.5, 1, 1)},
	})
	if err := r.Record(recs); err != nil {
		t.Fatal(err)
	}
	r.Close()

	f, err := goshp.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var n int
	for f.Next() {
		_, shape := f.Shape()
		b := shape.BBox()
		want := recs[n].Footprint
		if b.MinX != want.Min.X || b.MaxY != want.Max.Y {
			t.Errorf("shape %d: bounds %+v, want %+v", n, b, want)
		}
		if zone := strings.TrimRight(f.ReadAttribute(n, 1), " \x00"); zone != "paris" {
			t.Errorf("shape %d: zone %q", n, zone)
		}
		n++
	}
	if n != 2 {
		t.Errorf("have %d shapes, want 2", n)
	}
}

func TestBoundsPolygon(t *testing.T) {
	p := boundsPolygon(Footprint(10, 20, 2, 2))
	if len(p) != 1 || len(p[0]) != 5 || p[0][0] != p[0][4] {
		t.Errorf("not a closed ring: %v", p)
	}
}
