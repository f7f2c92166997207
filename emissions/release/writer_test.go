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
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ctessum/geom"
)

const wantHeader = `***************************************************************************************************************
*                                                                                                             *
*                                                                                                             *
*                                                                                                             *
*   Input file for the Lagrangian particle dispersion model FLEXPART                                          *
*                        Please select your options                                                           *
*                                                                                                             *
*                                                                                                             *
*                                                                                                             *
***************************************************************************************************************
&RELEASES_CTRL
 NSPEC      =           1, ! Total number of species
 SPECNUM_REL=          24, ! Species numbers in directory SPECIES
 /
`

const wantRecords = `&RELEASE
 IDATE1 = 20200101,
 ITIME1 = 000000,
 IDATE2 = 20200101,
 ITIME2 = 060000,
 LON1 = 2.000,
 LON2 = 2.000,
 LAT1 = 48.000,
 LAT2 = 48.000,
 Z1 = 0.000,
 Z2 = 100.000,
 ZKIND = 1,
 MASS = 1.234560E+03,
 PARTS = 10000,
 COMMENT = "paris_r1_1",
 /
&RELEASE
 IDATE1 = 20200101,
 ITIME1 = 223000,
 IDATE2 = 20200102,
 ITIME2 = 013000,
 LON1 = -0.500,
 LON2 = 0.500,
 LAT1 = 47.250,
 LAT2 = 47.750,
 Z1 = 10.000,
 Z2 = 250.500,
 ZKIND = 1,
 MASS = 1.000000E+00,
 PARTS = 9000,
 COMMENT = "lyon_r2_2",
 /
`

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	w := NewWriter(&b, 24)
	recs := []Record{
		{
			Begin:     testDate,
			End:       testDate.Add(6 * time.Hour),
			Footprint: pointBounds(48, 2),
			ZMin:      0, ZMax: 100,
			Mass: 1234.56, Parts: 10000,
			Zone: "paris", Release: "r1",
		},
		{
			Begin: testDate.Add(22*time.Hour + 30*time.Minute),
			End:   testDate.Add(25*time.Hour + 30*time.Minute),
			Footprint: &geom.Bounds{
				Min: geom.Point{X: -0.5, Y: 47.25},
				Max: geom.Point{X: 0.5, Y: 47.75},
			},
			ZMin: 10, ZMax: 250.5,
			Mass: 1, Parts: 9000,
			Zone: "lyon", Release: "r2",
		},
	}
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if have, want := b.String(), wantHeader+wantRecords; have != want {
		t.Errorf("have:\n%s\nwant:\n%s", have, want)
	}
	if w.Total() != 19000 {
		t.Errorf("total: have %d, want 19000", w.Total())
	}
	if w.Count() != 2 {
		t.Errorf("count: have %d, want 2", w.Count())
	}
}

func TestWriterHeaderWidth(t *testing.T) {
	for i, l := range strings.Split(wantHeader, "\n")[:10] {
		if len(l) != bannerWidth+2 {
			t.Errorf("banner line %d has width %d", i, len(l))
		}
	}
}

type failWriter struct{ n int }

var errFull = errors.New("disk full")

func (f *failWriter) Write(p []byte) (int, error) {
	if f.n < len(p) {
		return 0, errFull
	}
	f.n -= len(p)
	return len(p), nil
}

func TestWriterStickyError(t *testing.T) {
	w := NewWriter(&failWriter{n: 100}, 1)
	r := Record{Begin: testDate, End: testDate.Add(time.Hour), Footprint: pointBounds(0, 0), Parts: 1}
	var err error
	for i := 0; i < 100 && err == nil; i++ {
		err = w.Write(r)
	}
	if err == nil {
		err = w.Flush()
	}
	if !errors.Is(err, errFull) {
		t.Fatalf("have %v, want %v", err, errFull)
	}
	if err := w.Flush(); !errors.Is(err, errFull) {
		t.Errorf("error is not sticky: %v", err)
	}
}
