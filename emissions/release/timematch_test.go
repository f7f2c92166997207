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
	"reflect"
	"testing"
	"time"
)

func TestNearestIndex(t *testing.T) {
	for _, test := range []struct {
		times []float64
		t     float64
		want  int
	}{
		{[]float64{0, 31, 59}, 30, 1},
		{[]float64{0, 31, 59}, 100, 2},
		{[]float64{0, 31, 59}, -5, 0},
		{[]float64{0, 10, 20}, 15, 1}, // tie goes to the lowest index
		{[]float64{59, 31, 0}, 31, 1},
	} {
		i, err := NearestIndex(test.times, test.t)
		if err != nil {
			t.Fatal(err)
		}
		if i != test.want {
			t.Errorf("%v, %g: have %d, want %d", test.times, test.t, i, test.want)
		}
	}
	if _, err := NearestIndex(nil, 1); err == nil {
		t.Error("expected an error for an empty axis")
	}
}

func TestDaysSince(t *testing.T) {
	if d := DaysSince(InventoryEpoch, time.Date(1850, time.January, 2, 0, 0, 0, 0, time.UTC)); d != 1 {
		t.Errorf("have %g, want 1", d)
	}
	if d := DaysSince(InventoryEpoch, time.Date(1851, time.January, 1, 23, 0, 0, 0, time.UTC)); d != 365 {
		t.Errorf("have %g, want 365", d)
	}
	if d := DaysSince(InventoryEpoch, testDate); d != 62091 {
		t.Errorf("have %g, want 62091", d)
	}
	// Spans beyond the range of time.Duration.
	year1 := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	if d := DaysSince(year1, testDate); d != 737424 {
		t.Errorf("from year 1: have %g, want 737424", d)
	}
	if d := DaysSince(InventoryEpoch, time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)); d != 127835 {
		t.Errorf("to 2200: have %g, want 127835", d)
	}
	if d := DaysSince(testDate, year1); d != -737424 {
		t.Errorf("backwards: have %g, want -737424", d)
	}
}

func TestParseTimeUnits(t *testing.T) {
	for _, test := range []struct {
		units  string
		epoch  time.Time
		toDays float64
	}{
		{"days since 1850-01-01 00:00:00", InventoryEpoch, 1},
		{"hours since 2019-12-31 00:00", time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), 1.0 / 24},
		{"seconds since 1970-01-01", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 1.0 / 86400},
		{"minutes since 2000-1-1 0:0:0", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 1.0 / 1440},
	} {
		epoch, toDays, err := ParseTimeUnits(test.units)
		if err != nil {
			t.Errorf("%s: %v", test.units, err)
			continue
		}
		if !epoch.Equal(test.epoch) || toDays != test.toDays {
			t.Errorf("%s: have %v, %g", test.units, epoch, toDays)
		}
	}
	for _, units := range []string{"days", "fortnights since 1850-01-01", "days since yesterday"} {
		if _, _, err := ParseTimeUnits(units); err == nil {
			t.Errorf("%s: expected an error", units)
		}
	}
}

func TestDedupFirst(t *testing.T) {
	have := DedupFirst([]float64{0, 0, 24, 24, 24, 48, 0})
	if want := []int{0, 2, 5}; !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestMatchDate(t *testing.T) {
	if !MatchDate(testDate.Add(23*time.Hour), testDate) {
		t.Error("same day should match")
	}
	if MatchDate(testDate.Add(24*time.Hour), testDate) {
		t.Error("different days should not match")
	}
}
