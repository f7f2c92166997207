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

package hash

import (
	"testing"
	"time"
)

type zone struct {
	Name           string
	LonMin, LonMax float64
}

type scenario struct {
	Date  time.Time
	Zones []*zone
}

func TestKey(t *testing.T) {
	date := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	a := scenario{Date: date, Zones: []*zone{{"paris", 1, 3}}}
	b := scenario{Date: date, Zones: []*zone{{"paris", 1, 3}}}
	if Key(a) != Key(b) {
		t.Error("equal scenarios have different keys")
	}
	if k := Key(a); len(k) != 16 {
		t.Errorf("key %q is not 16 characters long", k)
	}
	b.Zones[0].LonMax = 3.5
	if Key(a) == Key(b) {
		t.Error("different scenarios have the same key")
	}
}
