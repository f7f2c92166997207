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
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// InventoryEpoch is the reference time of the inventory time axes,
// which count days since 1850-01-01.
var InventoryEpoch = time.Date(1850, time.January, 1, 0, 0, 0, 0, time.UTC)

// Day arithmetic is done on Unix seconds; time.Duration saturates
// about 292 years away from the epoch.
const secondsPerDay = 24 * 60 * 60

// NearestIndex returns the index of the value in times that is closest
// to t. Ties go to the lowest index.
func NearestIndex(times []float64, t float64) (int, error) {
	if len(times) == 0 {
		return -1, fmt.Errorf("release: cannot match time %g against an empty time axis", t)
	}
	diff := make([]float64, len(times))
	for i, v := range times {
		diff[i] = math.Abs(v - t)
	}
	return floats.MinIdx(diff), nil
}

// DaysSince returns the number of whole days between the midnight of
// epoch and the midnight of date.
func DaysSince(epoch, date time.Time) float64 {
	e := time.Date(epoch.Year(), epoch.Month(), epoch.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return float64((d.Unix() - e.Unix()) / secondsPerDay)
}

// ParseTimeUnits parses a CF time units string such as
// "days since 1850-01-01 00:00:00". It returns the epoch and the
// factor that converts axis values into days.
func ParseTimeUnits(units string) (epoch time.Time, toDays float64, err error) {
	parts := strings.SplitN(strings.TrimSpace(units), " since ", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("release: invalid time units %q", units)
	}
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "days", "day", "d":
		toDays = 1
	case "hours", "hour", "h":
		toDays = 1.0 / 24
	case "minutes", "minute", "min":
		toDays = 1.0 / (24 * 60)
	case "seconds", "second", "s":
		toDays = 1.0 / (24 * 60 * 60)
	default:
		return time.Time{}, 0, fmt.Errorf("release: invalid time unit in %q", units)
	}
	ref := strings.TrimSpace(parts[1])
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-1-2 15:4:5",
		"2006-01-02",
		"2006-1-2",
	} {
		if epoch, err = time.Parse(layout, ref); err == nil {
			return epoch, toDays, nil
		}
	}
	return time.Time{}, 0, fmt.Errorf("release: invalid reference time in time units %q", units)
}

// DedupFirst returns the indices of the first occurrence of each
// distinct value in times, in their original order.
func DedupFirst(times []float64) []int {
	seen := make(map[float64]bool, len(times))
	var keep []int
	for i, t := range times {
		if seen[t] {
			continue
		}
		seen[t] = true
		keep = append(keep, i)
	}
	return keep
}

// MatchDate reports whether a and b fall on the same UTC calendar day.
func MatchDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
