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
	"strconv"
	"time"
)

// A Definition is one configured emission episode.
type Definition struct {
	// Name identifies the release in record comments.
	Name string

	// Date is the UTC calendar day the release starts on.
	Date time.Time

	// Start and End are the offsets from the midnight of Date at which
	// the release begins and ends.
	Start, End time.Duration

	// AltitudeMin and AltitudeMax bound the release height [m].
	AltitudeMin, AltitudeMax float64

	// Zones are the windows that emissions are sampled from, in
	// output order.
	Zones []Zone
}

// Begin returns the time the release begins.
func (d *Definition) Begin() time.Time { return d.Date.Add(d.Start) }

// Finish returns the time the release ends.
func (d *Definition) Finish() time.Time { return d.Date.Add(d.End) }

// Duration returns the length of the release.
func (d *Definition) Duration() time.Duration { return d.End - d.Start }

// Validate checks the release timing, altitude range and every zone.
func (d *Definition) Validate() error {
	if d.Duration() <= 0 {
		return &ConfigurationError{Field: "release " + d.Name, Msg: "release duration is zero or negative; " +
			"check the release start and end time consistency"}
	}
	if err := ValidateAltitude(d.AltitudeMin, d.AltitudeMax); err != nil {
		return fmt.Errorf("release %s: %w", d.Name, err)
	}
	if len(d.Zones) == 0 {
		return &ConfigurationError{Field: "release " + d.Name, Msg: "no zones are defined"}
	}
	for _, z := range d.Zones {
		if err := ValidateZone(z); err != nil {
			return fmt.Errorf("release %s: %w", d.Name, err)
		}
	}
	return nil
}

// ParseDate parses a YYYYMMDD date string as a UTC day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, &ConfigurationError{Field: "start_date", Msg: fmt.Sprintf(
			"date %q is incorrect; correct pattern: YYYYMMDD", s)}
	}
	return t, nil
}

// ParseOffset parses a DDHHMMSS offset string (days, hours, minutes,
// seconds) into a duration.
func ParseOffset(s string) (time.Duration, error) {
	bad := &ConfigurationError{Field: "time", Msg: fmt.Sprintf(
		"time offset %q is incorrect; correct pattern: DDHHMMSS", s)}
	if len(s) != 8 {
		return 0, bad
	}
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(s[2*i : 2*i+2])
		if err != nil || n < 0 {
			return 0, bad
		}
		v[i] = n
	}
	return time.Duration(v[0])*24*time.Hour +
		time.Duration(v[1])*time.Hour +
		time.Duration(v[2])*time.Minute +
		time.Duration(v[3])*time.Second, nil
}
