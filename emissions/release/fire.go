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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Detection is one fire hotspot from a satellite detection table.
type Detection struct {
	Lat, Lon   float64
	Brightness float64 // [K]
	Scan       float64 // cross-track pixel size [km]
	Track      float64 // along-track pixel size [km]
	Date       time.Time
	Confidence float64 // [0, 100]
}

// FireDetections reads a table of satellite fire detections in the
// FIRMS CSV format.
type FireDetections struct {
	path          string
	minConfidence float64
	detections    []Detection
}

// OpenFireDetections reads the detection table at path. Detections
// with a confidence below minConfidence are never returned by Extract.
func OpenFireDetections(path string, minConfidence float64) (*FireDetections, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("release: opening fire detections %s: %w", path, err)
	}
	defer f.Close()
	dets, err := ReadDetections(f)
	if err != nil {
		return nil, fmt.Errorf("release: reading fire detections %s: %w", path, err)
	}
	return &FireDetections{path: path, minConfidence: minConfidence, detections: dets}, nil
}

// ReadDetections parses a detection table with a header row. The
// columns latitude, longitude, brightness (or bright_ti4), scan, track,
// acq_date and confidence are required; other columns are ignored.
func ReadDetections(r io.Reader) ([]Detection, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	col := make(map[string]int)
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["brightness"]; !ok {
		if i, ok := col["bright_ti4"]; ok {
			col["brightness"] = i
		}
	}
	for _, c := range []string{"latitude", "longitude", "brightness", "scan", "track", "acq_date", "confidence"} {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var dets []Detection
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line++
		field := func(name string) (string, error) {
			i := col[name]
			if i >= len(rec) {
				return "", fmt.Errorf("line %d: missing %s", line, name)
			}
			return strings.TrimSpace(rec[i]), nil
		}
		number := func(name string) (float64, error) {
			s, err := field(name)
			if err != nil {
				return 0, err
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: invalid %s %q", line, name, s)
			}
			return v, nil
		}
		var d Detection
		if d.Lat, err = number("latitude"); err != nil {
			return nil, err
		}
		if d.Lon, err = number("longitude"); err != nil {
			return nil, err
		}
		if d.Brightness, err = number("brightness"); err != nil {
			return nil, err
		}
		if d.Scan, err = number("scan"); err != nil {
			return nil, err
		}
		if d.Track, err = number("track"); err != nil {
			return nil, err
		}
		s, err := field("acq_date")
		if err != nil {
			return nil, err
		}
		if d.Date, err = time.Parse("2006-01-02", s); err != nil {
			return nil, fmt.Errorf("line %d: invalid acq_date %q", line, s)
		}
		if s, err = field("confidence"); err != nil {
			return nil, err
		}
		if d.Confidence, err = parseConfidence(s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		dets = append(dets, d)
	}
	return dets, nil
}

// parseConfidence parses a numeric confidence or one of the VIIRS
// confidence classes low, nominal and high.
func parseConfidence(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "l", "low":
		return 0, nil
	case "n", "nominal":
		return 50, nil
	case "h", "high":
		return 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid confidence %q", s)
	}
	return v, nil
}

// Kind returns KindFire.
func (f *FireDetections) Kind() Kind { return KindFire }

// Close is a no-op; the table is read when it is opened.
func (f *FireDetections) Close() error { return nil }

// Extract returns the detections acquired on the release date with at
// least the minimum confidence that fall inside a zone of d, in table
// order. Each quantum is tagged with the first zone containing it.
func (f *FireDetections) Extract(d *Definition) ([]Quantum, error) {
	var qs []Quantum
	for row, det := range f.detections {
		if !MatchDate(det.Date, d.Date) || det.Confidence < f.minConfidence {
			continue
		}
		for _, z := range d.Zones {
			if !z.Contains(det.Lon, det.Lat) {
				continue
			}
			qs = append(qs, Quantum{
				Zone:      z.Name,
				Lat:       det.Lat,
				Lon:       det.Lon,
				Value:     det.Brightness,
				Footprint: Footprint(det.Lat, det.Lon, det.Track, det.Scan),
				Row:       row,
				Col:       -1,
			})
			break
		}
	}
	return qs, nil
}
