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
	"os"
	"strings"

	"github.com/ctessum/cdf"
)

// ncFile is an open NetCDF classic file.
type ncFile struct {
	path string
	f    *os.File
	nc   *cdf.File
	size int64
}

func openNetCDF(path string) (*ncFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("release: opening NetCDF file %s: %w", path, err)
	}
	nc, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("release: opening NetCDF file %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("release: opening NetCDF file %s: %w", path, err)
	}
	return &ncFile{path: path, f: f, nc: nc, size: fi.Size()}, nil
}

func (n *ncFile) Close() error { return n.f.Close() }

func (n *ncFile) hasVar(v string) bool {
	for _, name := range n.nc.Header.Variables() {
		if name == v {
			return true
		}
	}
	return false
}

// lengths returns the dimension lengths of v, with the record
// dimension resolved from the file size.
func (n *ncFile) lengths(v string) []int {
	l := n.nc.Header.Lengths(v)
	if l == nil {
		return nil
	}
	o := make([]int, len(l))
	copy(o, l)
	if n.nc.Header.IsRecordVariable(v) {
		o[0] = int(n.nc.Header.NumRecs(n.size))
	}
	return o
}

// stringAttr returns the text attribute a of variable v, or "" if it
// doesn't exist or isn't text.
func (n *ncFile) stringAttr(v, a string) string {
	s, ok := n.nc.Header.GetAttribute(v, a).(string)
	if !ok {
		return ""
	}
	return strings.TrimRight(s, "\x00")
}

// readAll reads the whole of variable v.
func (n *ncFile) readAll(v string) ([]float64, error) {
	l := n.lengths(v)
	if l == nil {
		return nil, fmt.Errorf("release: variable %s not found in %s", v, n.path)
	}
	begin := make([]int, len(l))
	end := make([]int, len(l))
	for i, x := range l {
		if x == 0 {
			return nil, nil
		}
		end[i] = x - 1
	}
	return n.readSlab(v, begin, end)
}

// readSlab reads the hyperslab of v from begin to end (inclusive).
// The slab must be contiguous in the file: all dimensions after the
// first one that varies must be read in full.
// Missing values marked with _FillValue are returned as NaN.
func (n *ncFile) readSlab(v string, begin, end []int) ([]float64, error) {
	count := 1
	for i := range begin {
		count *= end[i] - begin[i] + 1
	}
	r := n.nc.Reader(v, begin, end)
	dataI := r.Zero(count)
	if _, err := r.Read(dataI); err != nil {
		return nil, fmt.Errorf("release: reading variable %s from %s: %w", v, n.path, err)
	}
	var data []float64
	switch d := dataI.(type) {
	case []float64:
		data = d
	case []float32:
		data = make([]float64, len(d))
		for i, v := range d {
			data[i] = float64(v)
		}
	case []int32:
		data = make([]float64, len(d))
		for i, v := range d {
			data[i] = float64(v)
		}
	case []int16:
		data = make([]float64, len(d))
		for i, v := range d {
			data[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("release: variable %s in %s has unsupported type %T", v, n.path, dataI)
	}

	noDataI := n.nc.Header.GetAttribute(v, "_FillValue")
	if noDataI != nil {
		var noData float64
		switch nd := noDataI.(type) {
		case []float32:
			noData = float64(nd[0])
		case []float64:
			noData = nd[0]
		case []int32:
			noData = float64(nd[0])
		case []int16:
			noData = float64(nd[0])
		default:
			return nil, fmt.Errorf("release: invalid type for _FillValue of %s: %T", v, noDataI)
		}
		for i, d := range data {
			if d == noData {
				data[i] = math.NaN()
			}
		}
	}
	return data, nil
}

// findCoordinate returns the name of the variable whose standard_name
// (or, failing that, long_name) attribute mentions name.
func (n *ncFile) findCoordinate(name string) (string, error) {
	for _, attr := range []string{"standard_name", "long_name"} {
		for _, v := range n.nc.Header.Variables() {
			if strings.Contains(strings.ToLower(n.stringAttr(v, attr)), name) {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("release: no %s coordinate variable found in %s", name, n.path)
}
