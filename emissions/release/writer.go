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
	"bufio"
	"fmt"
	"io"
	"strings"
)

const bannerWidth = 109

var bannerText = []string{
	"", "", "",
	"   Input file for the Lagrangian particle dispersion model FLEXPART",
	"                        Please select your options",
	"", "", "",
}

// Writer writes release records in the FLEXPART RELEASES namelist
// format. It keeps the running particle total and numbers the records
// from 1 across the whole file. Errors are sticky: after the first
// failed write, every method returns that error.
type Writer struct {
	w     *bufio.Writer
	err   error
	count int
	total int
}

// NewWriter writes the RELEASES file banner and control block for
// the given species number to w and returns a Writer for the records.
func NewWriter(w io.Writer, species int) *Writer {
	rw := &Writer{w: bufio.NewWriter(w)}
	border := strings.Repeat("*", bannerWidth+2)
	rw.printf("%s\n", border)
	for _, l := range bannerText {
		rw.printf("*%-*s*\n", bannerWidth, l)
	}
	rw.printf("%s\n", border)
	rw.printf("&RELEASES_CTRL\n")
	rw.printf(" NSPEC      =           1, ! Total number of species\n")
	rw.printf(" SPECNUM_REL=          %d, ! Species numbers in directory SPECIES\n", species)
	rw.printf(" /\n")
	return rw
}

func (w *Writer) printf(format string, a ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, a...)
}

// Write writes one &RELEASE block.
func (w *Writer) Write(r Record) error {
	if w.err != nil {
		return w.err
	}
	w.count++
	w.printf("&RELEASE\n")
	w.printf(" IDATE1 = %s,\n", r.Begin.Format("20060102"))
	w.printf(" ITIME1 = %s,\n", r.Begin.Format("150405"))
	w.printf(" IDATE2 = %s,\n", r.End.Format("20060102"))
	w.printf(" ITIME2 = %s,\n", r.End.Format("150405"))
	w.printf(" LON1 = %.3f,\n", r.Footprint.Min.X)
	w.printf(" LON2 = %.3f,\n", r.Footprint.Max.X)
	w.printf(" LAT1 = %.3f,\n", r.Footprint.Min.Y)
	w.printf(" LAT2 = %.3f,\n", r.Footprint.Max.Y)
	w.printf(" Z1 = %.3f,\n", r.ZMin)
	w.printf(" Z2 = %.3f,\n", r.ZMax)
	w.printf(" ZKIND = 1,\n")
	w.printf(" MASS = %E,\n", r.Mass)
	w.printf(" PARTS = %d,\n", r.Parts)
	w.printf(" COMMENT = \"%s_%s_%d\",\n", r.Zone, r.Release, w.count)
	w.printf(" /\n")
	if w.err != nil {
		return w.err
	}
	w.total += r.Parts
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Total returns the number of particles written so far.
func (w *Writer) Total() int { return w.total }

// Count returns the number of records written so far.
func (w *Writer) Count() int { return w.count }
