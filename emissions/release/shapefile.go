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
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// A Recorder receives the records of each release after they have been
// written.
type Recorder interface {
	Record(recs []Record) error
}

// ShapefileRecorder writes the footprint of every release record to a
// polygon shapefile for inspection in GIS software.
type ShapefileRecorder struct {
	e *shp.Encoder
}

// NewShapefileRecorder creates the shapefile at path, replacing any
// existing file with the same base name.
func NewShapefileRecorder(path string) (*ShapefileRecorder, error) {
	base := strings.TrimSuffix(path, ".shp")
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(base + ext)
	}
	fields := []goshp.Field{
		goshp.StringField("release", 40),
		goshp.StringField("zone", 40),
		goshp.FloatField("mass", 20, 8),
		goshp.NumberField("parts", 10),
	}
	e, err := shp.NewEncoderFromFields(base+".shp", goshp.POLYGON, fields...)
	if err != nil {
		return nil, fmt.Errorf("release: creating shapefile %s: %w", path, err)
	}
	return &ShapefileRecorder{e: e}, nil
}

// Record writes one shape per record.
func (s *ShapefileRecorder) Record(recs []Record) error {
	for _, r := range recs {
		if err := s.e.EncodeFields(boundsPolygon(r.Footprint), r.Release, r.Zone, r.Mass, r.Parts); err != nil {
			return fmt.Errorf("release: writing footprint of %s_%s: %w", r.Zone, r.Release, err)
		}
	}
	return nil
}

// Close finishes the shapefile.
func (s *ShapefileRecorder) Close() { s.e.Close() }

// boundsPolygon returns b as a closed rectangular ring.
func boundsPolygon(b *geom.Bounds) geom.Polygon {
	return geom.Polygon{{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
		b.Min,
	}}
}
