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
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
)

// Kind identifies the representation of an emission dataset.
type Kind int

// These are the supported emission source kinds.
const (
	KindUnknown Kind = iota
	KindGridded
	KindIrregular
	KindFire
)

func (k Kind) String() string {
	switch k {
	case KindGridded:
		return "gridded"
	case KindIrregular:
		return "irregular"
	case KindFire:
		return "fire"
	default:
		return "unknown"
	}
}

// ParseKind parses the name of a source kind as returned by
// Kind.String. The empty string parses to KindUnknown.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return KindUnknown, nil
	case "gridded":
		return KindGridded, nil
	case "irregular":
		return KindIrregular, nil
	case "fire":
		return KindFire, nil
	}
	return KindUnknown, fmt.Errorf("release: unknown source kind %q; valid kinds are gridded, irregular and fire", s)
}

// A Quantum is one unit of source emissions inside a zone: a grid
// cell or a point detection.
type Quantum struct {
	// Zone is the name of the zone the quantum was sampled from.
	Zone string

	// Lat and Lon are the center coordinates [degrees].
	Lat, Lon float64

	// Value is the emitted mass [kg] for inventory sources or the
	// detection brightness [K] for fire sources.
	Value float64

	// Footprint is the spatial extent of the release. It is
	// degenerate to the center point for grid cells.
	Footprint *geom.Bounds

	// Row and Col are the grid indices of the cell, or the table row
	// and -1 for point detections.
	Row, Col int
}

// A Source reads one emission dataset and returns the quanta that
// belong to a release definition.
type Source interface {
	// Kind returns the representation the source reads.
	Kind() Kind

	// Extract returns the quanta of d in output order.
	Extract(d *Definition) ([]Quantum, error)

	// Close releases the underlying file.
	Close() error
}

// SourceOptions holds the settings that only some source kinds use.
type SourceOptions struct {
	// Variable is the inventory variable holding the emission flux.
	Variable string

	// MinConfidence is the lowest fire detection confidence kept.
	MinConfidence float64
}

// Path tokens used by Select.
var (
	fireTokens      = []string{"firms", "modis", "viirs", "fire_archive", "fire_nrt", "hotspot"}
	griddedTokens   = []string{"ceds", "input4mips", "cmip"}
	irregularTokens = []string{"cams", "gfas", "edgar", "gfed"}
)

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// Select chooses the source kind for the dataset at path. A known
// override takes precedence over the path tokens.
func Select(path string, override Kind) (Kind, error) {
	if override != KindUnknown {
		return override, nil
	}
	name := strings.ToLower(filepath.Base(path))
	isNC := strings.HasSuffix(name, ".nc")
	switch {
	case containsAny(name, fireTokens):
		return KindFire, nil
	case isNC && containsAny(name, griddedTokens):
		return KindGridded, nil
	case isNC && containsAny(name, irregularTokens):
		return KindIrregular, nil
	}
	return KindUnknown, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
}

// Open opens the dataset at path with the adapter for kind.
func Open(kind Kind, path string, opts SourceOptions) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &DataUnavailableError{Kind: kind, Path: path}
		}
		return nil, fmt.Errorf("release: checking %s source %s: %w", kind, path, err)
	}
	switch kind {
	case KindGridded:
		return OpenGriddedInventory(path, opts.Variable)
	case KindIrregular:
		return OpenIrregularInventory(path, opts.Variable)
	case KindFire:
		return OpenFireDetections(path, opts.MinConfidence)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
}
