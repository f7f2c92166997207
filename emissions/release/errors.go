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
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSource is returned when no source adapter can read
	// the configured emission dataset.
	ErrUnsupportedSource = errors.New("release: unsupported emission source type")

	// ErrInventoryMissing is matched by DataUnavailableErrors for
	// gridded and irregular inventory files.
	ErrInventoryMissing = errors.New("release: emission inventory file does not exist")

	// ErrFireMissing is matched by DataUnavailableErrors for fire
	// detection tables.
	ErrFireMissing = errors.New("release: fire detection file does not exist")
)

// Result codes returned by ResultCode for the failures that callers
// report with a source-specific message.
const (
	CodeUnsupportedSource = -1
	CodeInventoryMissing  = -2
	CodeFireMissing       = -3
)

// A ConfigurationError reports a missing or inconsistent configuration
// value, such as a malformed date or an inverted altitude range.
type ConfigurationError struct {
	// Field names the configuration node at fault.
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "release: configuration: " + e.Msg
	}
	return fmt.Sprintf("release: configuration %s: %s", e.Field, e.Msg)
}

// A GeometryError reports an out-of-range or inverted zone.
type GeometryError struct {
	Zone string
	Msg  string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("release: zone %q: %s", e.Zone, e.Msg)
}

// A DataUnavailableError reports that the emission dataset at Path
// does not exist.
type DataUnavailableError struct {
	Kind Kind
	Path string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("release: %s source %s does not exist", e.Kind, e.Path)
}

// Is matches ErrFireMissing for fire tables and ErrInventoryMissing
// for everything else.
func (e *DataUnavailableError) Is(target error) bool {
	if e.Kind == KindFire {
		return target == ErrFireMissing
	}
	return target == ErrInventoryMissing
}

// ResultCode maps the outcome of Convert onto the integer contract
// used by the simulator sizing step: the total particle count on
// success, or one of the negative Code constants. Errors that have no
// code of their own are returned unchanged alongside 0.
func ResultCode(total int, err error) (int, error) {
	switch {
	case err == nil:
		return total, nil
	case errors.Is(err, ErrUnsupportedSource):
		return CodeUnsupportedSource, nil
	case errors.Is(err, ErrFireMissing):
		return CodeFireMissing, nil
	case errors.Is(err, ErrInventoryMissing):
		return CodeInventoryMissing, nil
	}
	return 0, err
}
