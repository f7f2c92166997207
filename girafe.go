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

// Package girafe prepares the particle releases of FLEXPART
// Lagrangian dispersion simulations from emission inventories and
// satellite fire detections. The conversion engine is in package
// github.com/spatialmodel/girafe/emissions/release and the command
// line interface in package github.com/spatialmodel/girafe/girafeutil.
package girafe

// Version gives the version number.
const Version = "1.0.0"
