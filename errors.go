/*
Copyright © 2019 the ForestGrid authors.
This file is part of ForestGrid.

ForestGrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ForestGrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ForestGrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package forestgrid

import (
	"errors"
	"fmt"
)

// Errors returned by the grid engine. They are wrapped with context, so
// callers should test for them with errors.Is.
var (
	// ErrInvalidArgument is returned for bad field codes, cell indices,
	// rectangles, sizes and counts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds is returned when a point lies outside the plot.
	// It wraps ErrInvalidArgument.
	ErrOutOfBounds = fmt.Errorf("%w: outside of plot", ErrInvalidArgument)

	// ErrCapacityExceeded is returned when a field table has no free slot.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrIllegalOperation is returned when the package schema is changed
	// after a package has been created.
	ErrIllegalOperation = errors.New("illegal operation")

	// ErrBadData is returned when a map description does not fit a grid.
	ErrBadData = errors.New("bad data")
)

// NotFound is the code returned by label lookups that do not match any
// registered field.
const NotFound = -1

// VerySmall is the distance used to keep the upper edge of the last cell
// inside the plot.
const VerySmall = 0.001
