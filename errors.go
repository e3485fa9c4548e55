/*
Copyright © 2019 the InMAP authors.
This file is part of climgrid.

climgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

climgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with climgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package climgrid

import "fmt"

// ValidationError reports a problem with the request itself: an unknown or
// unsupported variable, a malformed period, an unusable area, or an
// unrecognized grid identifier. It is always raised before any I/O happens.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return "climgrid: " + e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// EmptySelectionError means that the requested region or period does not
// intersect the dataset along the named axis.
type EmptySelectionError struct {
	Axis  string
	Bound BoundRange
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("climgrid: no %s axis values within [%g, %g)",
		e.Axis, e.Bound.Lower, e.Bound.Upper)
}

// ResourceError reports a failure opening, reading, or closing the
// underlying dataset connection.
type ResourceError struct {
	Op   string // e.g. "opening", "reading", "closing"
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("climgrid: %s %s: %v", e.Op, e.Path, e.Err)
}
