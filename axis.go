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

// Package climgrid extracts spatio-temporal subsets of gridded climate
// variables and reshapes them into point-indexed long-form tables.
package climgrid

import "sort"

// BoundRange is a half-open interval of coordinate values: a value v is
// within the range when Lower <= v < Upper.
type BoundRange struct {
	Lower, Upper float64
}

// IndexRange is a contiguous run of positions along one axis.
type IndexRange struct {
	Start, Count int
}

// End returns the position one past the last index in the range.
func (r IndexRange) End() int { return r.Start + r.Count }

// indexRange returns the positions in the ascending axis whose values
// satisfy b. Axis monotonicity makes the selection contiguous, so
// membership reduces to two boundary searches. A value exactly equal to
// b.Lower is included; one exactly equal to b.Upper is excluded.
func indexRange(axisName string, axis []float64, b BoundRange) (IndexRange, error) {
	lo := sort.SearchFloat64s(axis, b.Lower)
	hi := sort.SearchFloat64s(axis, b.Upper)
	if hi <= lo {
		return IndexRange{}, &EmptySelectionError{Axis: axisName, Bound: b}
	}
	return IndexRange{Start: lo, Count: hi - lo}, nil
}

// ascending reports whether the axis is non-empty and strictly increasing.
func ascending(axis []float64) bool {
	if len(axis) == 0 {
		return false
	}
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return false
		}
	}
	return true
}
