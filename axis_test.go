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

import "testing"

func TestIndexRange(t *testing.T) {
	axis := []float64{40, 41, 42, 43}
	tests := []struct {
		name  string
		bound BoundRange
		want  IndexRange
		empty bool
	}{
		{
			name:  "interior",
			bound: BoundRange{Lower: 41, Upper: 43},
			want:  IndexRange{Start: 1, Count: 2},
		},
		{
			name:  "lower bound inclusive",
			bound: BoundRange{Lower: 40, Upper: 41},
			want:  IndexRange{Start: 0, Count: 1},
		},
		{
			name:  "upper bound exclusive",
			bound: BoundRange{Lower: 42, Upper: 43},
			want:  IndexRange{Start: 2, Count: 1},
		},
		{
			name:  "whole axis",
			bound: BoundRange{Lower: 39, Upper: 44},
			want:  IndexRange{Start: 0, Count: 4},
		},
		{
			name:  "between values",
			bound: BoundRange{Lower: 41.5, Upper: 41.9},
			empty: true,
		},
		{
			name:  "below axis",
			bound: BoundRange{Lower: 30, Upper: 35},
			empty: true,
		},
		{
			name:  "above axis",
			bound: BoundRange{Lower: 50, Upper: 60},
			empty: true,
		},
	}
	for _, test := range tests {
		r, err := indexRange("latitude", axis, test.bound)
		if test.empty {
			if _, ok := err.(*EmptySelectionError); !ok {
				t.Errorf("%s: want EmptySelectionError, have %v", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if r != test.want {
			t.Errorf("%s: have %+v, want %+v", test.name, r, test.want)
		}
	}
}

func TestIndexRangeContiguous(t *testing.T) {
	axis := []float64{-10, -5, 0, 2.5, 7, 11, 30}
	b := BoundRange{Lower: -5, Upper: 11}
	r, err := indexRange("longitude", axis, b)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range axis {
		in := b.Lower <= v && v < b.Upper
		selected := i >= r.Start && i < r.End()
		if in != selected {
			t.Errorf("index %d (value %g): in bound %v but selected %v", i, v, in, selected)
		}
	}
}

func TestAscending(t *testing.T) {
	tests := []struct {
		axis []float64
		want bool
	}{
		{axis: []float64{1, 2, 3}, want: true},
		{axis: []float64{1}, want: true},
		{axis: []float64{}, want: false},
		{axis: []float64{1, 1, 2}, want: false},
		{axis: []float64{3, 2, 1}, want: false},
	}
	for _, test := range tests {
		if have := ascending(test.axis); have != test.want {
			t.Errorf("ascending(%v): have %v, want %v", test.axis, have, test.want)
		}
	}
}
