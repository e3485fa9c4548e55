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

import (
	"testing"
	"time"
)

// dailyAxis returns n consecutive day-offsets starting at the given date.
func dailyAxis(start time.Time, n int) []float64 {
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = dayOffset(start.AddDate(0, 0, i))
	}
	return axis
}

func TestDayDateRoundTrip(t *testing.T) {
	dates := []time.Time{
		epoch,
		time.Date(1950, time.January, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1949, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if have := dayDate(dayOffset(d)); !have.Equal(d) {
			t.Errorf("have %v, want %v", have, d)
		}
	}
}

func TestIntervalTimeRange(t *testing.T) {
	axis := dailyAxis(time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), 365)
	tests := []struct {
		expr  string
		want  IndexRange
		empty bool
		bad   bool
	}{
		{expr: "2010-01-01/2010-01-03", want: IndexRange{Start: 0, Count: 3}},
		{expr: "2010-01-01 to 2010-01-03", want: IndexRange{Start: 0, Count: 3}},
		{expr: "2010-02-01", want: IndexRange{Start: 31, Count: 1}},
		{expr: "2010-02", want: IndexRange{Start: 31, Count: 28}},
		{expr: "2010", want: IndexRange{Start: 0, Count: 365}},
		{expr: "2009/2010", want: IndexRange{Start: 0, Count: 365}},
		{expr: "2011", empty: true},
		{expr: "2010-01-03/2010-01-01", bad: true},
		{expr: "201O", bad: true},
		{expr: "", bad: true},
	}
	for _, test := range tests {
		r, err := Interval(test.expr).timeRange(axis)
		if test.bad {
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("%q: want ValidationError, have %v", test.expr, err)
			}
			continue
		}
		if test.empty {
			if _, ok := err.(*EmptySelectionError); !ok {
				t.Errorf("%q: want EmptySelectionError, have %v", test.expr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", test.expr, err)
			continue
		}
		if r != test.want {
			t.Errorf("%q: have %+v, want %+v", test.expr, r, test.want)
		}
	}
}

func TestDatePeriod(t *testing.T) {
	axis := dailyAxis(time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), 31)
	p := DatePeriod{
		Start: time.Date(2010, time.January, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2010, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
	r, err := p.timeRange(axis)
	if err != nil {
		t.Fatal(err)
	}
	// The end date is the exclusive upper bound.
	want := IndexRange{Start: 1, Count: 3}
	if r != want {
		t.Errorf("have %+v, want %+v", r, want)
	}

	_, err = DatePeriod{Start: p.End, End: p.Start}.timeRange(axis)
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("reversed dates: want ValidationError, have %v", err)
	}
}

func TestIndexPeriod(t *testing.T) {
	axis := dailyAxis(time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), 10)
	tests := []struct {
		p     IndexPeriod
		want  IndexRange
		empty bool
		bad   bool
	}{
		{p: IndexPeriod{Start: 0, Stop: 10}, want: IndexRange{Start: 0, Count: 10}},
		{p: IndexPeriod{Start: 3, Stop: 5}, want: IndexRange{Start: 3, Count: 2}},
		{p: IndexPeriod{Start: 3, Stop: 100}, want: IndexRange{Start: 3, Count: 7}},
		{p: IndexPeriod{Start: 10, Stop: 12}, empty: true},
		{p: IndexPeriod{Start: -1, Stop: 2}, bad: true},
		{p: IndexPeriod{Start: 5, Stop: 3}, bad: true},
	}
	for _, test := range tests {
		r, err := test.p.timeRange(axis)
		if test.bad {
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("%+v: want ValidationError, have %v", test.p, err)
			}
			continue
		}
		if test.empty {
			if _, ok := err.(*EmptySelectionError); !ok {
				t.Errorf("%+v: want EmptySelectionError, have %v", test.p, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%+v: %v", test.p, err)
			continue
		}
		if r != test.want {
			t.Errorf("%+v: have %+v, want %+v", test.p, r, test.want)
		}
	}
}

func TestParseIntervalEndpoint(t *testing.T) {
	tests := []struct {
		token       string
		first, last string
	}{
		{token: "2010", first: "2010-01-01", last: "2010-12-31"},
		{token: "2012-02", first: "2012-02-01", last: "2012-02-29"},
		{token: "2010-07-04", first: "2010-07-04", last: "2010-07-04"},
	}
	for _, test := range tests {
		first, last, err := parseIntervalEndpoint(test.token)
		if err != nil {
			t.Errorf("%q: %v", test.token, err)
			continue
		}
		if have := first.Format("2006-01-02"); have != test.first {
			t.Errorf("%q first: have %s, want %s", test.token, have, test.first)
		}
		if have := last.Format("2006-01-02"); have != test.last {
			t.Errorf("%q last: have %s, want %s", test.token, have, test.last)
		}
	}
}
