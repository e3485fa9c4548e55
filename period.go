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
	"strings"
	"time"
)

// epoch is the reference date of the time axis: values on the axis are
// day-offsets from 1950-01-01.
var epoch = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

// dayDate converts a day-offset on the time axis to a date.
func dayDate(day float64) time.Time {
	return epoch.Add(time.Duration(day * 24 * float64(time.Hour)))
}

// dayOffset converts a date to its day-offset on the time axis.
func dayOffset(t time.Time) float64 {
	return t.Sub(epoch).Hours() / 24
}

// A Period selects a run of positions along the time axis. It is one of
// IndexPeriod, DatePeriod, or Interval.
type Period interface {
	timeRange(axis []float64) (IndexRange, error)
}

// IndexPeriod selects time steps directly by position, without consulting
// the axis values. Start is inclusive and Stop is exclusive, matching the
// half-open convention used everywhere else.
type IndexPeriod struct {
	Start, Stop int
}

func (p IndexPeriod) timeRange(axis []float64) (IndexRange, error) {
	if p.Start < 0 || p.Stop < p.Start {
		return IndexRange{}, validationErrorf("invalid index period [%d, %d)", p.Start, p.Stop)
	}
	stop := p.Stop
	if stop > len(axis) {
		stop = len(axis)
	}
	if stop <= p.Start {
		return IndexRange{}, &EmptySelectionError{Axis: "time",
			Bound: BoundRange{Lower: float64(p.Start), Upper: float64(p.Stop)}}
	}
	return IndexRange{Start: p.Start, Count: stop - p.Start}, nil
}

// DatePeriod selects time steps between two dates. The dates are converted
// to the axis's day-offset representation and used as a BoundRange, so End
// is exclusive.
type DatePeriod struct {
	Start, End time.Time
}

func (p DatePeriod) timeRange(axis []float64) (IndexRange, error) {
	if p.End.Before(p.Start) {
		return IndexRange{}, validationErrorf("date period ends (%v) before it starts (%v)",
			p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
	}
	return indexRange("time", axis, BoundRange{Lower: dayOffset(p.Start), Upper: dayOffset(p.End)})
}

// Interval is a calendar interval expression resolved against the time
// axis. Recognized forms are a year ("2010"), a month ("2010-05"), a day
// ("2010-05-31"), and inclusive ranges of any of those joined by "/" or
// " to " ("2010-01-01/2010-01-03", "2008 to 2010").
type Interval string

// timeRange renders each axis value into a date, finds the positions the
// interval accepts, and widens the inclusive endpoint by one day to fit
// the exclusive-upper convention, so a single matching day still yields
// count = 1. The widening assumes a daily axis; coarser or irregular
// spacing is not supported here.
func (p Interval) timeRange(axis []float64) (IndexRange, error) {
	start, end, err := parseInterval(string(p))
	if err != nil {
		return IndexRange{}, err
	}
	first, last := -1, -1
	for i, v := range axis {
		d := dayDate(v)
		if d.Before(start) || d.After(end) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return IndexRange{}, &EmptySelectionError{Axis: "time",
			Bound: BoundRange{Lower: dayOffset(start), Upper: dayOffset(end) + 1}}
	}
	return indexRange("time", axis, BoundRange{Lower: axis[first], Upper: axis[last] + 1})
}

// parseInterval returns the inclusive date range an interval expression
// covers.
func parseInterval(expr string) (start, end time.Time, err error) {
	s := strings.TrimSpace(strings.Replace(expr, " to ", "/", 1))
	parts := strings.SplitN(s, "/", 2)
	start, _, err = parseIntervalEndpoint(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, end, err = parseIntervalEndpoint(parts[len(parts)-1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, validationErrorf("interval %q ends before it starts", expr)
	}
	return start, end, nil
}

// parseIntervalEndpoint parses a year, month, or day token into the first
// and last dates it denotes.
func parseIntervalEndpoint(token string) (first, last time.Time, err error) {
	token = strings.TrimSpace(token)
	for _, f := range []struct {
		layout string
		span   func(t time.Time) time.Time
	}{
		{"2006-01-02", func(t time.Time) time.Time { return t }},
		{"2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, -1) }},
		{"2006", func(t time.Time) time.Time { return t.AddDate(1, 0, -1) }},
	} {
		t, perr := time.ParseInLocation(f.layout, token, time.UTC)
		if perr == nil {
			return t, f.span(t), nil
		}
	}
	return time.Time{}, time.Time{}, validationErrorf("malformed period token %q", token)
}
