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
	"math"
	"sort"
)

// cell is one grid value still addressed by axis position. pointID groups
// cells sharing a (lonIndex, latIndex) pair; ids start at 1 and are valid
// only until the next grouping pass.
type cell struct {
	lonIndex, latIndex, timeIndex int
	value                         float64
	pointID                       int
}

// record is one observation with resolved coordinates: the long-form shape
// the pipeline works in after melting. Day is the raw day-offset on the
// time axis; Value is NaN when missing.
type record struct {
	Lon, Lat, Day, Value float64
}

// melt flattens the dense slice into one cell per (lonIndex, latIndex,
// timeIndex) triple, keeping missing values, and assigns point ids in
// ascending (lonIndex, latIndex) order. Because the slice is always
// three-dimensional, a single-time-step selection needs no special
// handling: every cell simply shares timeIndex 0.
func melt(gs *GridSlice) []cell {
	nLon, nLat, nTime := len(gs.Lons), len(gs.Lats), len(gs.Times)
	cells := make([]cell, 0, nLon*nLat*nTime)
	id := 0
	for i := 0; i < nLon; i++ {
		for j := 0; j < nLat; j++ {
			id++
			for k := 0; k < nTime; k++ {
				cells = append(cells, cell{
					lonIndex:  i,
					latIndex:  j,
					timeIndex: k,
					value:     gs.Data.Get(i, j, k),
					pointID:   id,
				})
			}
		}
	}
	return cells
}

// dropEmptyPoints removes every point whose value is missing at all of its
// time indices, e.g. permanently masked ocean cells. Points missing only
// some time steps keep all their cells; row-level filtering is a separate,
// optional pass.
func dropEmptyPoints(cells []cell) []cell {
	hasData := make(map[int]bool)
	for _, c := range cells {
		if !math.IsNaN(c.value) {
			hasData[c.pointID] = true
		}
	}
	out := make([]cell, 0, len(cells))
	for _, c := range cells {
		if hasData[c.pointID] {
			out = append(out, c)
		}
	}
	return out
}

// resolve replaces axis positions with coordinate and day values, dropping
// the point ids: they are scratch keys and later stages regroup from
// scratch when they need their own.
func resolve(gs *GridSlice, cells []cell) []record {
	recs := make([]record, len(cells))
	for i, c := range cells {
		recs[i] = record{
			Lon:   gs.Lons[c.lonIndex],
			Lat:   gs.Lats[c.latIndex],
			Day:   gs.Times[c.timeIndex],
			Value: c.value,
		}
	}
	return recs
}

// dropIncompleteRows removes records with a missing value, latitude, or
// longitude. The date field is deliberately not part of the test:
// missing-date arithmetic is undefined and a record without a date could
// not have been melted in the first place.
func dropIncompleteRows(recs []record) []record {
	out := make([]record, 0, len(recs))
	for _, r := range recs {
		if math.IsNaN(r.Value) || math.IsNaN(r.Lat) || math.IsNaN(r.Lon) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// gridPoint is a unique (longitude, latitude) location.
type gridPoint struct {
	Lon, Lat float64
}

// groupPoints returns the unique (longitude, latitude) pairs among recs in
// ascending (longitude, latitude) order, along with 1-based ids keyed by
// pair. Each caller gets a fresh numbering; ids from different passes must
// never be compared.
func groupPoints(recs []record) ([]gridPoint, map[gridPoint]int) {
	seen := make(map[gridPoint]bool)
	var pts []gridPoint
	for _, r := range recs {
		p := gridPoint{Lon: r.Lon, Lat: r.Lat}
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Lon != pts[j].Lon {
			return pts[i].Lon < pts[j].Lon
		}
		return pts[i].Lat < pts[j].Lat
	})
	ids := make(map[gridPoint]int, len(pts))
	for i, p := range pts {
		ids[p] = i + 1
	}
	return pts, ids
}
