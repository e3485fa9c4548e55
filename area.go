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
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
)

var longlat *proj.SR

func init() {
	var err error
	longlat, err = proj.Parse("+proj=longlat")
	if err != nil {
		panic(err)
	}
}

// An Area is the spatial constraint of a request: either a plain
// rectangle (RectArea) or a set of polygons (PolygonArea). Its bounding
// box, in longitude-latitude coordinates, drives spatial index-range
// selection; polygon areas additionally filter points by containment.
type Area interface {
	Bounds() (*geom.Bounds, error)
}

// RectArea is a rectangular bound given as min/max per spatial axis. It
// acts purely as a pair of BoundRanges; no containment test is run.
type RectArea struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// Bounds returns the rectangle itself.
func (a RectArea) Bounds() (*geom.Bounds, error) {
	if a.MaxLon < a.MinLon || a.MaxLat < a.MinLat {
		return nil, validationErrorf("rectangular area %+v has max < min", a)
	}
	return &geom.Bounds{
		Min: geom.Point{X: a.MinLon, Y: a.MinLat},
		Max: geom.Point{X: a.MaxLon, Y: a.MaxLat},
	}, nil
}

// PolygonArea restricts a request to the union of one or more polygons
// expressed in the spatial reference SR. A nil SR means the polygons are
// already in longitude-latitude coordinates.
type PolygonArea struct {
	Polygons []geom.Polygonal
	SR       *proj.SR
}

// Bounds returns the bounding box of all polygons in longitude-latitude
// coordinates.
func (a *PolygonArea) Bounds() (*geom.Bounds, error) {
	polys, err := a.longlatPolygons()
	if err != nil {
		return nil, err
	}
	b := geom.NewBounds()
	for _, p := range polys {
		b.Extend(p.Bounds())
	}
	if b.Empty() {
		return nil, validationErrorf("polygon area is empty")
	}
	return b, nil
}

// longlatPolygons reprojects the polygons into longitude-latitude
// coordinates.
func (a *PolygonArea) longlatPolygons() ([]geom.Polygonal, error) {
	if len(a.Polygons) == 0 {
		return nil, validationErrorf("polygon area has no polygons")
	}
	if a.SR == nil {
		return a.Polygons, nil
	}
	ct, err := a.SR.NewTransform(longlat)
	if err != nil {
		return nil, validationErrorf("creating area coordinate transform: %v", err)
	}
	polys := make([]geom.Polygonal, len(a.Polygons))
	for i, p := range a.Polygons {
		g, err := p.Transform(ct)
		if err != nil {
			return nil, validationErrorf("reprojecting area polygon %d: %v", i, err)
		}
		pp, ok := g.(geom.Polygonal)
		if !ok {
			return nil, validationErrorf("area polygon %d reprojected to non-polygon %T", i, g)
		}
		polys[i] = pp
	}
	return polys, nil
}

// filter keeps the records whose (longitude, latitude) point lies inside
// the unioned polygon set. The current records are regrouped into fresh
// point ids, each unique point is tested once, and only records belonging
// to a contained point survive. A point whose containment test matches no
// polygon is outside, the same as an explicit not-contained result.
func (a *PolygonArea) filter(recs []record) ([]record, error) {
	polys, err := a.longlatPolygons()
	if err != nil {
		return nil, err
	}
	pts, ids := groupPoints(recs)
	contained := make(map[int]bool, len(pts))
	for _, p := range pts {
		gp := geom.Point{X: p.Lon, Y: p.Lat}
		for _, poly := range polys {
			if gp.Within(poly) != geom.Outside {
				contained[ids[p]] = true
				break
			}
		}
	}
	out := make([]record, 0, len(recs))
	for _, r := range recs {
		if contained[ids[gridPoint{Lon: r.Lon, Lat: r.Lat}]] {
			out = append(out, r)
		}
	}
	return out, nil
}

// LoadAreaShapefile reads every polygon in a shapefile into a
// PolygonArea, using the spatial reference from the accompanying .prj
// file.
func LoadAreaShapefile(path string) (*PolygonArea, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, &ResourceError{Op: "opening", Path: path, Err: err}
	}
	defer d.Close()
	sr, err := d.SR()
	if err != nil {
		return nil, &ResourceError{Op: "reading projection of", Path: path, Err: err}
	}
	var polys []geom.Polygonal
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		p, ok := g.(geom.Polygonal)
		if !ok {
			return nil, validationErrorf("shapefile %s contains non-polygon geometry %T", path, g)
		}
		polys = append(polys, p)
	}
	if err := d.Error(); err != nil {
		return nil, &ResourceError{Op: "reading", Path: path, Err: err}
	}
	return &PolygonArea{Polygons: polys, SR: sr}, nil
}
