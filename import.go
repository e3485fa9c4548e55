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

import "github.com/ctessum/cdf"

// Options configures a subsetting request.
type Options struct {
	// Area is the spatial constraint: a RectArea or a PolygonArea.
	Area Area

	// Period is the temporal constraint: an IndexPeriod, DatePeriod, or
	// Interval.
	Period Period

	// DropIncomplete removes individual rows with a missing value after
	// point-level filtering. Points missing all their values are removed
	// regardless.
	DropIncomplete bool

	// BaseURL overrides the remote catalog location. Remote imports only.
	BaseURL string

	// CacheDir is where downloaded datasets are kept. Defaults to the
	// climgrid directory under the user cache directory. Remote imports
	// only.
	CacheDir string
}

// ImportFile extracts a subset of the named variable from a local NetCDF
// dataset and returns it as a long-form table.
func ImportFile(path, varName string, o Options) (*Table, error) {
	if o.Area == nil {
		return nil, validationErrorf("no area specified")
	}
	if o.Period == nil {
		return nil, validationErrorf("no period specified")
	}
	var t *Table
	err := withDataset(path, func(nc *cdf.File) error {
		var err error
		t, err = subset(nc, path, varName, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ImportRemote resolves a variable name and grid-resolution identifier to
// an E-OBS catalog file, downloads it unless cached, and runs the same
// subsetting pipeline as ImportFile.
func ImportRemote(varName, grid string, o Options) (*Table, error) {
	if err := checkRemoteVariable(varName); err != nil {
		return nil, err
	}
	url, err := remoteURL(o.BaseURL, varName, grid)
	if err != nil {
		return nil, err
	}
	path, err := maybeDownload(url, o.CacheDir)
	if err != nil {
		return nil, err
	}
	return ImportFile(path, varName, o)
}

// subset runs the pipeline on an open dataset: derive index ranges, read
// the hyperslab, melt, filter, and augment. Any error aborts the whole
// request; there are no partial results.
func subset(nc *cdf.File, path, varName string, o Options) (*Table, error) {
	if !hasVariable(nc, varName) {
		return nil, validationErrorf("dataset %s has no variable %s", path, varName)
	}
	lons, err := readAxis(nc, path, lonDim)
	if err != nil {
		return nil, err
	}
	lats, err := readAxis(nc, path, latDim)
	if err != nil {
		return nil, err
	}
	times, err := readAxis(nc, path, timeDim)
	if err != nil {
		return nil, err
	}

	b, err := o.Area.Bounds()
	if err != nil {
		return nil, err
	}
	lonR, err := indexRange(lonDim, lons, BoundRange{Lower: b.Min.X, Upper: b.Max.X})
	if err != nil {
		return nil, err
	}
	latR, err := indexRange(latDim, lats, BoundRange{Lower: b.Min.Y, Upper: b.Max.Y})
	if err != nil {
		return nil, err
	}
	timeR, err := o.Period.timeRange(times)
	if err != nil {
		return nil, err
	}

	gs, err := readSubset(nc, path, varName, lons, lats, times, lonR, latR, timeR)
	if err != nil {
		return nil, err
	}

	cells := dropEmptyPoints(melt(gs))
	recs := resolve(gs, cells)
	if o.DropIncomplete {
		recs = dropIncompleteRows(recs)
	}
	if pa, ok := o.Area.(*PolygonArea); ok {
		recs, err = pa.filter(recs)
		if err != nil {
			return nil, err
		}
	}
	return augment(varName, recs), nil
}
