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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Names of the coordinate axes in the dataset.
const (
	lonDim  = "longitude"
	latDim  = "latitude"
	timeDim = "time"
)

// GridSlice is a dense sub-array of a gridded variable together with the
// resolved coordinate values for each axis. Data always has shape
// (len(Lons), len(Lats), len(Times)), even when only one time step was
// selected. Missing cells hold NaN.
type GridSlice struct {
	Lons, Lats, Times []float64
	Data              *sparse.DenseArray
}

// withDataset opens the NetCDF dataset at path, runs fn on it, and
// guarantees the file is released on every exit path, including failures
// inside fn. A close failure surfaces as a ResourceError unless fn
// already failed.
func withDataset(path string, fn func(nc *cdf.File) error) (err error) {
	ff, err := os.Open(path)
	if err != nil {
		return &ResourceError{Op: "opening", Path: path, Err: err}
	}
	defer func() {
		if cerr := ff.Close(); cerr != nil && err == nil {
			err = &ResourceError{Op: "closing", Path: path, Err: cerr}
		}
	}()
	nc, err := cdf.Open(ff)
	if err != nil {
		return &ResourceError{Op: "opening", Path: path, Err: err}
	}
	return fn(nc)
}

// hasVariable reports whether the dataset header declares the variable.
func hasVariable(nc *cdf.File, name string) bool {
	for _, v := range nc.Header.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

// readAxis reads a full coordinate axis.
func readAxis(nc *cdf.File, path, name string) ([]float64, error) {
	if !hasVariable(nc, name) {
		return nil, validationErrorf("dataset %s has no %s axis", path, name)
	}
	vals, err := readFloats(nc, path, name, nil, nil, nc.Header.Lengths(name)[0])
	if err != nil {
		return nil, err
	}
	if !ascending(vals) {
		return nil, validationErrorf("dataset %s: %s axis is not monotonically increasing", path, name)
	}
	return vals, nil
}

// readSubset reads the hyperslab of the variable selected by the three
// index ranges, along with the matching coordinate sub-axes. The variable
// must be indexed in (longitude, latitude, time) order.
func readSubset(nc *cdf.File, path, varName string, lons, lats, times []float64, lonR, latR, timeR IndexRange) (*GridSlice, error) {
	dims := nc.Header.Dimensions(varName)
	if len(dims) != 3 || dims[0] != lonDim || dims[1] != latDim || dims[2] != timeDim {
		return nil, validationErrorf("variable %s has dimensions %v; want [%s %s %s]",
			varName, dims, lonDim, latDim, timeDim)
	}
	begin := []int{lonR.Start, latR.Start, timeR.Start}
	end := []int{lonR.End(), latR.End(), timeR.End()}
	vals, err := readFloats(nc, path, varName, begin, end, lonR.Count*latR.Count*timeR.Count)
	if err != nil {
		return nil, err
	}
	data := sparse.ZerosDense(lonR.Count, latR.Count, timeR.Count)
	copy(data.Elements, vals)
	return &GridSlice{
		Lons:  lons[lonR.Start:lonR.End()],
		Lats:  lats[latR.Start:latR.End()],
		Times: times[timeR.Start:timeR.End()],
		Data:  data,
	}, nil
}

// readFloats reads n values of a floating-point variable, translating the
// _FillValue sentinel to NaN. This is the only place sentinel values are
// compared; everywhere downstream missingness is tested with math.IsNaN.
func readFloats(nc *cdf.File, path, v string, begin, end []int, n int) ([]float64, error) {
	r := nc.Reader(v, begin, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, &ResourceError{Op: "reading " + v + " from", Path: path, Err: err}
	}
	var vals []float64
	switch b := buf.(type) {
	case []float64:
		vals = b
	case []float32:
		vals = make([]float64, len(b))
		for i, x := range b {
			vals[i] = float64(x)
		}
	case []int32:
		vals = make([]float64, len(b))
		for i, x := range b {
			vals[i] = float64(x)
		}
	case []int16:
		vals = make([]float64, len(b))
		for i, x := range b {
			vals[i] = float64(x)
		}
	default:
		return nil, validationErrorf("variable %s is not numeric (%T)", v, buf)
	}
	if noDataI := nc.Header.GetAttribute(v, "_FillValue"); noDataI != nil {
		var noData float64
		switch nd := noDataI.(type) {
		case []float32:
			noData = float64(nd[0])
		case []float64:
			noData = nd[0]
		default:
			return nil, validationErrorf("invalid type for %s _FillValue: %T", v, noDataI)
		}
		for i, x := range vals {
			if x == noData {
				vals[i] = math.NaN()
			}
		}
	}
	return vals, nil
}
