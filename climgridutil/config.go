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

package climgridutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/climgrid"
	"github.com/spf13/cast"
)

// optionsFromConfig assembles the subsetting options shared by the file
// and remote commands.
func optionsFromConfig(cfg *viper.Viper) (climgrid.Options, error) {
	o := climgrid.Options{
		DropIncomplete: cfg.GetBool("dropincomplete"),
	}
	area, err := areaFromConfig(cfg)
	if err != nil {
		return o, err
	}
	o.Area = area
	period := strings.TrimSpace(cfg.GetString("period"))
	if period == "" {
		return o, fmt.Errorf("climgrid: no period specified; use the --period flag")
	}
	o.Period = climgrid.Interval(period)
	return o, nil
}

// areaFromConfig builds the requested area from either the shapefile or
// the bbox configuration variable.
func areaFromConfig(cfg *viper.Viper) (climgrid.Area, error) {
	if f := os.ExpandEnv(cfg.GetString("shapefile")); f != "" {
		return climgrid.LoadAreaShapefile(f)
	}
	bbox := cfg.GetString("bbox")
	if bbox == "" {
		return nil, fmt.Errorf("climgrid: no area specified; use the --bbox or --shapefile flag")
	}
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("climgrid: bbox must be \"minLon,maxLon,minLat,maxLat\" but is %q", bbox)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("climgrid: parsing bbox element %q: %v", p, err)
		}
		vals[i] = v
	}
	return climgrid.RectArea{
		MinLon: vals[0], MaxLon: vals[1],
		MinLat: vals[2], MaxLat: vals[3],
	}, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`climgrid: you need to specify an output file (for example: --output="subset.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("climgrid: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

// writeOutput saves the table in the format the output extension selects.
func writeOutput(t *climgrid.Table, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		return t.WriteXLSX(path)
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
