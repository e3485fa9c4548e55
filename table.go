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
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/tealeg/xlsx"
)

// Row is one observation of the subset variable at one point and date.
type Row struct {
	Time             time.Time
	Year, Month, Day int
	Latitude         float64
	Longitude        float64
	Value            float64
}

// Table is the long-form result of a subsetting request: one row per
// surviving (point, date) pair, sorted by (longitude, latitude, time).
type Table struct {
	Var  string // name of the subset variable; labels the value column.
	Rows []Row
}

// Columns returns the column names in output order.
func (t *Table) Columns() []string {
	return []string{"time", "year", "month", "day", "latitude", "longitude", t.Var}
}

// augment derives the calendar fields for each record and assembles the
// final sorted table.
func augment(varName string, recs []record) *Table {
	rows := make([]Row, len(recs))
	for i, r := range recs {
		d := dayDate(r.Day)
		rows[i] = Row{
			Time:      d,
			Year:      d.Year(),
			Month:     int(d.Month()),
			Day:       d.Day(),
			Latitude:  r.Lat,
			Longitude: r.Lon,
			Value:     r.Value,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Longitude != rows[j].Longitude {
			return rows[i].Longitude < rows[j].Longitude
		}
		if rows[i].Latitude != rows[j].Latitude {
			return rows[i].Latitude < rows[j].Latitude
		}
		return rows[i].Time.Before(rows[j].Time)
	})
	return &Table{Var: varName, Rows: rows}
}

// formatValue renders a value cell; missing values become "NA".
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes the table to w with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	for _, r := range t.Rows {
		err := cw.Write([]string{
			r.Time.Format("2006-01-02"),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Day),
			strconv.FormatFloat(r.Latitude, 'g', -1, 64),
			strconv.FormatFloat(r.Longitude, 'g', -1, 64),
			formatValue(r.Value),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table to a Microsoft Excel file with one sheet
// named after the variable.
func (t *Table) WriteXLSX(path string) error {
	f := xlsx.NewFile()
	s, err := f.AddSheet(t.Var)
	if err != nil {
		return err
	}
	hdr := s.AddRow()
	for _, c := range t.Columns() {
		hdr.AddCell().SetString(c)
	}
	for _, r := range t.Rows {
		row := s.AddRow()
		row.AddCell().SetString(r.Time.Format("2006-01-02"))
		row.AddCell().SetInt(r.Year)
		row.AddCell().SetInt(r.Month)
		row.AddCell().SetInt(r.Day)
		row.AddCell().SetFloat(r.Latitude)
		row.AddCell().SetFloat(r.Longitude)
		if math.IsNaN(r.Value) {
			row.AddCell().SetString("NA")
		} else {
			row.AddCell().SetFloat(r.Value)
		}
	}
	return f.Save(path)
}
