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

// Command climgrid is a command-line interface for extracting point
// tables from gridded climate datasets.
package main

import (
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/climgrid/climgridutil"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	log.SetFlags(0)
	log.SetOutput(logrus.StandardLogger().Writer())
}

func main() {
	if err := climgridutil.Root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
