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

// Package climgridutil holds the command-line front end for the climgrid
// subsetting library.
package climgridutil

import (
	"fmt"
	"log"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/climgrid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Cfg = viper.New()

	// Options are the configuration options available to climgrid.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "variable",
			usage: `
              variable specifies the name of the gridded variable to subset,
              for example tg for the E-OBS daily mean temperature.`,
			shorthand:  "v",
			defaultVal: "tg",
			flagsets:   []*pflag.FlagSet{fileCmd.Flags(), remoteCmd.Flags()},
		},
		{
			name: "period",
			usage: `
              period is the calendar interval to subset: a year ("2010"), a
              month ("2010-05"), a day, or an inclusive range such as
              "2010-01-01/2010-12-31".`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fileCmd.Flags(), remoteCmd.Flags()},
		},
		{
			name: "bbox",
			usage: `
              bbox is a rectangular bounding area given as
              "minLon,maxLon,minLat,maxLat". Ignored when shapefile is set.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fileCmd.Flags(), remoteCmd.Flags()},
		},
		{
			name: "shapefile",
			usage: `
              shapefile is the path to a polygon shapefile restricting the
              output to points inside its polygons.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fileCmd.Flags(), remoteCmd.Flags()},
		},
		{
			name: "dropincomplete",
			usage: `
              dropincomplete removes individual rows with missing values
              instead of keeping them as NA.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{fileCmd.Flags(), remoteCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path the result table is written to. The
              extension selects the format: .xlsx for Excel, anything else
              for CSV.`,
			shorthand:  "o",
			defaultVal: "output.csv",
			flagsets:   []*pflag.FlagSet{fileCmd.Flags(), remoteCmd.Flags()},
		},
		{
			name: "grid",
			usage: `
              grid is the grid-resolution identifier of the remote catalog
              file: one of 0.25reg, 0.50reg, 0.25rot, or 0.50rot.`,
			defaultVal: "0.25reg",
			flagsets:   []*pflag.FlagSet{remoteCmd.Flags()},
		},
		{
			name: "baseurl",
			usage: `
              baseurl overrides the remote catalog location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{remoteCmd.Flags()},
		},
		{
			name: "cachedir",
			usage: `
              cachedir is the directory downloaded datasets are kept in.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{remoteCmd.Flags()},
		},
	}

	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(fileCmd)
	Root.AddCommand(remoteCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("climgrid: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "climgrid",
	Short: "Extract point tables from gridded climate datasets.",
	Long: `climgrid extracts a spatial and temporal subset of a gridded climate
variable and reshapes it into a long-form table with one row per point
and date.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'CLIMGRID_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of climgrid.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("climgrid v%s\n", climgrid.Version)
	},
	DisableAutoGenTag: true,
}

var fileCmd = &cobra.Command{
	Use:   "file [dataset.nc]",
	Short: "Subset a local NetCDF dataset",
	Long: `file extracts the requested subset from a NetCDF dataset on the
local file system and writes the result table to the output file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := optionsFromConfig(Cfg)
		if err != nil {
			return err
		}
		out, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		log.Println("Subsetting dataset...")
		t, err := climgrid.ImportFile(args[0], Cfg.GetString("variable"), o)
		if err != nil {
			return err
		}
		log.Printf("Writing %d rows...", len(t.Rows))
		return writeOutput(t, out)
	},
	DisableAutoGenTag: true,
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Subset a dataset from the E-OBS catalog",
	Long: `remote resolves the requested variable and grid identifier to a
file in the E-OBS gridded observation catalog, downloads it unless a
cached copy exists, and writes the result table to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := optionsFromConfig(Cfg)
		if err != nil {
			return err
		}
		o.BaseURL = Cfg.GetString("baseurl")
		o.CacheDir = Cfg.GetString("cachedir")
		out, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		log.Println("Fetching and subsetting dataset...")
		t, err := climgrid.ImportRemote(Cfg.GetString("variable"), Cfg.GetString("grid"), o)
		if err != nil {
			return err
		}
		log.Printf("Writing %d rows...", len(t.Rows))
		return writeOutput(t, out)
	},
	DisableAutoGenTag: true,
}
