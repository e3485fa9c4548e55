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
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultBaseURL is the default location of the E-OBS gridded observation
// catalog.
const DefaultBaseURL = "https://opendap.knmi.nl/knmi/thredds/fileServer"

// eobsVersion is the dataset release the remote file names refer to.
const eobsVersion = "v17.0"

// remoteVariables are the E-OBS variables this package can import.
var remoteVariables = map[string]string{
	"tg": "daily mean temperature",
	"tn": "daily minimum temperature",
	"tx": "daily maximum temperature",
	"rr": "daily precipitation sum",
	"pp": "daily averaged sea level pressure",
}

// unsupportedSuffixes are recognized companion statistics that are not
// implemented yet.
var unsupportedSuffixes = []string{"_stderr"}

// remoteGrids maps a grid-resolution identifier to the catalog directory
// and file-name token it selects. There are two resolution tiers, each
// cataloged on a regular and on a rotated-pole grid. The identifier only
// affects how the remote source path is built.
var remoteGrids = map[string]struct {
	dir, token string
}{
	"0.25reg": {dir: "e-obs_0.25regular", token: "0.25deg_reg"},
	"0.50reg": {dir: "e-obs_0.50regular", token: "0.50deg_reg"},
	"0.25rot": {dir: "e-obs_0.25rotated", token: "0.25deg_rot"},
	"0.50rot": {dir: "e-obs_0.50rotated", token: "0.50deg_rot"},
}

// checkRemoteVariable validates a variable name against the catalog.
func checkRemoteVariable(varName string) error {
	if _, ok := remoteVariables[varName]; ok {
		return nil
	}
	for _, suffix := range unsupportedSuffixes {
		base := len(varName) - len(suffix)
		if base > 0 && varName[base:] == suffix {
			if _, ok := remoteVariables[varName[:base]]; ok {
				return validationErrorf("variable %s is recognized but not implemented", varName)
			}
		}
	}
	return validationErrorf("unknown variable %s", varName)
}

// remoteURL builds the source URL for a variable on a given grid.
func remoteURL(baseURL, varName, grid string) (string, error) {
	g, ok := remoteGrids[grid]
	if !ok {
		return "", validationErrorf("unrecognized grid identifier %s", grid)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s/%s_%s_%s.nc", baseURL, g.dir, varName, g.token, eobsVersion), nil
}

// maybeDownload returns a local path holding the contents of url,
// downloading into cacheDir unless a previous download is already there.
func maybeDownload(url, cacheDir string) (string, error) {
	if cacheDir == "" {
		ucd, err := os.UserCacheDir()
		if err != nil {
			return "", &ResourceError{Op: "locating cache for", Path: url, Err: err}
		}
		cacheDir = filepath.Join(ucd, "climgrid")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", &ResourceError{Op: "creating cache for", Path: url, Err: err}
	}
	dst := filepath.Join(cacheDir, filepath.Base(url))
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		return dst, nil
	}
	if err := downloadHTTP(url, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// downloadHTTP fetches url into dst, writing through a temporary file so a
// partial download never masquerades as a cached dataset.
func downloadHTTP(url, dst string) error {
	resp, err := http.Get(url)
	if err != nil {
		return &ResourceError{Op: "downloading", Path: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &ResourceError{Op: "downloading", Path: url,
			Err: fmt.Errorf("status %s", resp.Status)}
	}
	tmp := dst + ".download"
	f, err := os.Create(tmp)
	if err != nil {
		return &ResourceError{Op: "caching", Path: url, Err: err}
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return &ResourceError{Op: "downloading", Path: url, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &ResourceError{Op: "caching", Path: url, Err: err}
	}
	return os.Rename(tmp, dst)
}
