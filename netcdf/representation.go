/*
Copyright © 2023 the nccheck authors.
This file is part of nccheck.

nccheck is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nccheck is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nccheck.  If not, see <http://www.gnu.org/licenses/>.
*/

package netcdf

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/nccheck/nccheck"
)

// A RepresentationReader loads Container trees that other tooling has
// already rendered to JSON. Unlike classic NetCDF files, JSON
// representations may carry nested groups.
type RepresentationReader struct{}

// Read loads the JSON representation at path.
func (RepresentationReader) Read(path string) (*nccheck.Container, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netcdf: %v", err)
	}
	c := new(nccheck.Container)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("netcdf: parsing representation %s: %v", path, err)
	}
	return c, nil
}

// ReaderFor picks a reader for the given file path: JSON representations
// by extension, classic NetCDF otherwise.
func ReaderFor(path string) nccheck.Reader {
	if strings.HasSuffix(path, ".json") {
		return RepresentationReader{}
	}
	return NewReader()
}
