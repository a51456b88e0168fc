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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestRepresentationReader(t *testing.T) {
	dir, err := ioutil.TempDir("", "nccheck")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	src := `{
		"attributes": {"Conventions": "CF-1.9"},
		"dimensions": [{"name": "Time", "size": null}],
		"variables": [],
		"groups": [{
			"meta": {"name": "aux", "required": false},
			"attributes": {"purpose": "housekeeping"},
			"dimensions": [{"name": "sps", "size": 32}],
			"variables": [],
			"groups": []
		}]
	}`
	path := filepath.Join(dir, "core.json")
	if err := ioutil.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := RepresentationReader{}.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Dimensions) != 1 || c.Dimensions[0].Size != nil {
		t.Errorf("unexpected dimensions: %+v", c.Dimensions)
	}
	if len(c.Groups) != 1 {
		t.Fatalf("have %d groups, want 1", len(c.Groups))
	}
	g := c.Groups[0]
	if g.Meta.Name != "aux" {
		t.Errorf("group name: have %s, want aux", g.Meta.Name)
	}
	if len(g.Dimensions) != 1 || g.Dimensions[0].Size == nil || *g.Dimensions[0].Size != 32 {
		t.Errorf("unexpected group dimensions: %+v", g.Dimensions)
	}
}

func TestReaderFor(t *testing.T) {
	if _, ok := ReaderFor("core.json").(RepresentationReader); !ok {
		t.Error("json path did not pick the representation reader")
	}
	if _, ok := ReaderFor("core.nc").(*Reader); !ok {
		t.Error("nc path did not pick the classic reader")
	}
}
