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

package nccheck

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// specTree and fileTree build a compliant pair of containers covering
// dimensions, attributes, variables and a nested group.
func specTree(t *testing.T) *Container {
	t.Helper()
	return &Container{
		Attributes: *attrs(t, `{
			"Conventions": "CF-1.9",
			"flight_number": "<str: derived_from_file>"
		}`),
		Dimensions: []Dimension{{Name: "Time", Size: sizeOf(3600)}},
		Variables: []Variable{{
			Meta:       VariableMeta{Name: "Time", Datatype: "<int32>", Required: true},
			Dimensions: []string{"Time"},
			Attributes: *attrs(t, `{"units": "<str: derived_from_file>"}`),
		}},
		Groups: []Group{{
			Meta: GroupMeta{Name: "aux", Required: true},
			Container: Container{
				Attributes: *attrs(t, `{"purpose": "housekeeping"}`),
			},
		}},
	}
}

func fileTree(t *testing.T) *Container {
	t.Helper()
	return &Container{
		Attributes: *attrs(t, `{
			"Conventions": "CF-1.9",
			"flight_number": "c224"
		}`),
		Dimensions: []Dimension{{Name: "Time", Size: sizeOf(3600)}},
		Variables: []Variable{{
			Meta:       VariableMeta{Name: "Time", Datatype: "int32"},
			Dimensions: []string{"Time"},
			Attributes: *attrs(t, `{"units": "seconds since midnight"}`),
		}},
		Groups: []Group{{
			Meta: GroupMeta{Name: "aux"},
			Container: Container{
				Attributes: *attrs(t, `{"purpose": "housekeeping"}`),
			},
		}},
	}
}

func TestCheckContainersCompliant(t *testing.T) {
	pc := New("")
	l := pc.CheckContainers(specTree(t), fileTree(t))

	passing, err := l.Passing()
	if err != nil {
		t.Fatal(err)
	}
	if !passing {
		t.Errorf("compliant file failed: %+v", l.Checks())
	}
	if errs, _ := l.Errors(); len(errs) != 0 {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestCheckMissingRequiredVariable(t *testing.T) {
	file := fileTree(t)
	file.Variables = nil

	pc := New("")
	l := pc.CheckContainers(specTree(t), file)

	errs, err := l.Errors()
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 {
		t.Fatalf("have %d errors, want 1: %+v", len(errs), errs)
	}
	if have, want := errs[0].Path, "/Time"; have != want {
		t.Errorf("path: have %s, want %s", have, want)
	}
	if have, want := errs[0].Message, "variable does not exist in file"; have != want {
		t.Errorf("message: have %q, want %q", have, want)
	}
}

func TestCheckDatatypeAlias(t *testing.T) {
	spec := specTree(t)
	spec.Variables[0].Meta.Datatype = "<int8>"
	file := fileTree(t)
	file.Variables[0].Meta.Datatype = "byte"

	pc := New("")
	l := pc.CheckContainers(spec, file)

	// Equivalent but differently-spelled datatypes pass with a comment.
	passing, err := l.Passing()
	if err != nil {
		t.Fatal(err)
	}
	if !passing {
		t.Errorf("aliased datatype failed: %+v", l.Checks())
	}
	comments, err := l.Comments()
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Fatalf("have %d comments, want 1: %+v", len(comments), comments)
	}
	if have, want := comments[0].Message, "datatype byte is an alias of int8"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}

func TestCheckWrongDatatype(t *testing.T) {
	file := fileTree(t)
	file.Variables[0].Meta.Datatype = "float64"

	pc := New("")
	l := pc.CheckContainers(specTree(t), file)

	errs, err := l.Errors()
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 {
		t.Fatalf("have %d errors, want 1: %+v", len(errs), errs)
	}
	if have, want := errs[0].Message, "incorrect datatype: found float64, expected int32"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}
}

func TestCheckGroupRequirement(t *testing.T) {
	file := fileTree(t)
	file.Groups = nil

	pc := New("")
	l := pc.CheckContainers(specTree(t), file)
	errs, _ := l.Errors()
	if len(errs) != 1 || errs[0].Path != "/aux" {
		t.Errorf("unexpected errors: %+v", errs)
	}

	// The same absence is silent when the group is optional.
	spec := specTree(t)
	spec.Groups[0].Meta.Required = false
	l = pc.CheckContainers(spec, file)
	if passing, _ := l.Passing(); !passing {
		errs, _ := l.Errors()
		t.Errorf("optional missing group failed: %+v", errs)
	}
}

func TestCheckExtraFileElements(t *testing.T) {
	file := fileTree(t)
	file.Variables = append(file.Variables, Variable{
		Meta: VariableMeta{Name: "mystery", Datatype: "float32"},
	})

	pc := New("")
	l := pc.CheckContainers(specTree(t), file)
	errs, err := l.Errors()
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 || errs[0].Path != "/mystery" {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestCheckIdempotent(t *testing.T) {
	// Two runs over identical inputs must produce identical ledgers,
	// check for check, in the same order.
	pc := New("")
	a := pc.CheckContainers(specTree(t), fileTree(t)).Checks()
	b := pc.CheckContainers(specTree(t), fileTree(t)).Checks()
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated runs produced different ledgers")
	}
}

// readerFunc adapts a function to the Reader interface.
type readerFunc func(path string) (*Container, error)

func (f readerFunc) Read(path string) (*Container, error) { return f(path) }

func TestCheck(t *testing.T) {
	dir, err := ioutil.TempDir("", "nccheck")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	definition := filepath.Join(dir, "product.json")
	src := `{
		"attributes": {"Conventions": "CF-1.9"},
		"dimensions": [{"name": "Time", "size": 3600}],
		"variables": [],
		"groups": []
	}`
	if err := ioutil.WriteFile(definition, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	pc := New(definition)
	l, err := pc.Check(readerFunc(func(path string) (*Container, error) {
		if path != "core.nc" {
			t.Errorf("read %s, want core.nc", path)
		}
		return &Container{
			Attributes: *attrs(t, `{"Conventions": "CF-1.9"}`),
			Dimensions: []Dimension{{Name: "Time", Size: sizeOf(3600)}},
		}, nil
	}), "core.nc")
	if err != nil {
		t.Fatal(err)
	}
	passing, err := l.Passing()
	if err != nil {
		t.Fatal(err)
	}
	if !passing {
		t.Errorf("compliant file failed: %+v", l.Checks())
	}
}

func TestCheckBadDefinition(t *testing.T) {
	pc := New("/nonexistent/product.json")
	if _, err := pc.Check(readerFunc(func(string) (*Container, error) {
		t.Fatal("reader called with unloadable definition")
		return nil, nil
	}), "core.nc"); err == nil {
		t.Error("expected an error for a missing definition")
	}
}
