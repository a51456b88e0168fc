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
	"fmt"

	"github.com/sirupsen/logrus"
)

// A Reader turns a data file into its in-memory Container
// representation. Implementations place no constraint on the file format
// beyond the Container shape contract.
type Reader interface {
	Read(path string) (*Container, error)
}

// A ProductChecker checks data files against one product specification.
// Each call to Check or CheckContainers is an independent run with its
// own Ledger; a ProductChecker must not be used from multiple goroutines
// at once.
type ProductChecker struct {
	// Definition is the path of the product specification document.
	Definition string

	// Log receives debug information about the progress of a check.
	Log logrus.FieldLogger

	ledger *Ledger
}

// New returns a ProductChecker for the given specification document.
func New(definition string) *ProductChecker {
	return &ProductChecker{
		Definition: definition,
		Log:        logrus.StandardLogger(),
	}
}

// Check loads the specification document, reads filename through r, and
// checks the resulting tree. The returned Ledger holds every check
// performed. An error is returned only when the specification document
// or the file itself cannot be loaded; compliance problems never abort
// the run.
func (pc *ProductChecker) Check(r Reader, filename string) (*Ledger, error) {
	spec, err := LoadDefinition(pc.Definition)
	if err != nil {
		return nil, err
	}
	file, err := r.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("nccheck: reading %s: %v", filename, err)
	}
	pc.Log.WithFields(logrus.Fields{
		"definition": pc.Definition,
		"file":       filename,
	}).Debug("checking file against specification")
	return pc.CheckContainers(spec, file), nil
}

// CheckContainers checks an already-materialized file tree against an
// already-loaded specification tree.
func (pc *ProductChecker) CheckContainers(spec, file *Container) *Ledger {
	pc.ledger = new(Ledger)
	pc.compareContainer(spec, file, "", 1)
	return pc.ledger
}

// compareContainer is the recursive core of a check. The order of
// operations is fixed: dimensions, then attributes, then variables, then
// groups. Every step records its own outcomes; nothing short-circuits.
func (pc *ProductChecker) compareContainer(spec, file *Container, path string, depth int) {
	pc.checkDimensions(spec, file, path, depth)
	pc.compareAttributes(&spec.Attributes, &file.Attributes, path)
	pc.compareVariables(spec.Variables, file.Variables, path)
	pc.compareGroups(spec.Groups, file.Groups, path, depth)
}

// compareVariables checks each specification variable for existence,
// datatype and attributes, then checks that every file variable is
// declared in the specification.
func (pc *ProductChecker) compareVariables(spec, file []Variable, path string) {
	for i := range spec {
		sv := &spec[i]
		vpath := fmt.Sprintf("%s/%s", path, sv.Meta.Name)

		fv, err := findVariable(sv.Meta.Name, file)
		status := pc.resolveElement("variable", vpath, err == nil, sv.Meta.Required, false)
		if status != Exists {
			continue
		}

		pc.checkVariableDtype(sv, fv, vpath)
		pc.compareAttributes(&sv.Attributes, &fv.Attributes, vpath)
	}

	for i := range file {
		fv := &file[i]
		vpath := fmt.Sprintf("%s/%s", path, fv.Meta.Name)
		_, err := findVariable(fv.Meta.Name, spec)
		pc.resolveElement("variable", vpath, err == nil, true, true)
	}
}

// checkVariableDtype compares a variable's declared datatype against the
// file's. Equivalent but differently-spelled tokens pass with a comment
// so the discrepancy stays visible.
func (pc *ProductChecker) checkVariableDtype(spec, file *Variable, path string) {
	description := fmt.Sprintf("Checking datatype of %s", path)
	want := spec.Meta.Datatype
	got := file.Meta.Datatype

	eq, err := Equivalent(want, got)
	if err != nil {
		pc.ledger.fail(description, path, "%v", err)
		return
	}
	if !eq {
		pc.ledger.fail(description, path,
			"incorrect datatype: found %s, expected %s",
			normalizeToken(got), normalizeToken(want))
		return
	}
	if normalizeToken(want) != normalizeToken(got) {
		pc.ledger.comment(description, path,
			"datatype %s is an alias of %s",
			normalizeToken(got), normalizeToken(want))
		return
	}
	pc.ledger.pass(description)
}

// compareGroups checks each specification group for existence and
// recurses into matched pairs, then checks that every file group is
// declared in the specification.
func (pc *ProductChecker) compareGroups(spec, file []Group, path string, depth int) {
	for i := range spec {
		sg := &spec[i]
		gpath := fmt.Sprintf("%s/%s", path, sg.Meta.Name)

		fg, err := findGroup(sg.Meta.Name, file)
		status := pc.resolveElement("group", gpath, err == nil, sg.Meta.Required, false)
		if status != Exists {
			continue
		}

		pc.compareContainer(&sg.Container, &fg.Container, gpath, depth+1)
	}

	for i := range file {
		fg := &file[i]
		gpath := fmt.Sprintf("%s/%s", path, fg.Meta.Name)
		_, err := findGroup(fg.Meta.Name, spec)
		pc.resolveElement("group", gpath, err == nil, true, true)
	}
}
