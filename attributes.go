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

import "fmt"

// compareAttributes checks every specification attribute against the
// file's attribute set, then reports file attributes missing from the
// specification as warnings. Files are allowed richer metadata than the
// minimum the specification demands.
func (pc *ProductChecker) compareAttributes(spec, file *Attributes, path string) {
	if path == "" {
		path = "/"
	}

	for _, key := range spec.Keys() {
		sv, _ := spec.Get(key)
		apath := fmt.Sprintf("%s.%s", path, key)

		fv, ok := file.Get(key)
		if !ok {
			if sv.Placeholder != nil && sv.Placeholder.Optional {
				continue
			}
			pc.ledger.fail(
				fmt.Sprintf("Checking attribute %s exists", apath),
				apath, "attribute .%s not in %s", key, path)
			continue
		}

		pc.ledger.pass(fmt.Sprintf("Checking attribute %s exists", apath))
		pc.checkAttributeValue(&sv, &fv, apath)
	}

	for _, key := range file.Keys() {
		if spec.Has(key) {
			continue
		}
		apath := fmt.Sprintf("%s.%s", path, key)
		pc.ledger.warn(
			fmt.Sprintf("Checking attribute %s in specification", apath),
			apath, "found attribute .%s which is not in specification", key)
	}
}

// checkAttributeValue compares one specification attribute value against
// the corresponding file value: placeholders check type, shape and
// pattern; multi-element lists recurse element-wise; single-element
// lists unwrap; everything else requires exact equality.
func (pc *ProductChecker) checkAttributeValue(sv, fv *AttrValue, path string) {
	if sv.parseErr != nil {
		pc.ledger.fail(
			fmt.Sprintf("Checking attribute %s type is correct", path),
			path, "%v", sv.parseErr)
		return
	}

	if sv.Placeholder != nil {
		pc.checkAttributeType(sv.Placeholder, fv, path)
		return
	}

	if len(sv.List) > 1 {
		if len(fv.List) != len(sv.List) {
			pc.ledger.fail(
				fmt.Sprintf("Checking value of %s", path),
				path, "expected %d elements, got %s", len(sv.List), fv.valueString())
			return
		}
		for i := range sv.List {
			pc.checkAttributeValue(&sv.List[i], &fv.List[i], fmt.Sprintf("%s[%d]", path, i))
		}
		return
	}

	want := sv
	if len(sv.List) == 1 {
		want = &sv.List[0]
	}
	got := fv
	if len(fv.List) == 1 {
		got = &fv.List[0]
	}

	description := fmt.Sprintf("Checking value of %s", path)
	if literalEqual(want, got) {
		pc.ledger.pass(description)
		return
	}
	pc.ledger.fail(description, path,
		"unexpected value of %s: got [%s], expected [%s]",
		path, got.valueString(), want.valueString())
}

// checkAttributeType verifies a file value against a placeholder: the
// runtime type of the value (or of every element, for an array
// placeholder) must be equivalent to the declared type, and the value
// must match the regex constraint when one is present.
func (pc *ProductChecker) checkAttributeType(p *Placeholder, fv *AttrValue, path string) {
	description := fmt.Sprintf("Checking attribute %s type is correct", path)

	if p.IsArray {
		if fv.List == nil {
			pc.ledger.fail(description, path,
				"type of %s incorrect: expected array of %s, got %s",
				path, p.Type, fv.valueString())
			return
		}
		for i := range fv.List {
			el := &fv.List[i]
			ok, err := Conforms(p.Type, el.Scalar)
			if err != nil {
				pc.ledger.fail(description, path, "%v", err)
				return
			}
			if !ok {
				pc.ledger.fail(description, path,
					"type of %s incorrect: element %d (%s) is not %s",
					path, i, el.valueString(), p.Type)
				return
			}
		}
		pc.ledger.pass(description)
		return
	}

	if fv.List != nil {
		pc.ledger.fail(description, path,
			"type of %s incorrect: expected %s, got array %s",
			path, p.Type, fv.valueString())
		return
	}
	ok, err := Conforms(p.Type, fv.Scalar)
	if err != nil {
		pc.ledger.fail(description, path, "%v", err)
		return
	}
	if !ok {
		actual, _ := valueToken(fv.Scalar)
		if actual == "" {
			actual = fmt.Sprintf("%T", fv.Scalar)
		}
		pc.ledger.fail(description, path,
			"type of %s incorrect: expected %s, got %s", path, p.Type, actual)
		return
	}
	pc.ledger.pass(description)

	if p.Regex != nil {
		description := fmt.Sprintf("Checking attribute %s matches pattern", path)
		s, isString := fv.Scalar.(string)
		if !isString || !p.Regex.MatchString(s) {
			pc.ledger.fail(description, path,
				"value %s does not match pattern %s", fv.valueString(), p.Regex)
			return
		}
		pc.ledger.pass(description)
	}
}
