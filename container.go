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

// Package nccheck checks hierarchical scientific data files against
// machine-readable product specifications. A specification document and a
// data file are both represented as Container trees; the checker walks the
// two trees together and records every comparison it makes in a Ledger.
package nccheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/hashicorp/go-multierror"
)

// A Dimension is a single dimension declaration within a Container.
// A nil Size marks an unbounded (record) dimension.
type Dimension struct {
	Name string `json:"name"`
	Size *int64 `json:"size"`
}

// sizeString formats a dimension size for messages.
func sizeString(s *int64) string {
	if s == nil {
		return "unlimited"
	}
	return fmt.Sprintf("%d", *s)
}

// sizeEqual reports whether two dimension sizes match, treating two
// unbounded sizes as equal.
func sizeEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// VariableMeta holds the identity of a variable: its name, its declared
// element datatype, and whether the specification requires it to be
// present in a file.
type VariableMeta struct {
	Name     string `json:"name"`
	Datatype string `json:"datatype"`
	Required bool   `json:"required"`
}

// A Variable is a named array within a Container.
type Variable struct {
	Meta       VariableMeta `json:"meta"`
	Dimensions []string     `json:"dimensions"`
	Attributes Attributes   `json:"attributes"`
}

// GroupMeta holds the identity of a nested group.
type GroupMeta struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// A Group is a nested Container with its own identity.
type Group struct {
	Meta GroupMeta `json:"meta"`
	Container
}

// A Container is a node in either tree: the root dataset or a nested
// group. The same shape is used for specification trees and for file
// representation trees; only the provenance of the values differs.
// Variables and groups are uniquely named within their Container.
type Container struct {
	Attributes Attributes  `json:"attributes"`
	Dimensions []Dimension `json:"dimensions"`
	Variables  []Variable  `json:"variables"`
	Groups     []Group     `json:"groups"`
}

// Validate checks the naming invariants of the tree rooted at c,
// aggregating every problem found rather than stopping at the first.
func (c *Container) Validate() error {
	return c.validate("")
}

func (c *Container) validate(path string) error {
	var errs *multierror.Error
	seenVars := make(map[string]bool)
	for _, v := range c.Variables {
		if seenVars[v.Meta.Name] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate variable %s/%s", path, v.Meta.Name))
		}
		seenVars[v.Meta.Name] = true
	}
	seenGroups := make(map[string]bool)
	for i := range c.Groups {
		g := &c.Groups[i]
		if seenGroups[g.Meta.Name] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate group %s/%s", path, g.Meta.Name))
		}
		seenGroups[g.Meta.Name] = true
		if err := g.Container.validate(path + "/" + g.Meta.Name); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// LoadDefinition reads a product specification document. Placeholder
// strings in attribute values are parsed during loading, so malformed
// placeholders are discovered here but reported later, as failed checks
// scoped to the attribute where they occur.
func LoadDefinition(path string) (*Container, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nccheck: reading definition: %v", err)
	}
	c := new(Container)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("nccheck: parsing definition %s: %v", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("nccheck: invalid definition %s: %v", path, err)
	}
	return c, nil
}

// Attributes is an ordered set of named attribute values. Order is
// preserved from the source document so that repeated checks of the same
// inputs record their results in the same order.
type Attributes struct {
	keys   []string
	values map[string]AttrValue
}

// Set adds or replaces the named attribute, keeping first-insertion order.
func (a *Attributes) Set(name string, v AttrValue) {
	if a.values == nil {
		a.values = make(map[string]AttrValue)
	}
	if _, ok := a.values[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.values[name] = v
}

// Get returns the named attribute value and whether it is present.
func (a *Attributes) Get(name string) (AttrValue, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether the named attribute is present.
func (a *Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Keys returns the attribute names in document order.
func (a *Attributes) Keys() []string {
	return a.keys
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// UnmarshalJSON decodes a JSON object into an ordered attribute set.
func (a *Attributes) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v AttrValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("attribute %s: %v", key, err)
		}
		a.Set(key, v)
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON encodes the attribute set as a JSON object in document
// order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// An AttrValue is one attribute value from either tree: a scalar literal,
// an array of values, or (on the specification side) a placeholder that
// constrains the file value without pinning it. Exactly one of Scalar,
// List and Placeholder is meaningful; placeholders keep their original
// text in Raw for diagnostics.
type AttrValue struct {
	Scalar      interface{}
	List        []AttrValue
	Placeholder *Placeholder
	Raw         string

	// parseErr holds a malformed-placeholder error found at load time.
	// It is surfaced as a failed check when the attribute is compared.
	parseErr error
}

// Literal returns an AttrValue holding a scalar literal.
func Literal(v interface{}) AttrValue {
	return AttrValue{Scalar: v}
}

// LiteralList returns an AttrValue holding an array of scalar literals.
func LiteralList(vs ...interface{}) AttrValue {
	l := make([]AttrValue, len(vs))
	for i, v := range vs {
		l[i] = Literal(v)
	}
	return AttrValue{List: l}
}

// IsList reports whether the value is an array.
func (v *AttrValue) IsList() bool { return v.List != nil }

// IsPlaceholder reports whether the value is a well-formed placeholder.
func (v *AttrValue) IsPlaceholder() bool { return v.Placeholder != nil }

// UnmarshalJSON decodes a single attribute value, resolving placeholder
// strings as they are read.
func (v *AttrValue) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		if t != '[' {
			return fmt.Errorf("unsupported attribute value %s", b)
		}
		v.List = []AttrValue{}
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			var el AttrValue
			if err := el.UnmarshalJSON(raw); err != nil {
				return err
			}
			v.List = append(v.List, el)
		}
		_, err = dec.Token() // closing bracket
		return err
	case string:
		if IsPlaceholderString(t) {
			v.Raw = t
			p, err := ParsePlaceholder(t)
			if err != nil {
				v.parseErr = err
				return nil
			}
			v.Placeholder = p
			return nil
		}
		v.Scalar = t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			v.Scalar = i
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return err
		}
		v.Scalar = f
	case bool:
		v.Scalar = t
	case nil:
		v.Scalar = nil
	default:
		return fmt.Errorf("unsupported attribute value %s", b)
	}
	return nil
}

// MarshalJSON encodes the value. Placeholders round-trip as their
// original text.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Raw != "":
		return json.Marshal(v.Raw)
	case v.List != nil:
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Scalar)
	}
}

// valueString formats a literal value for messages.
func (v *AttrValue) valueString() string {
	switch {
	case v.List != nil:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i := range v.List {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(v.List[i].valueString())
		}
		buf.WriteByte(']')
		return buf.String()
	case v.Raw != "":
		return v.Raw
	default:
		return fmt.Sprintf("%v", v.Scalar)
	}
}

// literalEqual reports whether two literal values are equal. Numeric
// scalars compare by value regardless of their Go type, since the two
// trees are decoded from sources with different native widths.
func literalEqual(a, b *AttrValue) bool {
	if a.List != nil || b.List != nil {
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !literalEqual(&a.List[i], &b.List[i]) {
				return false
			}
		}
		return a.List != nil && b.List != nil
	}
	if af, aok := toFloat(a.Scalar); aok {
		bf, bok := toFloat(b.Scalar)
		return bok && af == bf
	}
	return a.Scalar == b.Scalar
}

// toFloat converts any numeric scalar to float64 for comparison.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// findVariable returns the named variable from vars, or
// ErrElementDoesNotExist.
func findVariable(name string, vars []Variable) (*Variable, error) {
	for i := range vars {
		if vars[i].Meta.Name == name {
			return &vars[i], nil
		}
	}
	return nil, fmt.Errorf("%w: variable %s", ErrElementDoesNotExist, name)
}

// findGroup returns the named group from groups, or
// ErrElementDoesNotExist.
func findGroup(name string, groups []Group) (*Group, error) {
	for i := range groups {
		if groups[i].Meta.Name == name {
			return &groups[i], nil
		}
	}
	return nil, fmt.Errorf("%w: group %s", ErrElementDoesNotExist, name)
}
