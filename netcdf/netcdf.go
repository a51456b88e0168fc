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

// Package netcdf produces nccheck Container representations of data
// files. Classic NetCDF files are read directly; representations that
// other tooling has already rendered to JSON are loaded as-is.
package netcdf

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/nccheck/nccheck"
	"github.com/sirupsen/logrus"
)

// A Reader reads classic NetCDF data files into their Container
// representation. The classic format has no nested groups, so the
// Groups slice of the result is always empty.
type Reader struct {
	// Log receives debug information while reading.
	Log logrus.FieldLogger
}

// NewReader returns a Reader logging to the standard logger.
func NewReader() *Reader {
	return &Reader{Log: logrus.StandardLogger()}
}

// Read opens the NetCDF file at path and returns its representation.
// Only header information is read: attribute values, dimension sizes
// and variable declarations. Array data is never loaded.
func (r *Reader) Read(path string) (*nccheck.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netcdf: %v", err)
	}
	defer f.Close()

	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("netcdf: opening %s: %v", path, err)
	}
	h := cf.Header

	c := new(nccheck.Container)

	names := h.Dimensions("")
	lengths := h.Lengths("")
	for i, name := range names {
		c.Dimensions = append(c.Dimensions, dimension(name, lengths[i]))
	}

	for _, a := range h.Attributes("") {
		c.Attributes.Set(a, attrValue(h.GetAttribute("", a)))
	}

	for _, name := range h.Variables() {
		v, err := r.readVariable(h, name)
		if err != nil {
			return nil, err
		}
		c.Variables = append(c.Variables, v)
	}

	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"file":       path,
			"dimensions": len(c.Dimensions),
			"variables":  len(c.Variables),
			"attributes": c.Attributes.Len(),
		}).Debug("read netcdf header")
	}
	return c, nil
}

// readVariable builds the representation of one variable from the file
// header.
func (r *Reader) readVariable(h *cdf.Header, name string) (nccheck.Variable, error) {
	token, err := dtypeToken(h.ZeroValue(name, 1))
	if err != nil {
		return nccheck.Variable{}, fmt.Errorf("netcdf: variable %s: %v", name, err)
	}
	v := nccheck.Variable{
		Meta: nccheck.VariableMeta{
			Name:     name,
			Datatype: token,
		},
		Dimensions: h.Dimensions(name),
	}
	for _, a := range h.Attributes(name) {
		v.Attributes.Set(a, attrValue(h.GetAttribute(name, a)))
	}
	return v, nil
}

// dimension converts a header dimension to the representation form. The
// record dimension is stored with length zero in a classic header and
// maps to an unbounded size.
func dimension(name string, length int) nccheck.Dimension {
	d := nccheck.Dimension{Name: name}
	if length > 0 {
		size := int64(length)
		d.Size = &size
	}
	return d
}

// dtypeToken maps a zero value of a variable's storage type to its
// specification type token. Classic files store BYTE data as unsigned
// bytes; the token keeps the historical byte spelling, which the checker
// treats as an alias of int8.
func dtypeToken(zero interface{}) (string, error) {
	switch zero.(type) {
	case string:
		return "str", nil
	case []uint8:
		return "byte", nil
	case []int16:
		return "int16", nil
	case []int32:
		return "int32", nil
	case []float32:
		return "float32", nil
	case []float64:
		return "float64", nil
	}
	return "", fmt.Errorf("unsupported storage type %T", zero)
}

// attrValue converts a header attribute value to the representation
// form. The cdf package returns string for character data and a typed
// slice for everything else; single-element slices unwrap to scalars,
// mirroring how scalar attributes are written.
func attrValue(v interface{}) nccheck.AttrValue {
	switch t := v.(type) {
	case string:
		return nccheck.Literal(t)
	case []uint8:
		return sliceValue(len(t), func(i int) interface{} { return t[i] })
	case []int16:
		return sliceValue(len(t), func(i int) interface{} { return t[i] })
	case []int32:
		return sliceValue(len(t), func(i int) interface{} { return t[i] })
	case []float32:
		return sliceValue(len(t), func(i int) interface{} { return t[i] })
	case []float64:
		return sliceValue(len(t), func(i int) interface{} { return t[i] })
	}
	return nccheck.Literal(v)
}

func sliceValue(n int, at func(int) interface{}) nccheck.AttrValue {
	if n == 1 {
		return nccheck.Literal(at(0))
	}
	els := make([]interface{}, n)
	for i := range els {
		els[i] = at(i)
	}
	return nccheck.LiteralList(els...)
}
