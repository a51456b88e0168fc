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
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnknownDataType is returned for a type token that is not in the
// specification vocabulary. This is an authoring error in the
// specification document and is reported as a failed check rather than
// aborting the run.
var ErrUnknownDataType = errors.New("unknown datatype")

// nativeTypes maps specification type tokens to runtime element types.
// byte is a historical alias for int8: the two tokens are equivalent,
// although a spelling difference between the trees is still reported as
// a comment.
var nativeTypes = map[string]reflect.Type{
	"str":     reflect.TypeOf(""),
	"byte":    reflect.TypeOf(int8(0)),
	"int8":    reflect.TypeOf(int8(0)),
	"int16":   reflect.TypeOf(int16(0)),
	"int32":   reflect.TypeOf(int32(0)),
	"int64":   reflect.TypeOf(int64(0)),
	"uint8":   reflect.TypeOf(uint8(0)),
	"uint16":  reflect.TypeOf(uint16(0)),
	"uint32":  reflect.TypeOf(uint32(0)),
	"uint64":  reflect.TypeOf(uint64(0)),
	"float32": reflect.TypeOf(float32(0)),
	"float64": reflect.TypeOf(float64(0)),
}

// normalizeToken strips the angle brackets some documents put around
// type tokens, so "<float32>" and "float32" denote the same type.
func normalizeToken(s string) string {
	return strings.Trim(strings.TrimSpace(s), "<>")
}

// NativeType returns the runtime element type denoted by a specification
// type token.
func NativeType(token string) (reflect.Type, error) {
	t, ok := nativeTypes[normalizeToken(token)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataType, token)
	}
	return t, nil
}

// Equivalent reports whether two type tokens denote the same element
// type under the alias table.
func Equivalent(a, b string) (bool, error) {
	ta, err := NativeType(a)
	if err != nil {
		return false, err
	}
	tb, err := NativeType(b)
	if err != nil {
		return false, err
	}
	return ta == tb, nil
}

// valueToken returns the type token describing a runtime attribute
// value, or an error for values outside the specification vocabulary.
func valueToken(v interface{}) (string, error) {
	switch v.(type) {
	case string:
		return "str", nil
	case int8:
		return "int8", nil
	case int16:
		return "int16", nil
	case int32:
		return "int32", nil
	case int64, int:
		return "int64", nil
	case uint8:
		return "byte", nil
	case uint16:
		return "uint16", nil
	case uint32:
		return "uint32", nil
	case uint64:
		return "uint64", nil
	case float32:
		return "float32", nil
	case float64:
		return "float64", nil
	}
	return "", fmt.Errorf("%w: value %v (%T)", ErrUnknownDataType, v, v)
}

// typeClass groups tokens for runtime value conformance. Integer and
// float widths within a class are interchangeable when checking
// attribute values, because values decoded from JSON representations do
// not preserve widths.
type typeClass int

const (
	classString typeClass = iota
	classInt
	classFloat
)

func classOf(token string) (typeClass, error) {
	switch normalizeToken(token) {
	case "str":
		return classString, nil
	case "byte", "int8", "int16", "int32", "int64",
		"uint8", "uint16", "uint32", "uint64":
		return classInt, nil
	case "float32", "float64":
		return classFloat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDataType, token)
}

// Conforms reports whether a runtime scalar value satisfies the declared
// element type token. An error indicates an unknown declared token; a
// plain false indicates a non-conforming value.
func Conforms(declared string, v interface{}) (bool, error) {
	dc, err := classOf(declared)
	if err != nil {
		return false, err
	}
	at, err := valueToken(v)
	if err != nil {
		return false, nil
	}
	ac, err := classOf(at)
	if err != nil {
		return false, nil
	}
	return dc == ac, nil
}
