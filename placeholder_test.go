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
	"testing"
)

func TestParsePlaceholder(t *testing.T) {
	tests := []struct {
		in       string
		typ      string
		isArray  bool
		optional bool
		regex    string
	}{
		{in: "<str: derived_from_file>", typ: "str"},
		{in: "<float32: derived_from_file>", typ: "float32"},
		{in: "<[int8]: derived_from_file>", typ: "int8"},
		{in: "<Array[float32]: derived_from_file>", typ: "float32", isArray: true},
		{in: "<int32: derived_from_file optional>", typ: "int32", optional: true},
		{in: "<str: derived_from_file, regex=[A-Z]\\d{3}>", typ: "str", regex: `[A-Z]\d{3}`},
		{in: "<str: derived_from_file optional, regex=v\\d+>", typ: "str", optional: true, regex: `v\d+`},
	}
	for _, test := range tests {
		p, err := ParsePlaceholder(test.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.in, err)
			continue
		}
		if p.Type != test.typ {
			t.Errorf("%s: type: have %s, want %s", test.in, p.Type, test.typ)
		}
		if p.IsArray != test.isArray {
			t.Errorf("%s: isArray: have %v, want %v", test.in, p.IsArray, test.isArray)
		}
		if p.Optional != test.optional {
			t.Errorf("%s: optional: have %v, want %v", test.in, p.Optional, test.optional)
		}
		if test.regex == "" && p.Regex != nil {
			t.Errorf("%s: unexpected regex %v", test.in, p.Regex)
		}
		if test.regex != "" && (p.Regex == nil || p.Regex.String() != test.regex) {
			t.Errorf("%s: regex: have %v, want %s", test.in, p.Regex, test.regex)
		}
	}
}

func TestParsePlaceholderInvalid(t *testing.T) {
	tests := []string{
		"derived_from_file",
		"<derived_from_file>",
		"<STR: derived_from_file>",
		"<str derived_from_file>",
		"<str: derived_from_file maybe>",
		"<str: derived_from_file, regex=[unclosed>",
	}
	for _, test := range tests {
		if _, err := ParsePlaceholder(test); !errors.Is(err, ErrInvalidPlaceholder) {
			t.Errorf("%s: have %v, want ErrInvalidPlaceholder", test, err)
		}
	}
}

func TestIsPlaceholderString(t *testing.T) {
	if !IsPlaceholderString("<str: derived_from_file>") {
		t.Error("sentinel string not recognized")
	}
	if IsPlaceholderString("Flight A123") {
		t.Error("plain string recognized as placeholder")
	}
}
