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
	"regexp"
	"strings"
)

// derivedSentinel marks a specification value whose contents vary per
// file and are checked for type and shape conformance only.
const derivedSentinel = "derived_from_file"

// ErrInvalidPlaceholder is returned when a value contains the derivation
// sentinel but does not match the placeholder grammar. This is a defect
// in the specification document, not in the file being checked.
var ErrInvalidPlaceholder = errors.New("invalid placeholder")

// placeholderRx is the placeholder grammar: an optional Array marker, a
// bracketed or bare type token, the derivation sentinel, an optional
// optional flag, and an optional regex constraint.
var placeholderRx = regexp.MustCompile(
	`^<(Array)?\[?([a-z0-9]+)\]?: derived_from_file( optional)?(?:, regex=(.+))?>$`)

// A Placeholder describes what a derived-from-file attribute value must
// look like: its element type, whether it is an array, whether the
// attribute may be absent entirely, and an optional pattern the value
// must match.
type Placeholder struct {
	Type     string
	IsArray  bool
	Optional bool
	Regex    *regexp.Regexp
}

// IsPlaceholderString reports whether s claims to be a placeholder, i.e.
// contains the derivation sentinel. A claiming string that fails to
// parse is a malformed specification.
func IsPlaceholderString(s string) bool {
	return strings.Contains(s, derivedSentinel)
}

// ParsePlaceholder parses a placeholder string into its descriptor,
// returning an error wrapping ErrInvalidPlaceholder if the string does
// not match the grammar or carries an uncompilable regex constraint.
func ParsePlaceholder(s string) (*Placeholder, error) {
	m := placeholderRx.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlaceholder, s)
	}
	p := &Placeholder{
		Type:     m[2],
		IsArray:  m[1] != "",
		Optional: m[3] != "",
	}
	if m[4] != "" {
		rx, err := regexp.Compile(m[4])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: bad regex: %v", ErrInvalidPlaceholder, s, err)
		}
		p.Regex = rx
	}
	return p, nil
}
