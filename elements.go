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
)

// ErrElementDoesNotExist is returned when a variable or group is looked
// up by name in a container that does not hold it.
var ErrElementDoesNotExist = errors.New("element not found")

// ElementStatus is the outcome of an existence lookup. It decides
// whether the caller proceeds into deeper comparison for the element.
type ElementStatus int

const (
	// Exists means the element was found and deeper comparison should
	// proceed.
	Exists ElementStatus = iota
	// MissingAndRequired means a required element is absent; a failure
	// has been recorded.
	MissingAndRequired
	// MissingAndNotRequired means an optional element is absent, which
	// is silently acceptable.
	MissingAndNotRequired
)

// resolveElement records the existence check for a named element and
// returns its status. kind is "variable" or "group"; fromFile flips the
// direction of the message for the file-to-specification pass. An
// optional missing element records nothing.
func (pc *ProductChecker) resolveElement(kind, path string, found, required, fromFile bool) ElementStatus {
	where := "in file"
	if fromFile {
		where = "in specification"
	}
	description := fmt.Sprintf("Checking %s %s exists %s", kind, path, where)

	if found {
		pc.ledger.pass(description)
		return Exists
	}
	if !required {
		return MissingAndNotRequired
	}
	pc.ledger.fail(description, path, "%s does not exist %s", kind, where)
	return MissingAndRequired
}
