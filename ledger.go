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

// ErrNotChecked is returned when aggregate results are requested from a
// Ledger before any check has been carried out. It signals a usage bug
// in the caller, not a problem with the data.
var ErrNotChecked = errors.New("checks have not been performed")

// A CheckError describes a failed check: what went wrong and where in
// the tree it happened.
type CheckError struct {
	Message string
	Path    string
}

// A CheckWarning is an informational divergence attached to a passing
// check. Warnings never fail the overall result.
type CheckWarning struct {
	Message string
	Path    string
}

// A CheckComment is a note attached to an otherwise passing check, used
// for non-failing stylistic discrepancies such as equivalent but
// differently-spelled datatypes.
type CheckComment struct {
	Message string
	Path    string
}

// A Check is a single recorded comparison. It is immutable once
// appended to a Ledger.
type Check struct {
	Description string
	Passed      bool
	Error       *CheckError
	Warning     *CheckWarning
	Comment     *CheckComment
}

// A Ledger is the ordered, append-only record of every check performed
// during one run against one specification. It is written by a single
// run and must not be shared between concurrent runs.
type Ledger struct {
	checks []Check
}

func (l *Ledger) add(c Check) {
	l.checks = append(l.checks, c)
}

// pass records a passing check.
func (l *Ledger) pass(description string) {
	l.add(Check{Description: description, Passed: true})
}

// fail records a failed check at the given path.
func (l *Ledger) fail(description, path, format string, args ...interface{}) {
	l.add(Check{
		Description: description,
		Error:       &CheckError{Message: fmt.Sprintf(format, args...), Path: path},
	})
}

// warn records a passing check carrying a warning.
func (l *Ledger) warn(description, path, format string, args ...interface{}) {
	l.add(Check{
		Description: description,
		Passed:      true,
		Warning:     &CheckWarning{Message: fmt.Sprintf(format, args...), Path: path},
	})
}

// comment records a passing check carrying an informational comment.
func (l *Ledger) comment(description, path, format string, args ...interface{}) {
	l.add(Check{
		Description: description,
		Passed:      true,
		Comment:     &CheckComment{Message: fmt.Sprintf(format, args...), Path: path},
	})
}

// Len returns the number of recorded checks.
func (l *Ledger) Len() int {
	return len(l.checks)
}

// Checks returns the recorded checks in the order they were performed.
func (l *Ledger) Checks() []Check {
	out := make([]Check, len(l.checks))
	copy(out, l.checks)
	return out
}

// Passing reports whether every recorded check passed. It returns
// ErrNotChecked if no checks have been carried out.
func (l *Ledger) Passing() (bool, error) {
	if len(l.checks) == 0 {
		return false, ErrNotChecked
	}
	for _, c := range l.checks {
		if !c.Passed {
			return false, nil
		}
	}
	return true, nil
}

// Errors returns the errors from failed checks, or ErrNotChecked if no
// checks have been carried out.
func (l *Ledger) Errors() ([]CheckError, error) {
	if len(l.checks) == 0 {
		return nil, ErrNotChecked
	}
	var out []CheckError
	for _, c := range l.checks {
		if !c.Passed && c.Error != nil {
			out = append(out, *c.Error)
		}
	}
	return out, nil
}

// Warnings returns the warnings attached to recorded checks, or
// ErrNotChecked if no checks have been carried out.
func (l *Ledger) Warnings() ([]CheckWarning, error) {
	if len(l.checks) == 0 {
		return nil, ErrNotChecked
	}
	var out []CheckWarning
	for _, c := range l.checks {
		if c.Warning != nil {
			out = append(out, *c.Warning)
		}
	}
	return out, nil
}

// Comments returns the comments attached to recorded checks, or
// ErrNotChecked if no checks have been carried out.
func (l *Ledger) Comments() ([]CheckComment, error) {
	if len(l.checks) == 0 {
		return nil, ErrNotChecked
	}
	var out []CheckComment
	for _, c := range l.checks {
		if c.Comment != nil {
			out = append(out, *c.Comment)
		}
	}
	return out, nil
}
