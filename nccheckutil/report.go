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

package nccheckutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/colorstring"

	"github.com/nccheck/nccheck"
)

const lineLen = 50

// A Report renders the outcome of a checking run to a terminal.
type Report struct {
	// Quiet suppresses all output.
	Quiet bool
	// IgnoreInfo skips passing checks, printing warnings and errors
	// only.
	IgnoreInfo bool
	// IgnoreWarnings additionally skips warnings.
	IgnoreWarnings bool
	// Comments also prints comments attached to passing checks.
	Comments bool
	// Color enables colored output.
	Color bool
}

// Render writes one line per recorded check followed by a summary.
func (r *Report) Render(w io.Writer, l *nccheck.Ledger) error {
	if r.Quiet {
		return nil
	}
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !r.Color,
		Reset:   true,
	}

	for _, check := range l.Checks() {
		switch {
		case !check.Passed:
			fmt.Fprintf(w, "%s... %s\n", check.Description, c.Color("[red]ERROR"))
			fmt.Fprintf(w, "  --> %s: %s\n", check.Error.Path, check.Error.Message)
		case check.Warning != nil:
			if r.IgnoreWarnings {
				continue
			}
			fmt.Fprintf(w, "%s... %s\n", check.Description, c.Color("[yellow]WARNING"))
			fmt.Fprintf(w, "  --> %s: %s\n", check.Warning.Path, check.Warning.Message)
		default:
			if r.IgnoreInfo {
				continue
			}
			fmt.Fprintf(w, "%s... %s\n", check.Description, c.Color("[green]OK!"))
			if r.Comments && check.Comment != nil {
				fmt.Fprintf(w, "  --> %s: %s\n", check.Comment.Path, check.Comment.Message)
			}
		}
	}

	// An empty ledger still renders a summary of zero checks.
	errors, err := l.Errors()
	if err != nil && err != nccheck.ErrNotChecked {
		return err
	}
	warnings, err := l.Warnings()
	if err != nil && err != nccheck.ErrNotChecked {
		return err
	}

	fmt.Fprintln(w, strings.Repeat("=", lineLen))
	fmt.Fprintf(w, "%d checks.\n", l.Len())
	fmt.Fprintf(w, "%d warnings.\n", len(warnings))
	fmt.Fprintf(w, "%d errors found.\n", len(errors))
	fmt.Fprintln(w, strings.Repeat("=", lineLen))
	return nil
}
