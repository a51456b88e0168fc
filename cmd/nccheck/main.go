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

// Command nccheck is a command-line interface for checking scientific
// data files against product specifications.
package main

import (
	"fmt"
	"os"

	"github.com/nccheck/nccheck/nccheckutil"
)

func main() {
	if err := nccheckutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
