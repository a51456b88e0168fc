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

// collectDimensions returns the dimensions declared in c and in nested
// groups up to depth levels below c. Bounding the walk keeps dimension
// comparison scoped group-by-group: a deeply nested group that happens
// to reuse a name is not pulled into a shallow comparison.
func collectDimensions(c *Container, depth int) []Dimension {
	dims := make([]Dimension, 0, len(c.Dimensions))
	dims = append(dims, c.Dimensions...)
	if depth > 0 {
		for i := range c.Groups {
			dims = append(dims, collectDimensions(&c.Groups[i].Container, depth-1)...)
		}
	}
	return dims
}

// findDimension returns the first dimension named name, or nil.
func findDimension(name string, dims []Dimension) *Dimension {
	for i := range dims {
		if dims[i].Name == name {
			return &dims[i]
		}
	}
	return nil
}

// checkDimensions reconciles the dimensions visible within depth nesting
// levels of the two containers. A file dimension missing from the
// specification is a failure, as is any same-name size conflict in
// either direction; a specification dimension absent from the file is
// only a warning, since files may omit unused dimensions.
func (pc *ProductChecker) checkDimensions(spec, file *Container, path string, depth int) {
	specDims := collectDimensions(spec, depth)
	fileDims := collectDimensions(file, depth)

	loc := path
	if loc == "" {
		loc = "/"
	}

	for _, fd := range fileDims {
		description := fmt.Sprintf("Checking dimension %s is in specification", fd.Name)
		sd := findDimension(fd.Name, specDims)
		switch {
		case sd == nil:
			pc.ledger.fail(description, loc,
				"dimension %s (size %s) not found in specification",
				fd.Name, sizeString(fd.Size))
		case !sizeEqual(sd.Size, fd.Size):
			pc.ledger.fail(description, loc,
				"dimension %s size mismatch: specification has %s, file has %s",
				fd.Name, sizeString(sd.Size), sizeString(fd.Size))
		default:
			pc.ledger.pass(description)
		}
	}

	for _, sd := range specDims {
		description := fmt.Sprintf("Checking dimension %s is in file", sd.Name)
		fd := findDimension(sd.Name, fileDims)
		switch {
		case fd == nil:
			pc.ledger.warn(description, loc,
				"dimension %s (size %s) not present in file",
				sd.Name, sizeString(sd.Size))
		case !sizeEqual(sd.Size, fd.Size):
			pc.ledger.fail(description, loc,
				"dimension %s size mismatch: specification has %s, file has %s",
				sd.Name, sizeString(sd.Size), sizeString(fd.Size))
		default:
			pc.ledger.pass(description)
		}
	}
}
