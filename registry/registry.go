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

// Package registry resolves product short names to specification
// definition documents. A registry is a TOML document listing the
// products a project publishes, with one entry per released version.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

// Latest selects the highest released version of a product.
const Latest = "latest"

// A Product is one released specification definition.
type Product struct {
	// Name is the product short name, shared across versions.
	Name string `toml:"name"`
	// Version is the release tag, e.g. "v1.2".
	Version string `toml:"version"`
	// Definition is the path of the specification document, relative
	// to the registry file.
	Definition string `toml:"definition"`
}

// A Registry holds the products of one project.
type Registry struct {
	Products []Product `toml:"product"`

	// dir is the directory of the registry document; relative
	// definition paths resolve against it.
	dir string
}

// Load reads and validates a registry document. Every problem in the
// document is reported, not only the first.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("registry: %v", err)
	}
	defer f.Close()

	r := new(Registry)
	if _, err := toml.DecodeReader(f, r); err != nil {
		return nil, fmt.Errorf("registry: parsing %s: %v", path, err)
	}
	r.dir = filepath.Dir(path)

	var errs *multierror.Error
	seen := make(map[string]bool)
	for i, p := range r.Products {
		if p.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("product %d has no name", i))
		}
		if p.Definition == "" {
			errs = multierror.Append(errs, fmt.Errorf("product %d (%s) has no definition", i, p.Name))
		}
		key := p.Name + "@" + p.Version
		if seen[key] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate product %s version %s", p.Name, p.Version))
		}
		seen[key] = true
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("registry: invalid registry %s: %v", path, err)
	}
	return r, nil
}

// Names returns the distinct product short names, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range r.Products {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Definition resolves a product name and version to the path of its
// specification document. Version Latest (or "") selects the highest
// released version.
func (r *Registry) Definition(name, version string) (string, error) {
	if version == "" {
		version = Latest
	}
	var found *Product
	for i := range r.Products {
		p := &r.Products[i]
		if p.Name != name {
			continue
		}
		if version != Latest {
			if p.Version == version {
				found = p
				break
			}
			continue
		}
		if found == nil || versionLess(found.Version, p.Version) {
			found = p
		}
	}
	if found == nil {
		return "", fmt.Errorf("registry: no product %s version %s", name, version)
	}
	if filepath.IsAbs(found.Definition) {
		return found.Definition, nil
	}
	return filepath.Join(r.dir, found.Definition), nil
}

// versionLess orders release tags of the form vMAJOR.MINOR numerically,
// falling back to lexical order for tags that do not parse.
func versionLess(a, b string) bool {
	am, an, aok := parseVersion(a)
	bm, bn, bok := parseVersion(b)
	if !aok || !bok {
		return a < b
	}
	if am != bm {
		return am < bm
	}
	return an < bn
}

func parseVersion(v string) (major, minor int, ok bool) {
	v = strings.TrimPrefix(v, "v")
	parts := strings.SplitN(v, ".", 2)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 2 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
	}
	return major, minor, true
}
