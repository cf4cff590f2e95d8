// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"os"
)

// FileSet is a list of tables to obtain values from in descending order of
// precedence. It implements the defaults chaining of java.util.Properties:
// a key missing from the first table is looked up in the next.
type FileSet []*File

// LoadFiles reads the files at the given paths and returns a FileSet. If the
// returned error is nil, the returned set's length will be the same as the
// number of arguments. LoadFiles stops on the first error, but ignores
// missing file errors, instead filling the corresponding element of the set
// with a nil *File.
func LoadFiles(paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("load properties files: %w", err)
		}
		parsed, err := Load(f)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("load properties files: %s: %w", p, err)
		}
		fset = append(fset, parsed)
	}
	return fset, nil
}

// Get returns the value associated with key in the first table that has it,
// or the empty string if no table does.
func (fset FileSet) Get(key string) string {
	v, _ := fset.Lookup(key)
	return v
}

// Lookup returns the value associated with key in the first table that has
// it and reports whether any table does.
func (fset FileSet) Lookup(key string) (string, bool) {
	for _, f := range fset {
		if v, ok := f.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Keys returns the union of the tables' keys, ordered by the table they first
// appear in and then by that table's iteration order.
func (fset FileSet) Keys() []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, f := range fset {
		for _, k := range f.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// Set sets the value on the first table and deletes the key from all
// subsequent tables, so that the new value takes precedence regardless of
// where the key was previously defined. Set panics if len(fset) == 0.
// If fset[0] == nil, Set allocates a new File.
func (fset FileSet) Set(key, value string) {
	if fset[0] == nil {
		fset[0] = new(File)
	}
	fset[0].Set(key, value)
	fset[1:].Delete(key)
}

// Delete removes key from every table in the set. Nil elements of the set are
// ignored.
func (fset FileSet) Delete(key string) {
	for _, f := range fset {
		f.Delete(key)
	}
}
