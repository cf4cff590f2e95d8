// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"bytes"
	"io"
)

// A File is an ordered table of the key/value entries in a .properties file.
// Keys are unique: when the same key appears on multiple lines of the source,
// the table holds the value from the last occurrence at the position of the
// first. The zero value is an empty table.
type File struct {
	entries []entry
	index   map[string]int
}

type entry struct {
	key   string
	value string
}

// Load reads every entry from a .properties file into a new table, discarding
// comments and blank lines. If the input is malformed, Load returns the error
// and no table, never a partial one.
func Load(r io.Reader) (*File, error) {
	f := new(File)
	p := NewParser(r)
	for p.Scan() {
		if ln := p.Line(); ln.Kind == Entry {
			f.Set(ln.Key, ln.Value)
		}
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// Len returns the number of entries in the table.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// Get returns the value associated with key, or the empty string if the key
// is not present.
func (f *File) Get(key string) string {
	v, _ := f.Lookup(key)
	return v
}

// Lookup returns the value associated with key and reports whether the key
// is present.
func (f *File) Lookup(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	i, ok := f.index[key]
	if !ok {
		return "", false
	}
	return f.entries[i].value, true
}

// Set associates value with key. A key already in the table keeps its
// position; a new key is appended.
func (f *File) Set(key, value string) {
	if i, ok := f.index[key]; ok {
		f.entries[i].value = value
		return
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	f.index[key] = len(f.entries)
	f.entries = append(f.entries, entry{key: key, value: value})
}

// Delete removes key from the table if present.
func (f *File) Delete(key string) {
	if f == nil {
		return
	}
	i, ok := f.index[key]
	if !ok {
		return
	}
	copy(f.entries[i:], f.entries[i+1:])
	f.entries[len(f.entries)-1] = entry{}
	f.entries = f.entries[:len(f.entries)-1]
	delete(f.index, key)
	for k, j := range f.index {
		if j > i {
			f.index[k] = j - 1
		}
	}
}

// Keys returns the table's keys in iteration order: the position of each
// key's first occurrence in the source.
func (f *File) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// MarshalText serializes the table with default options.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	buf := new(bytes.Buffer)
	if err := f.Dump(buf, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText parses .properties data, replacing any entries in f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Load(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
