// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"io"
)

// RewriteOptions holds optional parameters for SetValues and DeleteKeys. The
// zero value separates rewritten entries with "=" and refreshes the header
// timestamp.
type RewriteOptions struct {
	// Separator is placed between the key and value of rewritten and
	// appended entries. Empty means "=". Entries that are not being changed
	// keep their original text, separator included.
	Separator string

	// PreserveTimestamp keeps an existing timestamp comment in the file's
	// header instead of replacing it with the current time.
	PreserveTimestamp bool
}

// SetValues copies the .properties file read from r to w, replacing the value
// of every key in values at the key's first occurrence and removing later
// occurrences. Keys not present in the input are appended at the end.
// Comments, blank lines, and untouched entries keep their original text, with
// line terminators normalized to '\n'.
func SetValues(w io.Writer, r io.Reader, values map[string]string, opts *RewriteOptions) error {
	changes := make(map[string]*string, len(values))
	for k := range values {
		v := values[k]
		changes[k] = &v
	}
	return rewrite(w, r, changes, opts)
}

// DeleteKeys copies the .properties file read from r to w, removing every
// entry whose key is in keys. Comments, blank lines, and remaining entries
// keep their original text, with line terminators normalized to '\n'.
func DeleteKeys(w io.Writer, r io.Reader, keys []string, opts *RewriteOptions) error {
	changes := make(map[string]*string, len(keys))
	for _, k := range keys {
		changes[k] = nil
	}
	return rewrite(w, r, changes, opts)
}

// rewrite streams logical lines from r to w, substituting entries named in
// changes. A nil change deletes the entry; a non-nil one replaces its value
// and is cleared after the first occurrence so duplicates are dropped. The
// header (the run of comments and blank lines before the first entry) is
// copied through, except that its timestamp comment is refreshed unless opts
// say otherwise.
func rewrite(w io.Writer, r io.Reader, changes map[string]*string, opts *RewriteOptions) error {
	if opts == nil {
		opts = new(RewriteOptions)
	}
	p := NewParser(r)
	inHeader := true
	prev := ""
	havePrev := false
	for p.Scan() {
		ln := p.Line()
		if inHeader {
			if ln.Kind != Entry {
				if havePrev {
					if err := writeString(w, prev); err != nil {
						return err
					}
				}
				prev, havePrev = ln.Source, true
				continue
			}
			// The last header line before the first entry is where
			// java.util.Properties keeps its timestamp comment.
			if havePrev {
				keep := opts.PreserveTimestamp || !isTimestamp(chomp(prev))
				if keep {
					if err := writeString(w, prev); err != nil {
						return err
					}
				}
			}
			if !opts.PreserveTimestamp {
				if err := writeString(w, ToComment(Timestamp(now()))+"\n"); err != nil {
					return err
				}
			}
			inHeader = false
		}
		if ln.Kind == Entry {
			if newValue, ok := changes[ln.Key]; ok {
				if newValue != nil {
					line := JoinKeyValue(ln.Key, *newValue, opts.Separator)
					if err := writeString(w, line+"\n"); err != nil {
						return err
					}
					changes[ln.Key] = nil
				}
				continue
			}
		}
		if err := writeString(w, passthrough(ln.Source)); err != nil {
			return err
		}
	}
	if err := p.Err(); err != nil {
		return err
	}
	if inHeader {
		// No entries at all; flush the held-back header line.
		if havePrev && (opts.PreserveTimestamp || !isTimestamp(chomp(prev))) {
			if err := writeString(w, prev); err != nil {
				return err
			}
		}
		if !opts.PreserveTimestamp {
			if err := writeString(w, ToComment(Timestamp(now()))+"\n"); err != nil {
				return err
			}
		}
	}
	for key, value := range changes {
		if value == nil {
			continue
		}
		line := JoinKeyValue(key, *value, opts.Separator)
		if err := writeString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// passthrough re-emits a logical line's source with the final terminator
// normalized to '\n' and a dangling continuation backslash removed, so
// appended entries cannot be absorbed into the last line of the original
// file.
func passthrough(source string) string {
	t := chomp(source)
	if endsWithContinuation(t) {
		t = t[:len(t)-1]
	}
	return t + "\n"
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("rewrite properties: %w", err)
	}
	return nil
}
