// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"
)

// JoinKeyValue serializes a key/value pair as a single entry line without a
// trailing terminator. An empty separator means "=". For any separator that
// is "=", ":", or a run of spaces, tabs, or form feeds (optionally padded
// with that whitespace), parsing the result yields the original pair.
func JoinKeyValue(key, value, separator string) string {
	if separator == "" {
		separator = "="
	}
	return Escape(key) + separator + EscapeValue(value)
}

// ToComment renders text as one or more comment lines, without a trailing
// terminator. The text is prefixed with '#', CR and CRLF are normalized to
// LF, every embedded newline is followed by '#' unless the next character
// already starts a comment, and characters outside Latin-1 are written as
// \uXXXX escapes.
func ToComment(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	sb := new(strings.Builder)
	sb.Grow(len(text) + 1)
	sb.WriteByte('#')
	for i, r := range text {
		if r > 0xff {
			writeUEscape(sb, r)
			continue
		}
		sb.WriteRune(r)
		if r == '\n' && !startsComment(text[i+1:]) {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

func startsComment(s string) bool {
	return len(s) > 0 && (s[0] == '#' || s[0] == '!')
}

// timestampLayout is the form java.util.Date.toString uses, which
// java.util.Properties.store writes as the first comment of a file.
const timestampLayout = "Mon Jan 02 15:04:05 MST 2006"

// Timestamp formats t the way java.util.Properties.store writes it in a
// file's header comment.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

var timestampRegexp = regexp.MustCompile(`^[ \t\f]*[#!]\s*\w+ \w+ [ \d]?\d \d\d:\d\d:\d\d \w* \d{4,}\s*$`)

// isTimestamp reports whether a comment line looks like a header timestamp.
// The terminator must be removed first.
func isTimestamp(line string) bool {
	return timestampRegexp.MatchString(line)
}

// DumpOptions holds optional parameters for File.Dump. The zero value emits
// entries with "=" in their original order.
type DumpOptions struct {
	// Separator is placed between each key and value. Empty means "=".
	Separator string

	// SortKeys emits entries sorted by key instead of in table order.
	SortKeys bool
}

// Dump writes every entry of the table to w, one line per entry, terminated
// with '\n'. Nil options are treated identically to the zero value.
func (f *File) Dump(w io.Writer, opts *DumpOptions) error {
	if f == nil {
		return nil
	}
	separator := ""
	sorted := false
	if opts != nil {
		separator = opts.Separator
		sorted = opts.SortKeys
	}
	entries := f.entries
	if sorted {
		entries = append([]entry(nil), entries...)
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].key < entries[j].key
		})
	}
	for _, e := range entries {
		if _, err := io.WriteString(w, JoinKeyValue(e.key, e.value, separator)+"\n"); err != nil {
			return fmt.Errorf("dump properties: %w", err)
		}
	}
	return nil
}

// Store writes the table the way java.util.Properties.store does: an optional
// leading comment, then a timestamp comment, then every entry in table order
// using "=" as the separator.
func (f *File) Store(w io.Writer, comment string) error {
	if comment != "" {
		if _, err := io.WriteString(w, ToComment(comment)+"\n"); err != nil {
			return fmt.Errorf("store properties: %w", err)
		}
	}
	if _, err := io.WriteString(w, ToComment(Timestamp(now()))+"\n"); err != nil {
		return fmt.Errorf("store properties: %w", err)
	}
	return f.Dump(w, nil)
}

var now = time.Now // replaced in tests
