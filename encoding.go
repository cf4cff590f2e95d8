// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultCharset is the charset .properties files use unless a caller picks
// another: ISO-8859-1, with characters outside it written as \uXXXX escapes.
const DefaultCharset = "ISO-8859-1"

// CharsetReader returns a reader that decodes text in the named charset from
// r into UTF-8. An empty name means DefaultCharset. Charset names are
// resolved through the IANA registry, so common aliases like "latin1" and
// "utf-8" work. Byte sequences that are not valid in the charset surface as
// read errors.
func CharsetReader(name string, r io.Reader) (io.Reader, error) {
	enc, err := lookupCharset(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// CharsetWriter returns a writer that encodes UTF-8 text written to it into
// the named charset on w. An empty name means DefaultCharset. The returned
// writer must be closed to flush any partially transformed text; closing it
// does not close w. Characters not representable in the charset surface as
// write errors.
func CharsetWriter(name string, w io.Writer) (io.WriteCloser, error) {
	enc, err := lookupCharset(name)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, DefaultCharset) || strings.EqualFold(name, "latin1") {
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q: unsupported", name)
	}
	return enc, nil
}
