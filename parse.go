// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// A Kind classifies a logical line.
type Kind int

// Kinds of logical lines.
const (
	Blank Kind = iota
	Comment
	Entry
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Entry:
		return "entry"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Line is one logical line of a .properties file. Key and Value are set
// only for Entry lines and have had their escapes decoded. Source is the
// exact original text of the logical line, including line terminators and any
// continuation lines, so concatenating the Source of every Line reproduces
// the input. Number is the 1-based physical line the logical line began on.
type Line struct {
	Kind   Kind
	Key    string
	Value  string
	Source string
	Number int
}

// separator whitespace per java.util.Properties: space, tab, and form feed.
// Generic Unicode whitespace must not split keys from values.
const sepSpace = " \t\f"

// A Parser reads a .properties file one logical line at a time. It does not
// buffer more than one logical line of input, so arbitrarily large files can
// be read incrementally.
type Parser struct {
	s    *bufio.Scanner
	line int // number of the next physical line
	cur  Line
	err  error
	done bool
}

// NewParser returns a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	s := bufio.NewScanner(r)
	s.Split(scanTerminatedLines)
	s.Buffer(nil, maxLineLen)
	return &Parser{s: s, line: 1}
}

const maxLineLen = 1 << 20

// Scan advances the Parser to the next logical line, which is then available
// through the Line method. It returns false when the input is exhausted or an
// error occurs; Err distinguishes the two.
func (p *Parser) Scan() bool {
	if p.done {
		return false
	}
	if !p.s.Scan() {
		p.done = true
		if err := p.s.Err(); err != nil {
			p.err = fmt.Errorf("parse properties: line %d: %w", p.line, err)
		}
		return false
	}
	source := p.s.Text()
	start := p.line
	p.line++

	if isComment(source) {
		p.cur = Line{Kind: Comment, Source: source, Number: start}
		return true
	}
	line := strings.TrimLeft(chomp(source), sepSpace)
	for endsWithContinuation(line) {
		line = line[:len(line)-1]
		if !p.s.Scan() {
			p.done = true
			if err := p.s.Err(); err != nil {
				p.err = fmt.Errorf("parse properties: line %d: %w", p.line, err)
				return false
			}
			// Dangling continuation at end of input: the backslash is
			// dropped and the line stands on its own.
			break
		}
		next := p.s.Text()
		p.line++
		source += next
		line += strings.TrimLeft(chomp(next), sepSpace)
	}
	if line == "" {
		p.cur = Line{Kind: Blank, Source: source, Number: start}
		return true
	}

	rawKey, rawValue := splitKeyValue(line)
	key, err := Unescape(rawKey)
	if err == nil {
		var value string
		value, err = Unescape(rawValue)
		if err == nil {
			p.cur = Line{Kind: Entry, Key: key, Value: value, Source: source, Number: start}
			return true
		}
	}
	var esc *MalformedEscapeError
	if errors.As(err, &esc) {
		esc.Line = start
		err = esc
	}
	p.err = fmt.Errorf("parse properties: %w", err)
	p.done = true
	return false
}

// Line returns the logical line read by the most recent call to Scan.
func (p *Parser) Line() Line {
	return p.cur
}

// Err returns the first error encountered by the Parser.
func (p *Parser) Err() error {
	return p.err
}

// scanTerminatedLines is a bufio.SplitFunc that returns one physical line per
// token, terminator included. LF, CRLF, and bare CR all end a line.
func scanTerminatedLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	i := bytes.IndexAny(data, "\r\n")
	if i == -1 {
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
	if data[i] == '\n' {
		return i + 1, data[:i+1], nil
	}
	// A CR at the end of the buffer may be half of a CRLF.
	if i+1 == len(data) && !atEOF {
		return 0, nil, nil
	}
	if i+1 < len(data) && data[i+1] == '\n' {
		return i + 2, data[:i+2], nil
	}
	return i + 1, data[:i+1], nil
}

// chomp removes the line terminator, if any, from the end of a physical line.
func chomp(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func isComment(source string) bool {
	rest := strings.TrimLeft(source, sepSpace)
	return strings.HasPrefix(rest, "#") || strings.HasPrefix(rest, "!")
}

// endsWithContinuation reports whether a line ends with an odd number of
// backslashes, meaning the final backslash escapes the line terminator.
func endsWithContinuation(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// splitKeyValue splits a joined logical line at the first unescaped
// separator. The returned halves are still escaped.
func splitKeyValue(line string) (key, value string) {
	i := 0
scan:
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case ' ', '\t', '\f', '=', ':':
			break scan
		default:
			i++
		}
	}
	if i >= len(line) {
		return line, ""
	}
	key = line[:i]
	j := i
	for j < len(line) && isSepSpace(line[j]) {
		j++
	}
	if j < len(line) && (line[j] == '=' || line[j] == ':') {
		j++
		for j < len(line) && isSepSpace(line[j]) {
			j++
		}
	}
	return key, line[j:]
}

func isSepSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}
