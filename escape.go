// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// A MalformedEscapeError reports a \u escape sequence that is not followed by
// four hexadecimal digits. Line is the 1-based physical line number of the
// entry the sequence appeared on, or zero when the input did not come from
// a parse.
type MalformedEscapeError struct {
	Sequence string
	Line     int
}

func (e *MalformedEscapeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid \\u escape sequence %q", e.Line, e.Sequence)
	}
	return fmt.Sprintf("invalid \\u escape sequence %q", e.Sequence)
}

const hexDigits = "0123456789abcdef"

// Escape escapes a string for use as a key in a .properties file. All spaces,
// separator characters, comment markers, and backslashes are escaped, and any
// character outside printable ASCII is written as one or more \uXXXX escapes.
//
// Unescape(Escape(s)) == s for every s.
func Escape(s string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		case ' ':
			sb.WriteString(`\ `)
		case '=', ':', '#', '!':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			writeASCII(sb, r)
		}
	}
	return sb.String()
}

// EscapeValue escapes a string for use as a value in a .properties file. Only
// leading spaces are escaped; internal spaces and separator-looking characters
// are unambiguous after the key and stay literal.
//
// Unescape(EscapeValue(s)) == s for every s.
func EscapeValue(s string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s))
	i := 0
	for i < len(s) && s[i] == ' ' {
		sb.WriteString(`\ `)
		i++
	}
	for _, r := range s[i:] {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			writeASCII(sb, r)
		}
	}
	return sb.String()
}

func writeASCII(sb *strings.Builder, r rune) {
	if 0x20 <= r && r <= 0x7e {
		sb.WriteByte(byte(r))
		return
	}
	writeUEscape(sb, r)
}

func writeUEscape(sb *strings.Builder, r rune) {
	if r > 0xffff {
		r1, r2 := utf16.EncodeRune(r)
		writeUEscape(sb, r1)
		writeUEscape(sb, r2)
		return
	}
	sb.WriteString(`\u`)
	sb.WriteByte(hexDigits[r>>12&0xf])
	sb.WriteByte(hexDigits[r>>8&0xf])
	sb.WriteByte(hexDigits[r>>4&0xf])
	sb.WriteByte(hexDigits[r&0xf])
}

// Unescape decodes the backslash escapes in a key or value read from a
// .properties file. A backslash before a character with no assigned escape
// stands for that character, and a lone backslash at the end of the input is
// kept as a literal backslash. Unescape returns a *MalformedEscapeError if a
// \u sequence is not followed by four hexadecimal digits.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, '\\') == -1 {
		return s, nil
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 == len(s) {
			sb.WriteByte('\\')
			break
		}
		switch e := s[i+1]; e {
		case 'u':
			u, next, err := decodeUEscape(s, i)
			if err != nil {
				return "", err
			}
			i = next
			if utf16.IsSurrogate(u) && strings.HasPrefix(s[next:], `\u`) {
				// A high surrogate may pair with an immediately following
				// low surrogate escape to form one supplementary character.
				if u2, next2, err2 := decodeUEscape(s, next); err2 == nil {
					if r := utf16.DecodeRune(u, u2); r != 0xfffd {
						sb.WriteRune(r)
						i = next2
						continue
					}
				}
			}
			sb.WriteRune(u)
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		default:
			sb.WriteByte(e)
			i += 2
		}
	}
	return sb.String(), nil
}

// decodeUEscape decodes the \uXXXX sequence starting at s[i] (the backslash)
// and returns the code unit and the index just past the sequence.
func decodeUEscape(s string, i int) (rune, int, error) {
	digits := s[i+2:]
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) < 4 || !isHex(digits) {
		end := i + 2
		for end < len(s) && end < i+6 && isHexDigit(s[end]) {
			end++
		}
		return 0, 0, &MalformedEscapeError{Sequence: s[i:end]}
	}
	var u rune
	for j := 0; j < 4; j++ {
		u = u<<4 | rune(fromHex(digits[j]))
	}
	return u, i + 6, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' ||
		'a' <= c && c <= 'f' ||
		'A' <= c && c <= 'F'
}

func fromHex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 0xa
	case 'A' <= c && c <= 'F':
		return c - 'A' + 0xa
	default:
		panic("invalid hex digit")
	}
}
