// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package properties provides a parser and serializer for the Java .properties
file format, as read and written by java.util.Properties.

This package is specifically designed for round-trip scenarios: the low-level
Parser retains the exact source text of every logical line, so tools can edit
individual values while reproducing the rest of a file byte-for-byte.

Syntax

A .properties file is line-oriented text, conventionally encoded in ISO-8859-1
(Latin-1) with characters outside that range written as \uXXXX escapes. Each
logical line is a blank line, a comment, or a key/value entry:

	key=value
	key: value
	key value

The key ends at the first unescaped '=', ':', or run of spaces, tabs, or form
feeds. Whitespace before the key, around the separator, and between the
separator and the value is ignored; whitespace at the end of the value is not.
A line whose first non-whitespace character is '#' or '!' is a comment.

A logical line may span several physical lines: a line ending in an odd number
of backslashes continues onto the next physical line, with the backslash, the
line terminator, and the next line's leading whitespace removed. Comments are
never continued. Line terminators may be LF, CRLF, or a bare CR.

Keys and values use backslash escapes:

	\t \n \f \r   the usual control characters
	\\            U+005C backslash
	\ \= \: \# \! literal space, equals, colon, hash, bang
	\uXXXX        one UTF-16 code unit (exactly 4 hex digits)

A backslash before any other character stands for that character. Escape and
EscapeValue produce ASCII-safe output using these sequences; Unescape reverses
them.

Repeated keys

When the same key appears on multiple entry lines, a File keeps only the value
from the last occurrence, but the key iterates at the position of its first
occurrence. This matches the behavior callers of java.util.Properties expect
for deterministic rewriting.
*/
package properties
