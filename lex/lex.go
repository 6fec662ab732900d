// Copyright (C) 2024 Vyra Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package lex implements spec.md §4.2: splitting an include-resolved
// Unit into sentence tokens, each carrying its indentation and
// terminator, with quoted strings and bracketed list literals treated
// as opaque spans during the scan.
package lex

import (
	"fmt"
	"strings"

	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/vyraerr"
)

// tabWidth canonicalizes a tab to a fixed column width before
// indentation is measured, per spec.md §9's design note.
const tabWidth = 4

// Terminator distinguishes a sentence that opens a block (':') from
// one that does not ('.').
type Terminator byte

const (
	TermPeriod Terminator = '.'
	TermColon  Terminator = ':'
)

// Sentence is one syntactic statement: text with its terminator and
// leading whitespace already stripped, plus its indentation and the
// original-file position of its first physical line.
type Sentence struct {
	Text   string
	Indent int
	Term   Terminator
	Pos    source.Pos
}

// UnterminatedError is raised when end-of-input is reached with an
// open sentence (no '.' or ':' seen) or an unclosed '[' list literal.
type UnterminatedError struct {
	Pos    source.Pos
	Reason string
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
}
func (e *UnterminatedError) ErrKind() vyraerr.Kind { return vyraerr.KindParseError }

// Split scans u and returns its sentence tokens in source order.
func Split(u *source.Unit) ([]Sentence, error) {
	var out []Sentence

	var buf strings.Builder
	var bufIndent int
	var bufPos source.Pos
	bufStarted := false

	var inSingle, inDouble bool
	depth := 0 // bracket nesting ('[' ... ']')

	flush := func(term Terminator) {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			out = append(out, Sentence{Text: text, Indent: bufIndent, Term: term, Pos: bufPos})
		}
		buf.Reset()
		bufStarted = false
	}

	for li, line := range u.Lines {
		pos := u.Origin[li]
		indent := measureIndent(line)
		for _, r := range line {
			if !bufStarted && r != ' ' && r != '\t' {
				bufStarted = true
				bufIndent = indent
				bufPos = pos
			}
			switch {
			case r == '\'' && !inDouble:
				inSingle = !inSingle
			case r == '"' && !inSingle:
				inDouble = !inDouble
			case r == '[' && !inSingle && !inDouble:
				depth++
			case r == ']' && !inSingle && !inDouble && depth > 0:
				depth--
			case (r == '.' || r == ':') && !inSingle && !inDouble && depth == 0:
				flush(Terminator(r))
				continue
			}
			if bufStarted {
				buf.WriteRune(r)
			}
		}
		// A dangling, unterminated buffer carries over to the next
		// line verbatim: this lets a '[' list literal span several
		// physical lines. A separating space keeps tokens from
		// merging across the line break.
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
	}

	if strings.TrimSpace(buf.String()) != "" {
		return nil, &UnterminatedError{Pos: bufPos, Reason: "sentence has no terminating '.' or ':'"}
	}

	return out, nil
}

func measureIndent(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += tabWidth
		default:
			return n
		}
	}
	return n
}
