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

package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/vyraerr"
)

// tok is the kind of an expression-level token. The expression
// tokenizer runs over the text of a single already-split Sentence, so
// it never has to deal with '.'/':' terminators itself.
type tok int

const (
	tEOF tok = iota
	tIdent
	tInt
	tFloat
	tString
	tLParen
	tRParen
	tLBrack
	tRBrack
	tComma
	tPlus
	tMinus
	tStar
	tStarStar
	tSlash
	tPercent
	tEq
	tNeq
	tLt
	tLte
	tGt
	tGte
)

type token struct {
	kind   tok
	text   string
	ival   int64
	fval   float64
	offset int
}

// scanner tokenizes expression text, treating multi-word keyword
// phrases ("followed by") as sequences of tIdent tokens that the
// parser recognizes by lookahead; comparison phrases ("is greater
// than", ...) are already rewritten to symbols by normalizeComparisons
// before scanning. Keyword classification stays out of here, the way the
// teacher's partiql scanner defers keyword classification to a
// generated lookup table rather than hardcoding every phrase here.
type scanner struct {
	src  []byte
	pos  int
	pos0 source.Pos
}

// MalformedExpressionError is raised by the expression scanner/parser.
type MalformedExpressionError struct {
	At   source.Pos
	Msg  string
}

func (e *MalformedExpressionError) Error() string {
	return e.At.String() + ": " + e.Msg
}
func (e *MalformedExpressionError) ErrKind() vyraerr.Kind { return vyraerr.KindParseError }

func newScanner(text string, at source.Pos) *scanner {
	return &scanner{src: []byte(text), pos0: at}
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return &MalformedExpressionError{At: s.pos0, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

func (s *scanner) next() (token, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return token{kind: tEOF, offset: s.pos}, nil
	}
	start := s.pos
	c := s.src[s.pos]
	switch {
	case isIdentStart(c):
		for s.pos < len(s.src) && isIdentCont(s.src[s.pos]) {
			s.pos++
		}
		return token{kind: tIdent, text: string(s.src[start:s.pos]), offset: start}, nil
	case isDigit(c):
		return s.scanNumber()
	case c == '"' || c == '\'':
		return s.scanString(c)
	case c == '(':
		s.pos++
		return token{kind: tLParen, offset: start}, nil
	case c == ')':
		s.pos++
		return token{kind: tRParen, offset: start}, nil
	case c == '[':
		s.pos++
		return token{kind: tLBrack, offset: start}, nil
	case c == ']':
		s.pos++
		return token{kind: tRBrack, offset: start}, nil
	case c == ',':
		s.pos++
		return token{kind: tComma, offset: start}, nil
	case c == '+':
		s.pos++
		return token{kind: tPlus, offset: start}, nil
	case c == '-':
		s.pos++
		return token{kind: tMinus, offset: start}, nil
	case c == '*':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '*' {
			s.pos++
			return token{kind: tStarStar, offset: start}, nil
		}
		return token{kind: tStar, offset: start}, nil
	case c == '/':
		s.pos++
		return token{kind: tSlash, offset: start}, nil
	case c == '%':
		s.pos++
		return token{kind: tPercent, offset: start}, nil
	case c == '=':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
		}
		return token{kind: tEq, offset: start}, nil
	case c == '!':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			return token{kind: tNeq, offset: start}, nil
		}
		return token{}, s.errorf("unexpected '!'")
	case c == '<':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			return token{kind: tLte, offset: start}, nil
		}
		return token{kind: tLt, offset: start}, nil
	case c == '>':
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			return token{kind: tGte, offset: start}, nil
		}
		return token{kind: tGt, offset: start}, nil
	default:
		return token{}, s.errorf("unexpected character %q", c)
	}
}

func (s *scanner) scanNumber() (token, error) {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	isFloat := false
	if s.pos < len(s.src) && s.src[s.pos] == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]) {
		isFloat = true
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	text := string(s.src[start:s.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, s.errorf("bad float literal %q", text)
		}
		return token{kind: tFloat, fval: f, text: text, offset: start}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, s.errorf("bad integer literal %q", text)
	}
	return token{kind: tInt, ival: i, text: text, offset: start}, nil
}

func (s *scanner) scanString(quote byte) (token, error) {
	start := s.pos
	s.pos++ // consume opening quote
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return token{}, s.errorf("unterminated string literal")
		}
		c := s.src[s.pos]
		if c == quote {
			s.pos++
			break
		}
		if c == '\\' && s.pos+1 < len(s.src) {
			s.pos++
			switch s.src[s.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(s.src[s.pos])
			default:
				b.WriteByte(s.src[s.pos])
			}
			s.pos++
			continue
		}
		b.WriteByte(c)
		s.pos++
	}
	return token{kind: tString, text: b.String(), offset: start}, nil
}
