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
	"regexp"
	"strings"

	"github.com/poojapathak0/vyra/source"
)

// comparisonPhrases normalizes an English comparative phrase to its
// symbolic operator. Longer phrases are listed before the shorter
// phrases they contain ("is greater than or equal to" before "is
// greater than"), mirroring spec.md §4.3's note that ordering in the
// pattern table is semantically significant.
var comparisonPhrases = []struct {
	re *regexp.Regexp
	op string
}{
	{regexp.MustCompile(`(?i)\bis not equal to\b`), "!="},
	{regexp.MustCompile(`(?i)\bis greater than or equal to\b`), ">="},
	{regexp.MustCompile(`(?i)\bis less than or equal to\b`), "<="},
	{regexp.MustCompile(`(?i)\bis at least\b`), ">="},
	{regexp.MustCompile(`(?i)\bis at most\b`), "<="},
	{regexp.MustCompile(`(?i)\bis greater than\b`), ">"},
	{regexp.MustCompile(`(?i)\bis less than\b`), "<"},
	{regexp.MustCompile(`(?i)\bis equal to\b`), "=="},
	{regexp.MustCompile(`(?i)\bis not\b`), "!="},
	{regexp.MustCompile(`(?i)\bequals\b`), "=="},
	{regexp.MustCompile(`(?i)\bis\b`), "=="},
}

// normalizeComparisons rewrites English comparison phrases into their
// symbolic operators so the expression tokenizer only ever has to
// understand symbols. It leaves "and"/"or"/"not"/"followed by" alone
// since those are recognized directly as keyword tokens.
func normalizeComparisons(text string) string {
	for _, p := range comparisonPhrases {
		text = p.re.ReplaceAllString(text, " "+p.op+" ")
	}
	return text
}

// exprParser is a recursive-descent, precedence-climbing parser over
// the token stream produced by scanner, following the structure of
// the teacher's partiql expression parser and mattn/skylark's
// parseTestPrec (explicit per-level functions rather than a single
// generic loop, since our precedence table mixes left- and
// right-associative levels and a standalone unary tier).
type exprParser struct {
	sc  *scanner
	tok token
	pos source.Pos
}

func newExprParser(text string, at source.Pos) (*exprParser, error) {
	p := &exprParser{sc: newScanner(normalizeComparisons(text), at), pos: at}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *exprParser) advance() error {
	t, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *exprParser) isKeyword(words ...string) bool {
	if p.tok.kind != tIdent {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(p.tok.text, w) {
			return true
		}
	}
	return false
}

// ParseExpr parses text (already comparison-normalized by the caller's
// pattern match, or raw — normalizeComparisons is idempotent on plain
// symbols) as a single expression and requires the whole string to be
// consumed.
func ParseExpr(text string, at source.Pos) (Expr, error) {
	p, err := newExprParser(text, at)
	if err != nil {
		return nil, err
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tEOF {
		return nil, &MalformedExpressionError{At: at, Msg: "unexpected trailing input in expression"}
	}
	return e, nil
}

func (p *exprParser) parseOr() (Expr, error) {
	x, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		x = &Binary{P: p.pos, Op: OpOr, X: x, Y: y}
	}
	return x, nil
}

func (p *exprParser) parseAnd() (Expr, error) {
	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		x = &Binary{P: p.pos, Op: OpAnd, X: x, Y: y}
	}
	return x, nil
}

func (p *exprParser) parseNot() (Expr, error) {
	if p.isKeyword("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{P: p.pos, Op: OpNot, X: x}, nil
	}
	return p.parseCompare()
}

func (p *exprParser) parseCompare() (Expr, error) {
	x, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	var op BinOp
	switch p.tok.kind {
	case tEq:
		op = OpEq
	case tNeq:
		op = OpNeq
	case tLt:
		op = OpLt
	case tLte:
		op = OpLte
	case tGt:
		op = OpGt
	case tGte:
		op = OpGte
	default:
		return x, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	y, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	return &Binary{P: p.pos, Op: op, X: x, Y: y}, nil
}

func (p *exprParser) isFollowedBy() bool {
	return p.isKeyword("followed")
}

func (p *exprParser) parseConcat() (Expr, error) {
	x, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for p.isFollowedBy() {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.isKeyword("by") {
			return nil, &MalformedExpressionError{At: p.pos, Msg: `expected "by" after "followed"`}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		x = &Binary{P: p.pos, Op: OpConcat, X: x, Y: y}
	}
	return x, nil
}

func (p *exprParser) parseAddSub() (Expr, error) {
	x, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tPlus || p.tok.kind == tMinus {
		op := OpAdd
		if p.tok.kind == tMinus {
			op = OpSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		x = &Binary{P: p.pos, Op: op, X: x, Y: y}
	}
	return x, nil
}

func (p *exprParser) parseMulDiv() (Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tStar || p.tok.kind == tSlash || p.tok.kind == tPercent {
		var op BinOp
		switch p.tok.kind {
		case tStar:
			op = OpMul
		case tSlash:
			op = OpDiv
		case tPercent:
			op = OpMod
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = &Binary{P: p.pos, Op: op, X: x, Y: y}
	}
	return x, nil
}

func (p *exprParser) parseUnary() (Expr, error) {
	if p.tok.kind == tMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{P: p.pos, Op: OpNeg, X: x}, nil
	}
	return p.parsePow()
}

// parsePow implements right-associative '**' above unary minus and
// below primary/suffix parsing.
func (p *exprParser) parsePow() (Expr, error) {
	x, err := p.parseSuffix()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tStarStar {
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.parseUnary() // right-assoc: recurse at the unary/pow tier
		if err != nil {
			return nil, err
		}
		return &Binary{P: p.pos, Op: OpPow, X: x, Y: y}, nil
	}
	return x, nil
}

// parseSuffix handles index and call suffixes following a primary,
// mirroring skylark's parsePrimaryWithSuffix.
func (p *exprParser) parseSuffix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tLBrack {
		if err := p.advance(); err != nil {
			return nil, err
		}
		idx, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tRBrack {
			return nil, &MalformedExpressionError{At: p.pos, Msg: "expected ']'"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		x = &Index{P: p.pos, Seq: x, Idx: idx}
	}
	return x, nil
}

func (p *exprParser) parsePrimary() (Expr, error) {
	switch p.tok.kind {
	case tInt:
		v := p.tok.ival
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Literal{P: p.pos, Kind: LitInt, Int: v}, nil
	case tFloat:
		v := p.tok.fval
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Literal{P: p.pos, Kind: LitFloat, Float: v}, nil
	case tString:
		v := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Literal{P: p.pos, Kind: LitString, Str: v}, nil
	case tLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tRParen {
			return nil, &MalformedExpressionError{At: p.pos, Msg: "expected ')'"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tLBrack:
		return p.parseListLit()
	case tIdent:
		name := p.tok.text
		switch strings.ToLower(name) {
		case "true":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Literal{P: p.pos, Kind: LitBool, Bool: true}, nil
		case "false":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Literal{P: p.pos, Kind: LitBool, Bool: false}, nil
		case "none", "nothing", "absent":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return &Literal{P: p.pos, Kind: LitAbsent}, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tLParen {
			return p.parseCall(name)
		}
		return &Ident{P: p.pos, Name: name}, nil
	default:
		return nil, &MalformedExpressionError{At: p.pos, Msg: "expected an expression"}
	}
}

func (p *exprParser) parseCall(name string) (Expr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []Expr
	for p.tok.kind != tRParen {
		a, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.tok.kind == tComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.tok.kind != tRParen {
		return nil, &MalformedExpressionError{At: p.pos, Msg: "expected ')'"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &Call{P: p.pos, Name: name, Args: args}, nil
}

func (p *exprParser) parseListLit() (Expr, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var items []Expr
	for p.tok.kind != tRBrack {
		it, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		if p.tok.kind == tComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.tok.kind != tRBrack {
		return nil, &MalformedExpressionError{At: p.pos, Msg: "expected ']'"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ListLit{P: p.pos, Items: items}, nil
}
