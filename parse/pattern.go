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
	"regexp"
	"strings"

	"github.com/poojapathak0/vyra/lex"
	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/vyraerr"
)

// UnknownSentenceError is raised when no pattern-table entry matches a
// sentence.
type UnknownSentenceError struct {
	Pos  source.Pos
	Text string
}

func (e *UnknownSentenceError) Error() string {
	return fmt.Sprintf("%s: unrecognized sentence: %q", e.Pos, e.Text)
}
func (e *UnknownSentenceError) ErrKind() vyraerr.Kind { return vyraerr.KindParseError }

// UnbalancedBlocksError is raised when a ':'-terminated sentence has
// no indented body, or a block's indentation is otherwise malformed.
type UnbalancedBlocksError struct {
	Pos source.Pos
	Msg string
}

func (e *UnbalancedBlocksError) Error() string { return e.Pos.String() + ": " + e.Msg }
func (e *UnbalancedBlocksError) ErrKind() vyraerr.Kind { return vyraerr.KindParseError }

// UnexpectedTokenError wraps a dangling "Otherwise"/"Otherwise if" that
// is not attached to a preceding If, or similar structural mismatches.
type UnexpectedTokenError struct {
	Pos source.Pos
	Msg string
}

func (e *UnexpectedTokenError) Error() string { return e.Pos.String() + ": " + e.Msg }
func (e *UnexpectedTokenError) ErrKind() vyraerr.Kind { return vyraerr.KindParseError }

// Parse lifts a flat sentence stream (already indentation-tagged by
// package lex) into a top-level statement list.
//
// The pattern table is consulted in a fixed order (ordering is
// semantically significant, per spec.md §4.3): more specific patterns
// are listed, and tried, before more general ones. Add's list-append
// vs. arithmetic-in-place ambiguity is resolved by a first pass over
// every sentence that records which identifiers were ever declared via
// "Create a list called X", mirroring the spec's required two-pass
// strategy.
func Parse(sents []lex.Sentence) ([]Stmt, error) {
	p := &parser{sents: sents, declaredLists: scanDeclaredLists(sents)}
	stmts, err := p.parseBlock(-1)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.sents) {
		return nil, &UnbalancedBlocksError{Pos: p.cur().Pos, Msg: "trailing indented sentence with no opening block"}
	}
	return stmts, nil
}

var createListRe = regexp.MustCompile(`(?i)^Create (?:a|an empty) list called (\w+)`)

func scanDeclaredLists(sents []lex.Sentence) map[string]bool {
	out := map[string]bool{}
	for _, s := range sents {
		if m := createListRe.FindStringSubmatch(s.Text); m != nil {
			out[m[1]] = true
		}
	}
	return out
}

type parser struct {
	sents         []lex.Sentence
	pos           int
	declaredLists map[string]bool
}

func (p *parser) cur() lex.Sentence {
	if p.pos < len(p.sents) {
		return p.sents[p.pos]
	}
	return lex.Sentence{}
}

func (p *parser) atEnd() bool { return p.pos >= len(p.sents) }

// parseBlock consumes every sentence whose indentation is strictly
// greater than parentIndent, i.e. the body opened by a ':' terminator
// (or the whole program, for parentIndent == -1).
func (p *parser) parseBlock(parentIndent int) ([]Stmt, error) {
	var out []Stmt
	for !p.atEnd() && p.cur().Indent > parentIndent {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// requireBlock consumes the body of a ':'-terminated sentence at
// indentation headIndent; it is an error for no indented sentence to
// follow.
func (p *parser) requireBlock(headIndent int, head lex.Sentence) ([]Stmt, error) {
	if p.atEnd() || p.cur().Indent <= headIndent {
		return nil, &UnbalancedBlocksError{Pos: head.Pos, Msg: "expected an indented block after ':'"}
	}
	return p.parseBlock(headIndent)
}

func (p *parser) parseStmt() (Stmt, error) {
	s := p.cur()
	p.pos++

	text := strings.TrimSpace(s.Text)

	for _, pat := range statementPatterns {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if pat.term != 0 && pat.term != s.Term {
			continue
		}
		return pat.fn(p, s, m)
	}

	if danglingOtherwiseRe.MatchString(text) {
		return nil, &UnexpectedTokenError{Pos: s.Pos, Msg: `"Otherwise" without a preceding If`}
	}
	return nil, &UnknownSentenceError{Pos: s.Pos, Text: s.Text}
}

type patternEntry struct {
	re   *regexp.Regexp
	term lex.Terminator // 0 means "either"
	fn   func(p *parser, s lex.Sentence, m []string) (Stmt, error)
}

// statementPatterns is the ordered pattern table of spec.md §4.3.
// Entries earlier in the list win on the first match, so the more
// specific "... and store the result in Z" forms precede the in-place
// "Add X to Y" and "Multiply/Divide X by Y" entries, and "Call F with
// ... and store in Z" precedes the plain "Call F with ..." entry.
var statementPatterns []patternEntry

func init() {
	statementPatterns = []patternEntry{
		{regexp.MustCompile(`(?i)^(?:Set|Store|Save)\s+(\w+)\s+(?:to|as)\s+(.+)$`), '.', assignStmt},
		{regexp.MustCompile(`(?i)^Create a variable called (\w+) with value\s+(.+)$`), '.', assignStmt},
		{regexp.MustCompile(`(?i)^Create an empty list called (\w+)$`), '.', emptyListStmt},
		{regexp.MustCompile(`(?i)^Create a list called (\w+) with values\s*(\[.*\])$`), '.', listLitStmt},
		{regexp.MustCompile(`(?i)^(Add|Subtract|Multiply|Divide)\s+(.+?)\s+and\s+(.+?)\s+and store the result in\s+(\w+)$`), '.', arithToTargetStmt},
		{regexp.MustCompile(`(?i)^Add\s+(.+?)\s+to\s+(\w+)$`), '.', addStmt},
		{regexp.MustCompile(`(?i)^Subtract\s+(.+?)\s+from\s+(\w+)$`), '.', subtractInPlaceStmt},
		{regexp.MustCompile(`(?i)^(Multiply|Divide)\s+(\w+)\s+by\s+(.+?)\s+and store(?: the result)? in\s+(\w+)$`), '.', mulDivByToTargetStmt},
		{regexp.MustCompile(`(?i)^Multiply\s+(\w+)\s+by\s+(.+)$`), '.', multiplyInPlaceStmt},
		{regexp.MustCompile(`(?i)^Divide\s+(\w+)\s+by\s+(.+)$`), '.', divideInPlaceStmt},
		{regexp.MustCompile(`(?i)^Increment\s+(\w+)$`), '.', incrementStmt},
		{regexp.MustCompile(`(?i)^Decrement\s+(\w+)$`), '.', decrementStmt},
		{regexp.MustCompile(`(?i)^(?:Display|Show|Print|Say)\s+(.+)$`), '.', displayStmt},
		{regexp.MustCompile(`(?i)^Get a number from the user and store it in\s+(\w+)$`), '.', askNumberStmt},
		{regexp.MustCompile(`(?i)^Ask the user for .*?\(?called\s+(\w+)\)?$`), '.', askTextStmt},
		{regexp.MustCompile(`(?i)^If\s+(.+?),\s*(.+)$`), '.', inlineIfStmt},
		{regexp.MustCompile(`(?i)^If\s+(.+)$`), ':', blockIfStmt},
		{regexp.MustCompile(`(?i)^While\s+(.+)$`), ':', whileStmt},
		{regexp.MustCompile(`(?i)^Repeat\s+(.+?)\s+times$`), ':', repeatStmt},
		{regexp.MustCompile(`(?i)^For each\s+(\w+)\s+in\s+(.+)$`), ':', forEachStmt},
		{regexp.MustCompile(`(?i)^Stop the loop$`), '.', breakStmt},
		{regexp.MustCompile(`(?i)^Continue to next iteration$`), '.', continueStmt},
		{regexp.MustCompile(`(?i)^(?:Create function|Define function)\s+(\w+)\s+(?:that takes|with parameters?)\s+(.+)$`), ':', functionDefStmt},
		{regexp.MustCompile(`(?i)^(?:Create function|Define function)\s+(\w+)$`), ':', functionDefNoParamsStmt},
		{regexp.MustCompile(`(?i)^Call\s+(\w+)\s+with\s+(.+?)\s+and store in\s+(\w+)$`), '.', callWithResultStmt},
		{regexp.MustCompile(`(?i)^Call\s+(\w+)\s+with\s+(.+)$`), '.', callStmt},
		{regexp.MustCompile(`(?i)^Call\s+(\w+)\s+and store in\s+(\w+)$`), '.', callNoArgsWithResultStmt},
		{regexp.MustCompile(`(?i)^Call\s+(\w+)$`), '.', callNoArgsStmt},
		{regexp.MustCompile(`(?i)^Return\s+(.+)$`), '.', returnValueStmt},
		{regexp.MustCompile(`(?i)^Return$`), '.', returnBareStmt},
		{regexp.MustCompile(`(?i)^Read file\s+(.+?)\s+into\s+(\w+)$`), '.', readFileStmt},
		{regexp.MustCompile(`(?i)^Write\s+(.+?)\s+to file\s+(.+)$`), '.', writeFileStmt},
	}
}

func parseExprAt(text string, pos source.Pos) (Expr, error) {
	return ParseExpr(strings.TrimSpace(text), pos)
}

func splitArgs(text string) []string {
	// arguments are separated by "and" only ("Call F with A and B");
	// commas are not separators here (parseParamList additionally
	// splits parameter lists on commas).
	parts := splitTopLevel(text, " and ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitTopLevel splits text on sep, ignoring occurrences of sep that
// are nested inside brackets or quotes.
func splitTopLevel(text, sep string) []string {
	var out []string
	depth := 0
	inS, inD := false, false
	start := 0
	for i := 0; i+len(sep) <= len(text); i++ {
		c := text[i]
		switch {
		case c == '\'' && !inD:
			inS = !inS
		case c == '"' && !inS:
			inD = !inD
		case c == '[' && !inS && !inD:
			depth++
		case c == ']' && !inS && !inD && depth > 0:
			depth--
		}
		if depth == 0 && !inS && !inD && text[i:i+len(sep)] == sep {
			out = append(out, text[start:i])
			start = i + len(sep)
			i += len(sep) - 1
		}
	}
	out = append(out, text[start:])
	return out
}

func assignStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	e, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Assign{P: s.Pos, Target: m[1], Value: e}, nil
}

func emptyListStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &Assign{P: s.Pos, Target: m[1], Value: &ListLit{P: s.Pos}}, nil
}

func listLitStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	e, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Assign{P: s.Pos, Target: m[1], Value: e}, nil
}

func arithOp(word string) BinOp {
	switch strings.ToLower(word) {
	case "add":
		return OpAdd
	case "subtract":
		return OpSub
	case "multiply":
		return OpMul
	case "divide":
		return OpDiv
	default:
		return OpAdd
	}
}

func arithToTargetStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	x, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	y, err := parseExprAt(m[3], s.Pos)
	if err != nil {
		return nil, err
	}
	op := arithOp(m[1])
	// Subtract/Divide "X and Y" is ambiguous in English ("Subtract 3
	// and 10 and store the result in z" could mean 10-3), so operands
	// keep the order written: z = X op Y, here 3-10, matching the
	// table's literal phrasing.
	return &Assign{P: s.Pos, Target: m[4], Value: &Binary{P: s.Pos, Op: op, X: x, Y: y}}, nil
}

// addStmt implements spec.md §4.3's disambiguation rule: "Add X to Y"
// is a list append if Y was declared via "Create a list called Y",
// otherwise it is arithmetic in place (Y := Y + X).
func addStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	target := strings.TrimSpace(m[2])
	val, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	if isBareIdent(target) && p.declaredLists[target] {
		return &ListAppend{P: s.Pos, Target: target, Value: val}, nil
	}
	return &Assign{P: s.Pos, Target: target, Value: &Binary{P: s.Pos, Op: OpAdd, X: &Ident{P: s.Pos, Name: target}, Y: val}}, nil
}

func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

func subtractInPlaceStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	target := strings.TrimSpace(m[2])
	val, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Assign{P: s.Pos, Target: target, Value: &Binary{P: s.Pos, Op: OpSub, X: &Ident{P: s.Pos, Name: target}, Y: val}}, nil
}

// mulDivByToTargetStmt handles "Multiply/Divide X by Y and store (the
// result) in Z": unlike the in-place forms below, the operand named in
// the sentence is read but not reassigned — only Z is.
func mulDivByToTargetStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	y, err := parseExprAt(m[3], s.Pos)
	if err != nil {
		return nil, err
	}
	op := arithOp(m[1])
	x := &Ident{P: s.Pos, Name: m[2]}
	return &Assign{P: s.Pos, Target: m[4], Value: &Binary{P: s.Pos, Op: op, X: x, Y: y}}, nil
}

func multiplyInPlaceStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	target := strings.TrimSpace(m[1])
	val, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Assign{P: s.Pos, Target: target, Value: &Binary{P: s.Pos, Op: OpMul, X: &Ident{P: s.Pos, Name: target}, Y: val}}, nil
}

func divideInPlaceStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	target := strings.TrimSpace(m[1])
	val, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Assign{P: s.Pos, Target: target, Value: &Binary{P: s.Pos, Op: OpDiv, X: &Ident{P: s.Pos, Name: target}, Y: val}}, nil
}

func incrementStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &Assign{P: s.Pos, Target: m[1], Value: &Binary{P: s.Pos, Op: OpAdd, X: &Ident{P: s.Pos, Name: m[1]}, Y: &Literal{P: s.Pos, Kind: LitInt, Int: 1}}}, nil
}

func decrementStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &Assign{P: s.Pos, Target: m[1], Value: &Binary{P: s.Pos, Op: OpSub, X: &Ident{P: s.Pos, Name: m[1]}, Y: &Literal{P: s.Pos, Kind: LitInt, Int: 1}}}, nil
}

func displayStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	e, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Display{P: s.Pos, Value: e}, nil
}

func askNumberStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &Ask{P: s.Pos, Target: m[1], Kind: AskNumber}, nil
}

func askTextStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &Ask{P: s.Pos, Target: m[1], Kind: AskText}, nil
}

// inlineIfStmt handles both "If Cond, Stmt." and, via lookahead on the
// following sentence, "If Cond, Stmt1. Otherwise Stmt2." (spec.md
// §4.3's "Inline If" row). "Otherwise if Cond, Stmt." chains as an
// elif at the same indentation.
func inlineIfStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	cond, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	thenStmt, err := parseInlineBody(p, m[2], s)
	if err != nil {
		return nil, err
	}
	ifs := &If{P: s.Pos, Cond: cond, Then: []Stmt{thenStmt}}
	for {
		if p.atEnd() || p.cur().Indent != s.Indent || p.cur().Term != '.' {
			break
		}
		next := p.cur()
		if m2 := otherwiseIfRe.FindStringSubmatch(next.Text); m2 != nil {
			p.pos++
			c2, err := parseExprAt(m2[1], next.Pos)
			if err != nil {
				return nil, err
			}
			st2, err := parseInlineBody(p, m2[2], next)
			if err != nil {
				return nil, err
			}
			ifs.Elifs = append(ifs.Elifs, ElifClause{Cond: c2, Body: []Stmt{st2}})
			continue
		}
		if m2 := otherwiseRe.FindStringSubmatch(next.Text); m2 != nil {
			p.pos++
			st2, err := parseInlineBody(p, m2[1], next)
			if err != nil {
				return nil, err
			}
			ifs.Else = []Stmt{st2}
		}
		break
	}
	return ifs, nil
}

var otherwiseIfRe = regexp.MustCompile(`(?i)^Otherwise if\s+(.+?),\s*(.+)$`)
var otherwiseRe = regexp.MustCompile(`(?i)^Otherwise\s+(.+)$`)
var blockOtherwiseIfRe = regexp.MustCompile(`(?i)^Otherwise if\s+(.+)$`)
var danglingOtherwiseRe = regexp.MustCompile(`(?i)^Otherwise\b`)

// parseInlineBody parses a single inline statement fragment (no
// trailing terminator, since the splitter already consumed it) by
// feeding it back through the same pattern table used for full
// sentences, with the enclosing parser's declared-list names.
func parseInlineBody(p *parser, text string, at lex.Sentence) (Stmt, error) {
	fake := lex.Sentence{Text: strings.TrimSpace(text), Indent: at.Indent, Term: '.', Pos: at.Pos}
	sub := &parser{sents: []lex.Sentence{fake}, declaredLists: p.declaredLists}
	return sub.parseStmt()
}

func blockIfStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	cond, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	body, err := p.requireBlock(s.Indent, s)
	if err != nil {
		return nil, err
	}
	ifs := &If{P: s.Pos, Cond: cond, Then: body}
	for !p.atEnd() && p.cur().Indent == s.Indent {
		next := p.cur()
		if m2 := blockOtherwiseIfRe.FindStringSubmatch(next.Text); m2 != nil && next.Term == ':' {
			p.pos++
			c2, err := parseExprAt(m2[1], next.Pos)
			if err != nil {
				return nil, err
			}
			b2, err := p.requireBlock(s.Indent, next)
			if err != nil {
				return nil, err
			}
			ifs.Elifs = append(ifs.Elifs, ElifClause{Cond: c2, Body: b2})
			continue
		}
		if strings.EqualFold(strings.TrimSpace(next.Text), "Otherwise") && next.Term == ':' {
			p.pos++
			b2, err := p.requireBlock(s.Indent, next)
			if err != nil {
				return nil, err
			}
			ifs.Else = b2
		}
		break
	}
	return ifs, nil
}

func whileStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	cond, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	body, err := p.requireBlock(s.Indent, s)
	if err != nil {
		return nil, err
	}
	return &While{P: s.Pos, Cond: cond, Body: body}, nil
}

func repeatStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	count, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	body, err := p.requireBlock(s.Indent, s)
	if err != nil {
		return nil, err
	}
	return &Repeat{P: s.Pos, Count: count, Body: body}, nil
}

func forEachStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	iter, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	body, err := p.requireBlock(s.Indent, s)
	if err != nil {
		return nil, err
	}
	return &ForEach{P: s.Pos, Var: m[1], Iter: iter, Body: body}, nil
}

func breakStmt(p *parser, s lex.Sentence, m []string) (Stmt, error)    { return &Break{P: s.Pos}, nil }
func continueStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) { return &Continue{P: s.Pos}, nil }

func parseParamList(text string) []string {
	parts := splitTopLevel(text, ",")
	var out []string
	for _, part := range parts {
		for _, w := range splitArgs(part) {
			w = strings.TrimSpace(w)
			if w != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

func functionDefStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	params := parseParamList(m[2])
	body, err := p.requireBlock(s.Indent, s)
	if err != nil {
		return nil, err
	}
	return &FunctionDef{P: s.Pos, Name: m[1], Params: params, Body: body}, nil
}

func functionDefNoParamsStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	body, err := p.requireBlock(s.Indent, s)
	if err != nil {
		return nil, err
	}
	return &FunctionDef{P: s.Pos, Name: m[1], Body: body}, nil
}

func parseExprList(text string) ([]Expr, error) {
	var out []Expr
	for _, w := range splitArgs(text) {
		e, err := ParseExpr(w, source.Pos{})
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func callWithResultStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	args, err := parseExprList(m[2])
	if err != nil {
		return nil, err
	}
	return &CallStmt{P: s.Pos, Name: m[1], Args: args, Result: m[3]}, nil
}

func callStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	args, err := parseExprList(m[2])
	if err != nil {
		return nil, err
	}
	return &CallStmt{P: s.Pos, Name: m[1], Args: args}, nil
}

func callNoArgsWithResultStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &CallStmt{P: s.Pos, Name: m[1], Result: m[2]}, nil
}

func callNoArgsStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &CallStmt{P: s.Pos, Name: m[1]}, nil
}

func returnValueStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	e, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	return &Return{P: s.Pos, Value: e}, nil
}

func returnBareStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	return &Return{P: s.Pos}, nil
}

func readFileStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	path, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	return &ReadFile{P: s.Pos, Path: path, Target: m[2]}, nil
}

func writeFileStmt(p *parser, s lex.Sentence, m []string) (Stmt, error) {
	val, err := parseExprAt(m[1], s.Pos)
	if err != nil {
		return nil, err
	}
	path, err := parseExprAt(m[2], s.Pos)
	if err != nil {
		return nil, err
	}
	return &WriteFile{P: s.Pos, Value: val, Path: path}, nil
}
