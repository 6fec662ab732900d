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

// Package parse implements spec.md §4.3: an ordered pattern table that
// lifts sentence tokens into statement AST nodes, plus a recursive-
// descent precedence-climbing expression parser.
//
// The AST node shapes follow the teacher's expr package: one concrete
// struct per variant implementing a shared Visitor/Equals contract,
// rather than a single tagged struct.
package parse

import (
	"strconv"
	"strings"

	"github.com/poojapathak0/vyra/source"
)

// Visitor mirrors expr.Visitor: Visit is called for every node
// encountered by Walk, and traversal proceeds into children only if
// the returned Visitor is non-nil.
type Visitor interface {
	Visit(Expr) Visitor
}

// Expr is any expression AST node (spec.md §3 "Expression AST").
type Expr interface {
	walk(v Visitor)
	Equals(x Expr) bool
	Pos() source.Pos
}

// Stmt is any statement AST node (spec.md §3 "Statement AST").
type Stmt interface {
	Pos() source.Pos
}

// Walk traverses an expression tree in depth-first order, exactly as
// expr.Walk does for the teacher's query trees.
func Walk(v Visitor, e Expr) {
	if e == nil {
		return
	}
	w := v.Visit(e)
	if w != nil {
		e.walk(w)
		w.Visit(nil)
	}
}

// --- expressions ---

// BinOp enumerates spec.md §3's binary operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpConcat // "followed by"
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpConcat:
		return "followed by"
	default:
		return "?"
	}
}

// UnOp enumerates unary operators.
type UnOp int

const (
	OpNot UnOp = iota
	OpNeg
)

// Literal is a constant integer, float, boolean, string, or absent
// value folded directly into the AST at parse time.
type Literal struct {
	P     source.Pos
	Kind  LiteralKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitAbsent
)

func (l *Literal) Pos() source.Pos { return l.P }
func (l *Literal) walk(Visitor)    {}
func (l *Literal) Equals(x Expr) bool {
	o, ok := x.(*Literal)
	return ok && o.Kind == l.Kind && o.Int == l.Int && o.Float == l.Float && o.Bool == l.Bool && o.Str == l.Str
}

// Ident is a bare identifier reference.
type Ident struct {
	P    source.Pos
	Name string
}

func (i *Ident) Pos() source.Pos { return i.P }
func (i *Ident) walk(Visitor)    {}
func (i *Ident) Equals(x Expr) bool {
	o, ok := x.(*Ident)
	return ok && o.Name == i.Name
}

// Binary is a binary operator expression.
type Binary struct {
	P     source.Pos
	Op    BinOp
	X, Y  Expr
}

func (b *Binary) Pos() source.Pos { return b.P }
func (b *Binary) walk(v Visitor) {
	Walk(v, b.X)
	Walk(v, b.Y)
}
func (b *Binary) Equals(x Expr) bool {
	o, ok := x.(*Binary)
	return ok && o.Op == b.Op && b.X.Equals(o.X) && b.Y.Equals(o.Y)
}

// Unary is a unary operator expression.
type Unary struct {
	P    source.Pos
	Op   UnOp
	X    Expr
}

func (u *Unary) Pos() source.Pos { return u.P }
func (u *Unary) walk(v Visitor)  { Walk(v, u.X) }
func (u *Unary) Equals(x Expr) bool {
	o, ok := x.(*Unary)
	return ok && o.Op == u.Op && u.X.Equals(o.X)
}

// ListLit is a list literal `[e1, e2, ...]`.
type ListLit struct {
	P     source.Pos
	Items []Expr
}

func (l *ListLit) Pos() source.Pos { return l.P }
func (l *ListLit) walk(v Visitor) {
	for _, it := range l.Items {
		Walk(v, it)
	}
}
func (l *ListLit) Equals(x Expr) bool {
	o, ok := x.(*ListLit)
	if !ok || len(o.Items) != len(l.Items) {
		return false
	}
	for i := range l.Items {
		if !l.Items[i].Equals(o.Items[i]) {
			return false
		}
	}
	return true
}

// Call is a function call in expression position.
type Call struct {
	P    source.Pos
	Name string
	Args []Expr
}

func (c *Call) Pos() source.Pos { return c.P }
func (c *Call) walk(v Visitor) {
	for _, a := range c.Args {
		Walk(v, a)
	}
}
func (c *Call) Equals(x Expr) bool {
	o, ok := x.(*Call)
	if !ok || o.Name != c.Name || len(o.Args) != len(c.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// Index is `seq[i]`.
type Index struct {
	P        source.Pos
	Seq, Idx Expr
}

func (ix *Index) Pos() source.Pos { return ix.P }
func (ix *Index) walk(v Visitor) {
	Walk(v, ix.Seq)
	Walk(v, ix.Idx)
}
func (ix *Index) Equals(x Expr) bool {
	o, ok := x.(*Index)
	return ok && ix.Seq.Equals(o.Seq) && ix.Idx.Equals(o.Idx)
}

// --- statements ---

type Assign struct {
	P      source.Pos
	Target string
	Value  Expr
}

func (s *Assign) Pos() source.Pos { return s.P }

type Display struct {
	P     source.Pos
	Value Expr
}

func (s *Display) Pos() source.Pos { return s.P }

// AskKind distinguishes the two Ask variants.
type AskKind int

const (
	AskText AskKind = iota
	AskNumber
)

type Ask struct {
	P      source.Pos
	Target string
	Kind   AskKind
	Prompt string
}

func (s *Ask) Pos() source.Pos { return s.P }

type ElifClause struct {
	Cond Expr
	Body []Stmt
}

type If struct {
	P     source.Pos
	Cond  Expr
	Then  []Stmt
	Elifs []ElifClause
	Else  []Stmt
}

func (s *If) Pos() source.Pos { return s.P }

type While struct {
	P    source.Pos
	Cond Expr
	Body []Stmt
}

func (s *While) Pos() source.Pos { return s.P }

type Repeat struct {
	P     source.Pos
	Count Expr
	Body  []Stmt
}

func (s *Repeat) Pos() source.Pos { return s.P }

type ForEach struct {
	P    source.Pos
	Var  string
	Iter Expr
	Body []Stmt
}

func (s *ForEach) Pos() source.Pos { return s.P }

type Break struct{ P source.Pos }

func (s *Break) Pos() source.Pos { return s.P }

type Continue struct{ P source.Pos }

func (s *Continue) Pos() source.Pos { return s.P }

type FunctionDef struct {
	P      source.Pos
	Name   string
	Params []string
	Body   []Stmt
}

func (s *FunctionDef) Pos() source.Pos { return s.P }

type CallStmt struct {
	P      source.Pos
	Name   string
	Args   []Expr
	Result string // "" if the call's result is discarded
}

func (s *CallStmt) Pos() source.Pos { return s.P }

type Return struct {
	P     source.Pos
	Value Expr // nil if bare "Return."
}

func (s *Return) Pos() source.Pos { return s.P }

type ListAppend struct {
	P      source.Pos
	Target string
	Value  Expr
}

func (s *ListAppend) Pos() source.Pos { return s.P }

type ReadFile struct {
	P      source.Pos
	Path   Expr
	Target string
}

func (s *ReadFile) Pos() source.Pos { return s.P }

type WriteFile struct {
	P     source.Pos
	Value Expr
	Path  Expr
}

func (s *WriteFile) Pos() source.Pos { return s.P }

// ToString renders e back to a canonical-form fragment, used by
// round-trip tests (spec.md §8 invariant 5), the --viz graph dump and
// graph.Dedup's node fingerprints.
func ToString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		switch n.Kind {
		case LitInt:
			b.WriteString(strconv.FormatInt(n.Int, 10))
		case LitFloat:
			b.WriteString(strconv.FormatFloat(n.Float, 'g', -1, 64))
		case LitBool:
			if n.Bool {
				b.WriteString("true")
			} else {
				b.WriteString("false")
			}
		case LitString:
			b.WriteByte('"')
			b.WriteString(n.Str)
			b.WriteByte('"')
		case LitAbsent:
			b.WriteString("none")
		}
	case *Ident:
		b.WriteString(n.Name)
	case *Binary:
		b.WriteByte('(')
		writeExpr(b, n.X)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		writeExpr(b, n.Y)
		b.WriteByte(')')
	case *Unary:
		if n.Op == OpNot {
			b.WriteString("not ")
		} else {
			b.WriteString("-")
		}
		writeExpr(b, n.X)
	case *ListLit:
		b.WriteByte('[')
		for i, it := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, it)
		}
		b.WriteByte(']')
	case *Call:
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *Index:
		writeExpr(b, n.Seq)
		b.WriteByte('[')
		writeExpr(b, n.Idx)
		b.WriteByte(']')
	}
}
