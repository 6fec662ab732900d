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

package interp

import (
	"math"
	"strings"

	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/value"
)

func (ip *Interp) eval(e parse.Expr, fr *frame) (value.Value, error) {
	switch n := e.(type) {
	case *parse.Literal:
		return literalValue(n), nil

	case *parse.Ident:
		return ip.getVar(fr, n.Name, n.P)

	case *parse.Unary:
		x, err := ip.eval(n.X, fr)
		if err != nil {
			return value.Value{}, err
		}
		switch n.Op {
		case parse.OpNot:
			return value.Bool(!x.Truthy()), nil
		case parse.OpNeg:
			if i, ok := x.Int(); ok {
				return value.Int(-i), nil
			}
			if f, ok := x.Float(); ok {
				return value.Float(-f), nil
			}
			return value.Value{}, typeErr(n.P, "cannot negate a %s", x.Kind())
		}
		return value.Value{}, typeErr(n.P, "unknown unary operator")

	case *parse.Binary:
		return ip.evalBinary(n, fr)

	case *parse.ListLit:
		items := make([]value.Value, len(n.Items))
		for i, it := range n.Items {
			v, err := ip.eval(it, fr)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.List(items), nil

	case *parse.Index:
		seq, err := ip.eval(n.Seq, fr)
		if err != nil {
			return value.Value{}, err
		}
		idx, err := ip.eval(n.Idx, fr)
		if err != nil {
			return value.Value{}, err
		}
		i, ok := idx.Int()
		if !ok {
			return value.Value{}, typeErr(n.P, "index must be an integer")
		}
		if s, ok := seq.Str(); ok {
			runes := []rune(s)
			if i < 0 || i >= int64(len(runes)) {
				return value.Value{}, indexErr(n.P, i)
			}
			return value.String(string(runes[i])), nil
		}
		v, ok := seq.Index(i)
		if !ok {
			if seq.Kind() != value.KindList {
				return value.Value{}, typeErr(n.P, "cannot index a %s", seq.Kind())
			}
			return value.Value{}, indexErr(n.P, i)
		}
		return v, nil

	case *parse.Call:
		return ip.call(n.Name, n.Args, fr, n.P)

	default:
		return value.Value{}, typeErr(e.Pos(), "unhandled expression type %T", e)
	}
}

func literalValue(n *parse.Literal) value.Value {
	switch n.Kind {
	case parse.LitInt:
		return value.Int(n.Int)
	case parse.LitFloat:
		return value.Float(n.Float)
	case parse.LitBool:
		return value.Bool(n.Bool)
	case parse.LitString:
		return value.String(n.Str)
	default:
		return value.Absent
	}
}

func (ip *Interp) evalBinary(n *parse.Binary, fr *frame) (value.Value, error) {
	// "and"/"or" short-circuit, so X is only evaluated once and Y is
	// skipped when the result is already determined.
	if n.Op == parse.OpAnd || n.Op == parse.OpOr {
		x, err := ip.eval(n.X, fr)
		if err != nil {
			return value.Value{}, err
		}
		if n.Op == parse.OpAnd && !x.Truthy() {
			return x, nil
		}
		if n.Op == parse.OpOr && x.Truthy() {
			return x, nil
		}
		return ip.eval(n.Y, fr)
	}

	x, err := ip.eval(n.X, fr)
	if err != nil {
		return value.Value{}, err
	}
	y, err := ip.eval(n.Y, fr)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case parse.OpEq:
		return value.Bool(value.Equal(x, y)), nil
	case parse.OpNeq:
		return value.Bool(!value.Equal(x, y)), nil
	case parse.OpConcat:
		return value.String(x.Stringify(false) + y.Stringify(false)), nil
	}

	if n.Op == parse.OpAdd {
		if xs, ok := x.Str(); ok {
			if ys, ok := y.Str(); ok {
				return value.String(xs + ys), nil
			}
		}
	}

	switch n.Op {
	case parse.OpLt, parse.OpLte, parse.OpGt, parse.OpGte:
		return ip.evalCompare(n.Op, x, y, n.P)
	}

	return ip.evalArith(n.Op, x, y, n.P)
}

func (ip *Interp) evalCompare(op parse.BinOp, x, y value.Value, pos source.Pos) (value.Value, error) {
	if xs, ok := x.Str(); ok {
		if ys, ok := y.Str(); ok {
			c := strings.Compare(xs, ys)
			switch op {
			case parse.OpLt:
				return value.Bool(c < 0), nil
			case parse.OpLte:
				return value.Bool(c <= 0), nil
			case parse.OpGt:
				return value.Bool(c > 0), nil
			case parse.OpGte:
				return value.Bool(c >= 0), nil
			}
		}
	}
	xf, ok := x.Number()
	if !ok {
		return value.Value{}, typeErr(pos, "cannot compare a %s", x.Kind())
	}
	yf, ok := y.Number()
	if !ok {
		return value.Value{}, typeErr(pos, "cannot compare a %s", y.Kind())
	}
	switch op {
	case parse.OpLt:
		return value.Bool(xf < yf), nil
	case parse.OpLte:
		return value.Bool(xf <= yf), nil
	case parse.OpGt:
		return value.Bool(xf > yf), nil
	case parse.OpGte:
		return value.Bool(xf >= yf), nil
	default:
		return value.Value{}, typeErr(pos, "unknown comparison operator")
	}
}

// evalArith implements +,-,*,/,%,** with integer results for two
// integer operands and float results as soon as either operand is a
// float, per spec.md §3's numeric-promotion rule. Two exceptions with
// integer operands: '/' yields a float when the division is not exact,
// and '**' yields a float for a negative exponent.
func (ip *Interp) evalArith(op parse.BinOp, x, y value.Value, pos source.Pos) (value.Value, error) {
	xi, xIsInt := x.Int()
	yi, yIsInt := y.Int()
	if xIsInt && yIsInt {
		switch op {
		case parse.OpAdd:
			return value.Int(xi + yi), nil
		case parse.OpSub:
			return value.Int(xi - yi), nil
		case parse.OpMul:
			return value.Int(xi * yi), nil
		case parse.OpDiv:
			if yi == 0 {
				return value.Value{}, divByZeroErr(pos)
			}
			if xi%yi == 0 {
				return value.Int(xi / yi), nil
			}
			return value.Float(float64(xi) / float64(yi)), nil
		case parse.OpMod:
			if yi == 0 {
				return value.Value{}, divByZeroErr(pos)
			}
			return value.Int(xi % yi), nil
		case parse.OpPow:
			if yi < 0 {
				return value.Float(math.Pow(float64(xi), float64(yi))), nil
			}
			return value.Int(intPow(xi, yi)), nil
		}
	}

	xf, xOK := x.Number()
	yf, yOK := y.Number()
	if !xOK {
		return value.Value{}, typeErr(pos, "cannot use a %s in arithmetic", x.Kind())
	}
	if !yOK {
		return value.Value{}, typeErr(pos, "cannot use a %s in arithmetic", y.Kind())
	}
	switch op {
	case parse.OpAdd:
		return value.Float(xf + yf), nil
	case parse.OpSub:
		return value.Float(xf - yf), nil
	case parse.OpMul:
		return value.Float(xf * yf), nil
	case parse.OpDiv:
		if yf == 0 {
			return value.Value{}, divByZeroErr(pos)
		}
		return value.Float(xf / yf), nil
	case parse.OpMod:
		if yf == 0 {
			return value.Value{}, divByZeroErr(pos)
		}
		return value.Float(math.Mod(xf, yf)), nil
	case parse.OpPow:
		return value.Float(math.Pow(xf, yf)), nil
	default:
		return value.Value{}, typeErr(pos, "unknown arithmetic operator")
	}
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}
