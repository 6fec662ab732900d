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
	"strconv"
	"strings"

	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/value"
)

type builtinFunc func(args []value.Value, pos source.Pos) (value.Value, error)

// builtins implements spec.md §4.5's built-in function table. Names
// are matched case-insensitively, the way the pattern-table statement
// keywords are.
var builtins = map[string]builtinFunc{
	"length":     builtinLength,
	"len":        builtinLength,
	"abs":        builtinAbs,
	"round":      builtinRound,
	"uppercase":  builtinUppercase,
	"lowercase":  builtinLowercase,
	"split":      builtinSplit,
	"join":       builtinJoin,
	"type_of":    builtinTypeOf,
	"to_number":  builtinToNumber,
	"to_string":  builtinToString,
}

func checkArity(name string, args []value.Value, want int, pos source.Pos) error {
	if len(args) != want {
		return arityErr(pos, name, want, len(args))
	}
	return nil
}

func builtinLength(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("length", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	n, ok := args[0].Len()
	if !ok {
		return value.Value{}, typeErr(pos, "length expects a string or list, got a %s", args[0].Kind())
	}
	return value.Int(int64(n)), nil
}

func builtinAbs(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("abs", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	if i, ok := args[0].Int(); ok {
		if i < 0 {
			i = -i
		}
		return value.Int(i), nil
	}
	if f, ok := args[0].Float(); ok {
		return value.Float(math.Abs(f)), nil
	}
	return value.Value{}, typeErr(pos, "abs expects a number, got a %s", args[0].Kind())
}

func builtinRound(args []value.Value, pos source.Pos) (value.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return value.Value{}, arityErr(pos, "round", 1, len(args))
	}
	f, ok := args[0].Number()
	if !ok {
		return value.Value{}, typeErr(pos, "round expects a number, got a %s", args[0].Kind())
	}
	digits := int64(0)
	if len(args) == 2 {
		d, ok := args[1].Int()
		if !ok {
			return value.Value{}, typeErr(pos, "round's second argument must be an integer")
		}
		digits = d
	}
	scale := math.Pow(10, float64(digits))
	r := math.Round(f*scale) / scale
	if digits <= 0 {
		return value.Int(int64(r)), nil
	}
	return value.Float(r), nil
}

func builtinUppercase(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("uppercase", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	s, ok := args[0].Str()
	if !ok {
		return value.Value{}, typeErr(pos, "uppercase expects a string, got a %s", args[0].Kind())
	}
	return value.String(strings.ToUpper(s)), nil
}

func builtinLowercase(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("lowercase", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	s, ok := args[0].Str()
	if !ok {
		return value.Value{}, typeErr(pos, "lowercase expects a string, got a %s", args[0].Kind())
	}
	return value.String(strings.ToLower(s)), nil
}

func builtinSplit(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("split", args, 2, pos); err != nil {
		return value.Value{}, err
	}
	s, ok := args[0].Str()
	if !ok {
		return value.Value{}, typeErr(pos, "split expects a string, got a %s", args[0].Kind())
	}
	sep, ok := args[1].Str()
	if !ok {
		return value.Value{}, typeErr(pos, "split's separator must be a string")
	}
	var parts []string
	if sep == "" {
		parts = strings.Fields(s)
	} else {
		parts = strings.Split(s, sep)
	}
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return value.List(out), nil
}

func builtinJoin(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("join", args, 2, pos); err != nil {
		return value.Value{}, err
	}
	items, ok := args[0].Items()
	if !ok {
		return value.Value{}, typeErr(pos, "join expects a list, got a %s", args[0].Kind())
	}
	sep, ok := args[1].Str()
	if !ok {
		return value.Value{}, typeErr(pos, "join's separator must be a string")
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Stringify(false)
	}
	return value.String(strings.Join(parts, sep)), nil
}

func builtinTypeOf(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("type_of", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	return value.String(value.TypeOf(args[0])), nil
}

func builtinToNumber(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("to_number", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	s, ok := args[0].Str()
	if !ok {
		if _, ok := args[0].Number(); ok {
			return args[0], nil
		}
		return value.Value{}, typeErr(pos, "to_number expects a string or number, got a %s", args[0].Kind())
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value.Value{}, typeErr(pos, "cannot convert %q to a number", s)
	}
	return value.Float(f), nil
}

func builtinToString(args []value.Value, pos source.Pos) (value.Value, error) {
	if err := checkArity("to_string", args, 1, pos); err != nil {
		return value.Value{}, err
	}
	return value.String(args[0].Stringify(false)), nil
}
