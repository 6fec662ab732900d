// Package value implements the runtime value representation for Vyra
// programs: a small tagged union with reference-shared sequences.
//
// The design follows the teacher's ion.Datum: a single concrete type
// with a kind tag plus typed accessors that report success via a
// second bool return, rather than an interface with one implementation
// per variant. That keeps every opcode in package interp free of type
// switches over value implementations.
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the runtime value of an expression.
//
// Sequences are reference-shared: cloning a Value that holds a list
// copies the header only, not the backing slice, so mutating a list
// through one variable is visible through every other variable bound
// to the same list (spec: "Lifecycle").
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list *[]Value
}

// Absent is the singular "none" value.
var Absent = Value{kind: KindAbsent}

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }

// List constructs a new sequence value owning its own backing slice.
func List(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: &cp}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Number returns v as a float64 if v is an integer or a float.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Items returns the backing slice of a list value. The returned slice
// aliases the Value's storage; callers that want to mutate it in place
// (ListAppend) should do so through Append, not by writing to this
// slice directly.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return *v.list, true
}

// Append mutates v's backing slice in place and returns v unchanged;
// every other Value sharing the same list observes the new element,
// matching the language's reference-shared sequence semantics.
func (v Value) Append(item Value) (Value, bool) {
	if v.kind != KindList {
		return v, false
	}
	*v.list = append(*v.list, item)
	return v, true
}

// Index returns the element at position i, or ok=false if v is not a
// list or i is out of range.
func (v Value) Index(i int64) (Value, bool) {
	items, ok := v.Items()
	if !ok || i < 0 || i >= int64(len(items)) {
		return Value{}, false
	}
	return items[i], true
}

// Len reports the length of a string or list value.
func (v Value) Len() (int, bool) {
	switch v.kind {
	case KindString:
		return len([]rune(v.s)), true
	case KindList:
		return len(*v.list), true
	default:
		return 0, false
	}
}

// Truthy implements spec.md §3's truthiness rules.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindAbsent:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindList:
		return len(*v.list) > 0
	default:
		return false
	}
}

// Equal implements structural equality with integer/float coercion.
func Equal(a, b Value) bool {
	if a.kind == KindInt && b.kind == KindFloat {
		return float64(a.i) == b.f
	}
	if a.kind == KindFloat && b.kind == KindInt {
		return a.f == float64(b.i)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAbsent:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindList:
		ai, bi := *a.list, *b.list
		if len(ai) != len(bi) {
			return false
		}
		for i := range ai {
			if !Equal(ai[i], bi[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Stringify implements spec.md §6's stringification rules, used by
// Display and the `followed by` concatenation operator. quoteStrings
// controls whether string elements are wrapped in quotes, which is
// true for elements nested inside a sequence and false at top level.
func (v Value) Stringify(quoteStrings bool) string {
	switch v.kind {
	case KindAbsent:
		return "none"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		if quoteStrings {
			return strconv.Quote(v.s)
		}
		return v.s
	case KindList:
		items := *v.list
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.Stringify(true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// formatFloat renders a float with the shortest round-trip decimal
// that still carries at least one digit after the point, per
// spec.md §9's stringification note. strconv's 'g'-less shortest
// form (-1 precision, 'f') already round-trips; we only need to
// force a trailing ".0" for integral floats.
func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v Value) String() string { return v.Stringify(false) }

// TypeOf implements the `type_of` built-in.
func TypeOf(v Value) string { return v.Kind().String() }

// SortKey produces a comparable string that orders values by kind and
// then by quoted text, for deterministic ordering; it is not a value
// comparison.
func SortKey(v Value) string {
	return fmt.Sprintf("%d:%s", v.kind, v.Stringify(true))
}

// SortStrings sorts ss in place and returns it, giving a stable
// ordering of identifier sets collected from a map's keys.
func SortStrings(ss []string) []string {
	sort.Strings(ss)
	return ss
}
