package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"absent", Absent, false},
		{"zero int", Int(0), false},
		{"nonzero int", Int(-3), true},
		{"zero float", Float(0), false},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"empty list", List(nil), false},
		{"nonempty list", List([]Value{Int(1)}), true},
		{"false bool", Bool(false), false},
		{"true bool", Bool(true), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Truthy(); got != c.want {
				t.Errorf("Truthy() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEqualCoercesIntFloat(t *testing.T) {
	if !Equal(Int(3), Float(3.0)) {
		t.Error("Int(3) should equal Float(3.0)")
	}
	if Equal(Int(3), Float(3.5)) {
		t.Error("Int(3) should not equal Float(3.5)")
	}
	if Equal(Int(1), String("1")) {
		t.Error("Int(1) should not equal String(\"1\")")
	}
}

func TestEqualLists(t *testing.T) {
	a := List([]Value{Int(1), String("x")})
	b := List([]Value{Int(1), String("x")})
	c := List([]Value{Int(1), String("y")})
	if !Equal(a, b) {
		t.Error("equal-content lists should be Equal")
	}
	if Equal(a, c) {
		t.Error("differing-content lists should not be Equal")
	}
}

func TestListReferenceSharing(t *testing.T) {
	l := List([]Value{Int(1)})
	alias := l
	alias.Append(Int(2))
	items, _ := l.Items()
	if len(items) != 2 {
		t.Fatalf("expected original to observe append through alias, got %d items", len(items))
	}
}

func TestListConstructorCopies(t *testing.T) {
	backing := []Value{Int(1)}
	l := List(backing)
	backing[0] = Int(99)
	items, _ := l.Items()
	if v, _ := items[0].Int(); v != 1 {
		t.Errorf("List() should copy its input slice, got %d", v)
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Absent, "none"},
		{Bool(true), "true"},
		{Int(42), "42"},
		{Float(1.5), "1.5"},
		{Float(2.0), "2.0"},
		{String("hi"), "hi"},
		{List([]Value{Int(1), String("a")}), `[1, "a"]`},
	}
	for _, c := range cases {
		if got := c.v.Stringify(false); got != c.want {
			t.Errorf("Stringify(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	l := List([]Value{Int(1), Int(2)})
	if _, ok := l.Index(5); ok {
		t.Error("expected out-of-range Index to fail")
	}
	if _, ok := l.Index(-1); ok {
		t.Error("expected negative Index to fail")
	}
}

func TestLenStringCountsRunes(t *testing.T) {
	s := String("héllo")
	n, ok := s.Len()
	if !ok || n != 5 {
		t.Errorf("Len() = %d, %v, want 5, true", n, ok)
	}
}

func TestNumberCoercion(t *testing.T) {
	if f, ok := Int(7).Number(); !ok || f != 7 {
		t.Errorf("Int(7).Number() = %v, %v", f, ok)
	}
	if _, ok := String("7").Number(); ok {
		t.Error("String should not coerce to Number")
	}
}
