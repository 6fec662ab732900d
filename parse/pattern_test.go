package parse

import (
	"testing"

	"github.com/poojapathak0/vyra/lex"
	"github.com/poojapathak0/vyra/source"
)

func parseLines(t *testing.T, lines ...string) []Stmt {
	t.Helper()
	u := &source.Unit{Lines: lines, Origin: make([]source.Pos, len(lines))}
	for i := range lines {
		u.Origin[i] = source.Pos{File: "t.vyra", Line: i + 1}
	}
	sents, err := lex.Split(u)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	stmts, err := Parse(sents)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return stmts
}

func TestParseAssignForms(t *testing.T) {
	stmts := parseLines(t, "Set x to 1.", "Store y as 2.", "Create a variable called z with value 3.")
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	for i, want := range []string{"x", "y", "z"} {
		a, ok := stmts[i].(*Assign)
		if !ok || a.Target != want {
			t.Errorf("statement %d = %#v, want Assign to %q", i, stmts[i], want)
		}
	}
}

func TestParseAddDisambiguation(t *testing.T) {
	stmts := parseLines(t,
		"Create an empty list called items.",
		"Add 5 to items.",
		"Set total to 0.",
		"Add 5 to total.",
	)
	if _, ok := stmts[1].(*ListAppend); !ok {
		t.Errorf("Add to a declared list should be ListAppend, got %#v", stmts[1])
	}
	if _, ok := stmts[3].(*Assign); !ok {
		t.Errorf("Add to a non-list should be arithmetic Assign, got %#v", stmts[3])
	}
}

// TestParseDivideByAndStoreInTarget is a regression test: the in-place
// "Divide X by Y" pattern's greedy divisor used to swallow a trailing
// "and store in Z" clause, producing an unparseable expression instead
// of routing to a separate target-assigning form.
func TestParseDivideByAndStoreInTarget(t *testing.T) {
	stmts := parseLines(t, "Set x to 1.", "Divide x by 0 and store in y.")
	a, ok := stmts[1].(*Assign)
	if !ok || a.Target != "y" {
		t.Fatalf("expected an Assign to y, got %#v", stmts[1])
	}
	b, ok := a.Value.(*Binary)
	if !ok || b.Op != OpDiv {
		t.Fatalf("expected a Div binary, got %#v", a.Value)
	}
	if x, ok := b.X.(*Ident); !ok || x.Name != "x" {
		t.Errorf("expected the dividend to reference x, got %#v", b.X)
	}
}

func TestParseMultiplyByAndStoreTheResultInTarget(t *testing.T) {
	stmts := parseLines(t, "Set x to 2.", "Multiply x by 3 and store the result in y.")
	a, ok := stmts[1].(*Assign)
	if !ok || a.Target != "y" {
		t.Fatalf("expected an Assign to y, got %#v", stmts[1])
	}
	if b, ok := a.Value.(*Binary); !ok || b.Op != OpMul {
		t.Fatalf("expected a Mul binary, got %#v", a.Value)
	}
}

func TestParseDivideInPlaceStillWorks(t *testing.T) {
	stmts := parseLines(t, "Set x to 10.", "Divide x by 2.")
	a, ok := stmts[1].(*Assign)
	if !ok || a.Target != "x" {
		t.Fatalf("expected an in-place Assign to x, got %#v", stmts[1])
	}
	if b, ok := a.Value.(*Binary); !ok || b.Op != OpDiv {
		t.Fatalf("expected a Div binary, got %#v", a.Value)
	}
}

func TestParseListLiteralAssign(t *testing.T) {
	stmts := parseLines(t, "Create a list called nums with values [1, 2, 3].")
	a, ok := stmts[0].(*Assign)
	if !ok {
		t.Fatalf("expected Assign, got %#v", stmts[0])
	}
	l, ok := a.Value.(*ListLit)
	if !ok || len(l.Items) != 3 {
		t.Fatalf("expected a 3-element ListLit, got %#v", a.Value)
	}
}

func TestParseIncrementDecrement(t *testing.T) {
	stmts := parseLines(t, "Increment x.", "Decrement x.")
	inc := stmts[0].(*Assign)
	if b, ok := inc.Value.(*Binary); !ok || b.Op != OpAdd {
		t.Errorf("Increment should desugar to x + 1, got %#v", inc.Value)
	}
	dec := stmts[1].(*Assign)
	if b, ok := dec.Value.(*Binary); !ok || b.Op != OpSub {
		t.Errorf("Decrement should desugar to x - 1, got %#v", dec.Value)
	}
}

func TestParseBlockIf(t *testing.T) {
	stmts := parseLines(t,
		"If x is greater than 1:",
		"    Display x.",
		"Otherwise if x is 1:",
		"    Display 1.",
		"Otherwise:",
		"    Display 0.",
	)
	ifs, ok := stmts[0].(*If)
	if !ok {
		t.Fatalf("expected If, got %#v", stmts[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Elifs) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("expected Then/Elifs/Else each length 1, got %+v", ifs)
	}
}

func TestParseInlineIfWithOtherwise(t *testing.T) {
	stmts := parseLines(t, "If x is greater than 1, Display x. Otherwise Display 0.")
	ifs, ok := stmts[0].(*If)
	if !ok {
		t.Fatalf("expected If, got %#v", stmts[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("expected inline If/Otherwise to populate Then and Else, got %+v", ifs)
	}
}

func TestParseWhileRepeatForEach(t *testing.T) {
	stmts := parseLines(t,
		"While x is less than 10:",
		"    Increment x.",
		"Repeat 3 times:",
		"    Display 1.",
		"For each item in items:",
		"    Display item.",
	)
	if _, ok := stmts[0].(*While); !ok {
		t.Errorf("expected While, got %#v", stmts[0])
	}
	if _, ok := stmts[1].(*Repeat); !ok {
		t.Errorf("expected Repeat, got %#v", stmts[1])
	}
	fe, ok := stmts[2].(*ForEach)
	if !ok || fe.Var != "item" {
		t.Errorf("expected ForEach over item, got %#v", stmts[2])
	}
}

func TestParseFunctionDefAndCall(t *testing.T) {
	stmts := parseLines(t,
		"Define function add that takes a and b:",
		"    Return a + b.",
		"Call add with 1 and 2 and store in total.",
	)
	fn, ok := stmts[0].(*FunctionDef)
	if !ok || fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("expected a 2-param FunctionDef, got %#v", stmts[0])
	}
	call, ok := stmts[1].(*CallStmt)
	if !ok || call.Name != "add" || len(call.Args) != 2 || call.Result != "total" {
		t.Fatalf("expected a CallStmt with result, got %#v", stmts[1])
	}
}

func TestParseBreakContinue(t *testing.T) {
	stmts := parseLines(t,
		"While true:",
		"    Stop the loop.",
		"    Continue to next iteration.",
	)
	w := stmts[0].(*While)
	if _, ok := w.Body[0].(*Break); !ok {
		t.Errorf("expected Break, got %#v", w.Body[0])
	}
	if _, ok := w.Body[1].(*Continue); !ok {
		t.Errorf("expected Continue, got %#v", w.Body[1])
	}
}

func TestParseReadWriteFile(t *testing.T) {
	stmts := parseLines(t,
		`Read file "in.txt" into contents.`,
		`Write contents to file "out.txt".`,
	)
	rf, ok := stmts[0].(*ReadFile)
	if !ok || rf.Target != "contents" {
		t.Fatalf("expected ReadFile into contents, got %#v", stmts[0])
	}
	if _, ok := stmts[1].(*WriteFile); !ok {
		t.Fatalf("expected WriteFile, got %#v", stmts[1])
	}
}

func TestParseUnknownSentenceErrors(t *testing.T) {
	u := &source.Unit{Lines: []string{"Frobnicate the quux."}, Origin: []source.Pos{{File: "t", Line: 1}}}
	sents, err := lex.Split(u)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	_, err = Parse(sents)
	if _, ok := err.(*UnknownSentenceError); !ok {
		t.Errorf("got %T (%v), want *UnknownSentenceError", err, err)
	}
}

func TestParseMissingBlockErrors(t *testing.T) {
	u := &source.Unit{Lines: []string{"If true:", "Display 1."}, Origin: []source.Pos{{File: "t", Line: 1}, {File: "t", Line: 2}}}
	sents, err := lex.Split(u)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	_, err = Parse(sents)
	if _, ok := err.(*UnbalancedBlocksError); !ok {
		t.Errorf("got %T (%v), want *UnbalancedBlocksError", err, err)
	}
}
