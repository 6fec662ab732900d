package graph

import (
	"testing"

	"github.com/poojapathak0/vyra/lex"
	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/source"
)

func buildLines(t *testing.T, lines ...string) *Program {
	t.Helper()
	u := &source.Unit{Lines: lines, Origin: make([]source.Pos, len(lines))}
	for i := range lines {
		u.Origin[i] = source.Pos{File: "t.vyra", Line: i + 1}
	}
	sents, err := lex.Split(u)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	stmts, err := parse.Parse(sents)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prog, err := Build(stmts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return prog
}

// walkChain follows Next-only edges from n, collecting Ops, stopping at
// nil or after a generous bound (this is also an implicit regression
// guard: a program whose statement chain got silently discarded would
// produce a suspiciously short walk).
func walkChain(n *Node, limit int) []Op {
	var ops []Op
	for n != nil && limit > 0 {
		ops = append(ops, n.Op)
		n = n.Next
		limit--
	}
	return ops
}

func TestBuildSimpleChain(t *testing.T) {
	prog := buildLines(t, "Set x to 1.", "Display x.")
	if prog.Entry.Op != OpEntry {
		t.Fatalf("Entry.Op = %v, want OpEntry", prog.Entry.Op)
	}
	ops := walkChain(prog.Entry, 10)
	want := []Op{OpEntry, OpAssign, OpDisplay, OpHalt}
	if len(ops) != len(want) {
		t.Fatalf("got ops %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i], want[i])
		}
	}
}

// TestBuildTopLevelEndingInBreakKeepsPrecedingChain is a regression test
// for a bug where Build unconditionally overwrote entry.Next with halt
// whenever the last top-level statement's chain had a nil tail (true of
// any bare Break/Continue), discarding every statement before it.
func TestBuildTopLevelEndingInBreakKeepsPrecedingChain(t *testing.T) {
	prog := buildLines(t,
		"While true:",
		"    Display 1.",
		"    Stop the loop.",
	)
	ops := walkChain(prog.Entry, 10)
	if len(ops) == 0 || ops[0] != OpEntry || ops[1] != OpLoopHead {
		t.Fatalf("expected the While statement to survive as the program's first real op, got %v", ops)
	}
}

func TestBuildSingleStatementChainEndsInHalt(t *testing.T) {
	prog := buildLines(t,
		"Display 1.",
	)
	ops := walkChain(prog.Entry, 10)
	want := []Op{OpEntry, OpDisplay, OpHalt}
	if len(ops) != len(want) {
		t.Fatalf("got %v, want %v", ops, want)
	}
}

func TestBuildIfBranchesJoin(t *testing.T) {
	prog := buildLines(t,
		"If x is greater than 1:",
		"    Display 1.",
		"Otherwise:",
		"    Display 0.",
		"Display 2.",
	)
	branch := prog.Entry.Next
	if branch.Op != OpBranch {
		t.Fatalf("expected second node to be a Branch, got %v", branch.Op)
	}
	if branch.Then == nil || branch.Else == nil {
		t.Fatalf("expected both Then and Else to be wired, got %+v", branch)
	}
	if branch.Then.Next != branch.Else.Next {
		t.Errorf("expected Then and Else branches to rejoin at the same node")
	}
}

func TestBuildWhileLoopsBackToHead(t *testing.T) {
	prog := buildLines(t,
		"While x is less than 3:",
		"    Increment x.",
	)
	head := prog.Entry.Next
	if head.Op != OpLoopHead {
		t.Fatalf("expected LoopHead, got %v", head.Op)
	}
	n := head.Body
	for n != head && n != nil {
		n = n.Next
	}
	if n != head {
		t.Errorf("expected the loop body to eventually point back to its own head")
	}
}

func TestBuildFunctionRegistered(t *testing.T) {
	prog := buildLines(t,
		"Define function add that takes a and b:",
		"    Return a + b.",
	)
	fn, ok := prog.Functions["add"]
	if !ok {
		t.Fatalf("expected function %q to be registered", "add")
	}
	if len(fn.Params) != 2 || fn.Entry.Op != OpFuncEntry {
		t.Errorf("unexpected function shape: %+v", fn)
	}
}
