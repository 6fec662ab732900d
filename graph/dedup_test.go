package graph

import (
	"testing"
)

// TestDedupDoesNotHangOnLoop is a regression test for an infinite
// recursion: dedupWalk originally had no in-progress marker, so a
// loop's back-edge (the body's last node pointing to its own head)
// caused it to re-enter a node still mid-computation and recurse
// forever. Every While/Repeat/ForEach program hit this. Completing
// at all is the assertion; a hang here means the test runner times out.
func TestDedupDoesNotHangOnLoop(t *testing.T) {
	prog := buildLines(t,
		"While x is less than 3:",
		"    Increment x.",
	)
	Dedup(prog)
	head := prog.Entry.Next
	if head.Op != OpLoopHead {
		t.Fatalf("expected LoopHead to survive Dedup, got %v", head.Op)
	}
}

func TestDedupDoesNotHangOnNestedForEach(t *testing.T) {
	prog := buildLines(t,
		"For each x in outer:",
		"    For each y in inner:",
		"        Display y.",
	)
	Dedup(prog)
	if prog.Entry.Next.Op != OpForStep {
		t.Fatalf("expected outer ForStep to survive Dedup, got %v", prog.Entry.Next.Op)
	}
}

func TestDedupMergesIdenticalLinearSubgraphs(t *testing.T) {
	prog := buildLines(t,
		"If x is 1:",
		"    Display 1.",
		"    Display 2.",
		"Otherwise:",
		"    Display 1.",
		"    Display 2.",
	)
	Dedup(prog)
	branch := prog.Entry.Next
	if branch.Then != branch.Else {
		t.Errorf("expected identical Then/Else bodies to be merged to one node, got distinct %p and %p", branch.Then, branch.Else)
	}
}

func TestDedupPreservesDistinctBodies(t *testing.T) {
	prog := buildLines(t,
		"If x is 1:",
		"    Display 1.",
		"Otherwise:",
		"    Display 2.",
	)
	Dedup(prog)
	branch := prog.Entry.Next
	if branch.Then == branch.Else {
		t.Errorf("expected differing Then/Else bodies to remain distinct nodes")
	}
}
