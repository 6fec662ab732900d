package graph

import (
	"strings"
	"testing"
)

func TestGraphvizProducesValidDotFraming(t *testing.T) {
	prog := buildLines(t, "Set x to 1.", "Display x.")
	var buf strings.Builder
	if err := Graphviz(prog, &buf); err != nil {
		t.Fatalf("Graphviz: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph vyra {\n") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("unexpected dot framing: %q", out)
	}
	if !strings.Contains(out, "cluster_program") {
		t.Errorf("expected a program cluster, got %q", out)
	}
}

// TestGraphvizDoesNotHangOnLoop exercises the same cyclic-graph shape
// that broke Dedup, through a separately-guarded walk (gvWalk's own
// seen map), to confirm the dump path was never at risk from the same
// class of bug.
func TestGraphvizDoesNotHangOnLoop(t *testing.T) {
	prog := buildLines(t,
		"While x is less than 3:",
		"    Increment x.",
	)
	var buf strings.Builder
	if err := Graphviz(prog, &buf); err != nil {
		t.Fatalf("Graphviz: %v", err)
	}
	if !strings.Contains(buf.String(), "LOOP_HEAD") {
		t.Errorf("expected the loop head to appear in the dump, got %q", buf.String())
	}
}

func TestGraphvizIncludesFunctionClusters(t *testing.T) {
	prog := buildLines(t,
		"Define function add that takes a and b:",
		"    Return a + b.",
		"Display 1.",
	)
	var buf strings.Builder
	if err := Graphviz(prog, &buf); err != nil {
		t.Fatalf("Graphviz: %v", err)
	}
	if !strings.Contains(buf.String(), "cluster_func_add") {
		t.Errorf("expected a cluster for function add, got %q", buf.String())
	}
}
