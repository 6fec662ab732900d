package interp

import (
	"strings"
	"testing"

	"github.com/poojapathak0/vyra/graph"
	"github.com/poojapathak0/vyra/lex"
	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/vyraerr"
)

// run executes program text end-to-end through the full pipeline
// (lex -> parse -> graph -> interp) and returns its stdout.
func run(t *testing.T, program string) (string, error) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(program, "\n"), "\n")
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
	prog, err := graph.Build(stmts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	graph.Dedup(prog)
	var out strings.Builder
	ip := New(prog, &out, strings.NewReader(""))
	err = ip.Run()
	return out.String(), err
}

func TestS1Hello(t *testing.T) {
	out, err := run(t, `Display "Hello, World!".`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Hello, World!\n" {
		t.Errorf("got %q, want %q", out, "Hello, World!\n")
	}
}

func TestS2ArithmeticWithAssign(t *testing.T) {
	out, err := run(t, `Set x to 5. Add 3 to x. Display x.`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "8\n" {
		t.Errorf("got %q, want %q", out, "8\n")
	}
}

func TestS3IfElseInline(t *testing.T) {
	out, err := run(t, `Set x to 7. If x is greater than 10, display "big". Otherwise display "small".`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "small\n" {
		t.Errorf("got %q, want %q", out, "small\n")
	}
}

func TestS4WhileCountdown(t *testing.T) {
	out, err := run(t, "Set i to 3.\nWhile i is greater than 0:\n    Display i.\n    Decrement i.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "3\n2\n1\n" {
		t.Errorf("got %q, want %q", out, "3\n2\n1\n")
	}
}

func TestS5FunctionCallWithReturn(t *testing.T) {
	out, err := run(t,
		"Create function add that takes a and b:\n"+
			"    Add a and b and store the result in s.\n"+
			"    Return s.\n"+
			"Call add with 4 and 5 and store in r.\n"+
			"Display r.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "9\n" {
		t.Errorf("got %q, want %q", out, "9\n")
	}
}

func TestS6ListAppendVsArithmeticDisambiguation(t *testing.T) {
	out, err := run(t,
		"Create a list called xs with values [1,2].\n"+
			"Add 3 to xs.\n"+
			"Set n to 10.\n"+
			"Add 5 to n.\n"+
			"Display xs.\n"+
			"Display n.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "[1, 2, 3]\n15\n" {
		t.Errorf("got %q, want %q", out, "[1, 2, 3]\n15\n")
	}
}

func TestS7DivisionByZero(t *testing.T) {
	_, err := run(t, "Set x to 1.\nDivide x by 0 and store in y.\n")
	if err == nil {
		t.Fatal("expected a DivisionByZero error")
	}
	kinded, ok := err.(vyraerr.Kinded)
	if !ok || kinded.ErrKind() != vyraerr.KindDivisionByZero {
		t.Errorf("got %v, want a DivisionByZero-kinded error", err)
	}
	if vyraerr.ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", vyraerr.ExitCode(err))
	}
}

func TestRepeatLoop(t *testing.T) {
	out, err := run(t, "Repeat 3 times:\n    Display \"hi\".\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hi\nhi\nhi\n" {
		t.Errorf("got %q, want 3 repetitions of hi", out)
	}
}

func TestRepeatContinueStillDecrementsCounter(t *testing.T) {
	// Regression for a prior bug where continue targeted the loop head
	// instead of the hidden counter's decrement, causing an infinite
	// loop whenever a Repeat body used Continue.
	out, err := run(t,
		"Set n to 0.\n"+
			"Repeat 3 times:\n"+
			"    Increment n.\n"+
			"    Continue to next iteration.\n"+
			"    Display \"unreachable\".\n"+
			"Display n.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "3\n" {
		t.Errorf("got %q, want \"3\\n\" (loop must terminate and skip the unreachable line)", out)
	}
}

func TestForEachOverString(t *testing.T) {
	out, err := run(t, `For each c in "ab":
    Display c.
`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "a\nb\n" {
		t.Errorf("got %q, want %q", out, "a\nb\n")
	}
}

func TestForEachOverList(t *testing.T) {
	out, err := run(t, "Create a list called xs with values [10, 20].\nFor each x in xs:\n    Display x.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "10\n20\n" {
		t.Errorf("got %q, want %q", out, "10\n20\n")
	}
}

func TestNestedForEachDoesNotShareCursor(t *testing.T) {
	out, err := run(t,
		"Create a list called outer with values [1, 2].\n"+
			"Create a list called inner with values [10, 20].\n"+
			"For each x in outer:\n"+
			"    For each y in inner:\n"+
			"        Display x.\n"+
			"        Display y.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "1\n10\n1\n20\n2\n10\n2\n20\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestBreakExitsLoop(t *testing.T) {
	out, err := run(t,
		"Set i to 0.\n"+
			"While i is less than 10:\n"+
			"    Increment i.\n"+
			"    If i is 3:\n"+
			"        Stop the loop.\n"+
			"    Display i.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "1\n2\n" {
		t.Errorf("got %q, want %q", out, "1\n2\n")
	}
}

// TestForEachBreakResetsCursorOnReentry is a regression test for a bug
// where Break skipped popping a ForEach's forState, so re-entering the
// same loop (by an enclosing While iterating again) resumed the stale
// cursor instead of restarting from the first element.
func TestForEachBreakResetsCursorOnReentry(t *testing.T) {
	out, err := run(t,
		"Set i to 0.\n"+
			"While i is less than 2:\n"+
			"    For each x in [10, 20, 30]:\n"+
			"        Display x.\n"+
			"        Stop the loop.\n"+
			"    Increment i.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "10\n10\n" {
		t.Errorf("got %q, want %q (each pass through the outer loop should restart the inner ForEach from its first element)", out, "10\n10\n")
	}
}

func TestNameErrorOnUndefinedVariable(t *testing.T) {
	_, err := run(t, "Display undefined_var.")
	kinded, ok := err.(vyraerr.Kinded)
	if !ok || kinded.ErrKind() != vyraerr.KindNameError {
		t.Errorf("got %v, want a NameError", err)
	}
}

func TestFunctionLocalsDoNotLeakToCaller(t *testing.T) {
	out, err := run(t,
		"Define function f:\n"+
			"    Set local to 1.\n"+
			"Call f.\n"+
			"Display local.\n")
	if err == nil {
		t.Fatalf("expected a NameError for a function-local leaking to caller scope, got output %q", out)
	}
}

func TestFunctionSeesGlobals(t *testing.T) {
	out, err := run(t,
		"Set g to 42.\n"+
			"Define function f:\n"+
			"    Display g.\n"+
			"Call f.\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "42\n" {
		t.Errorf("got %q, want function to read the global %q", out, "42\n")
	}
}

func TestIterationLimitExceeded(t *testing.T) {
	lines := []string{"While true:", "    Display 1."}
	u := &source.Unit{Lines: lines, Origin: make([]source.Pos, len(lines))}
	for i := range lines {
		u.Origin[i] = source.Pos{File: "t", Line: i + 1}
	}
	sents, err := lex.Split(u)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	stmts, err := parse.Parse(sents)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prog, err := graph.Build(stmts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var out strings.Builder
	ip := New(prog, &out, strings.NewReader(""), WithIterationLimit(50))
	err = ip.Run()
	kinded, ok := err.(vyraerr.Kinded)
	if !ok || kinded.ErrKind() != vyraerr.KindIterationLimitExceeded {
		t.Errorf("got %v, want IterationLimitExceeded", err)
	}
}
