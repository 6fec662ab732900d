package vyraerr

import (
	"errors"
	"testing"
)

type fakeErr struct{ k Kind }

func (e *fakeErr) Error() string { return "fake" }
func (e *fakeErr) ErrKind() Kind { return e.k }

func TestExitCodeTable(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("plain"), 1},
		{&fakeErr{KindParseError}, 2},
		{&fakeErr{KindIOError}, 3},
		{&fakeErr{KindAIRewriteError}, 4},
		{&fakeErr{KindNameError}, 1},
		{&fakeErr{KindTypeError}, 1},
		{&fakeErr{KindArityError}, 1},
		{&fakeErr{KindDivisionByZero}, 1},
		{&fakeErr{KindIndexError}, 1},
		{&fakeErr{KindIterationLimitExceeded}, 1},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindParseError.String() != "ParseError" {
		t.Errorf("unexpected String(): %s", KindParseError.String())
	}
	if KindNone.String() != "Error" {
		t.Errorf("KindNone.String() = %q, want \"Error\"", KindNone.String())
	}
}
