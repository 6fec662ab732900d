// Package vyraerr centralizes the error-kind-to-exit-code mapping
// (spec.md §7) shared by every stage of the pipeline. Each stage
// defines its own concrete error structs (source.IncludeCycleError,
// parse.UnknownSentenceError, interp.RuntimeError, ...) and implements Kinded so
// that cmd/vyra can pick an exit code without importing every package.
//
// This mirrors the teacher's habit of scoping an error type per
// package (expr.TypeError, expr.SyntaxError, pir.CompileError) instead
// of a single shared error struct threaded through everything.
package vyraerr

// Kind identifies one of the error categories in spec.md §7.
type Kind int

const (
	KindNone Kind = iota
	KindParseError
	KindNameError
	KindTypeError
	KindArityError
	KindDivisionByZero
	KindIndexError
	KindIterationLimitExceeded
	KindIOError
	KindAIRewriteError
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindNameError:
		return "NameError"
	case KindTypeError:
		return "TypeError"
	case KindArityError:
		return "ArityError"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindIndexError:
		return "IndexError"
	case KindIterationLimitExceeded:
		return "IterationLimitExceeded"
	case KindIOError:
		return "IOError"
	case KindAIRewriteError:
		return "AIRewriteError"
	default:
		return "Error"
	}
}

// Kinded is implemented by every error type surfaced across the pipeline.
type Kinded interface {
	error
	ErrKind() Kind
}

// ExitCode implements the table in spec.md §7. A nil error exits 0; an
// un-kinded error (one that doesn't implement Kinded) exits 1, matching
// "runtime error" as the default bucket.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	k, ok := err.(Kinded)
	if !ok {
		return 1
	}
	switch k.ErrKind() {
	case KindParseError:
		return 2
	case KindIOError:
		return 3
	case KindAIRewriteError:
		return 4
	default:
		return 1
	}
}
