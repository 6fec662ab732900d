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
	"fmt"

	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/vyraerr"
)

// RuntimeError is the single error type for every kind of failure
// package interp can raise; Kind distinguishes them for ErrKind and
// for tests, the way the teacher keeps one expr.TypeError struct with
// a reason string rather than one struct type per check.
type RuntimeError struct {
	Kind vyraerr.Kind
	Pos  source.Pos
	Msg  string
}

func (e *RuntimeError) Error() string {
	if (e.Pos == source.Pos{}) {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

func (e *RuntimeError) ErrKind() vyraerr.Kind { return e.Kind }

func nameErr(pos source.Pos, name string) error {
	return &RuntimeError{Kind: vyraerr.KindNameError, Pos: pos, Msg: fmt.Sprintf("undefined name %q", name)}
}

func typeErr(pos source.Pos, format string, args ...interface{}) error {
	return &RuntimeError{Kind: vyraerr.KindTypeError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func arityErr(pos source.Pos, name string, want, got int) error {
	return &RuntimeError{Kind: vyraerr.KindArityError, Pos: pos, Msg: fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got)}
}

func divByZeroErr(pos source.Pos) error {
	return &RuntimeError{Kind: vyraerr.KindDivisionByZero, Pos: pos, Msg: "division by zero"}
}

func indexErr(pos source.Pos, i int64) error {
	return &RuntimeError{Kind: vyraerr.KindIndexError, Pos: pos, Msg: fmt.Sprintf("index %d out of range", i)}
}

func iterLimitErr(pos source.Pos, limit int64) error {
	return &RuntimeError{Kind: vyraerr.KindIterationLimitExceeded, Pos: pos, Msg: fmt.Sprintf("exceeded iteration limit of %d", limit)}
}

func ioErr(pos source.Pos, format string, args ...interface{}) error {
	return &RuntimeError{Kind: vyraerr.KindIOError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
