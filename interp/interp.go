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

// Package interp implements spec.md §4.5: a tree-walking interpreter
// over the logic graph built by package graph.
//
// Execution follows a single node pointer through one frame's chain of
// nodes (the teacher's vm execution style: step an instruction
// pointer forward rather than recursing per statement), recursing into
// Go's own call stack only for Vyra function CALLs — loops and
// branches are just alternate edges the pointer can take, so a While
// loop re-walks the same nodes rather than needing separate iteration
// bookkeeping.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/poojapathak0/vyra/graph"
	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/source"
	"github.com/poojapathak0/vyra/value"
)

// DefaultIterationLimit bounds the total number of node steps executed
// across the whole run, guarding against runaway loops (spec.md §5).
const DefaultIterationLimit = 1_000_000

// DefaultCallDepthLimit bounds function-call recursion depth.
const DefaultCallDepthLimit = 1000

// Interp holds the mutable state of one program run: global bindings,
// the I/O streams Ask/Display use, and the step/recursion counters
// that enforce spec.md §5's resource bounds.
type Interp struct {
	prog *graph.Program

	globals map[string]value.Value

	out io.Writer
	in  *bufio.Reader

	iterLimit int64
	iterCount int64

	callDepth     int
	callDepthMax  int

	Debug bool
	Trace io.Writer // if non-nil and Debug, each step is logged here
}

// Option configures an Interp at construction time.
type Option func(*Interp)

// WithIterationLimit overrides DefaultIterationLimit; limit <= 0 means
// unbounded.
func WithIterationLimit(limit int64) Option {
	return func(ip *Interp) { ip.iterLimit = limit }
}

// WithCallDepthLimit overrides DefaultCallDepthLimit.
func WithCallDepthLimit(limit int) Option {
	return func(ip *Interp) { ip.callDepthMax = limit }
}

// WithDebug turns on step tracing to w.
func WithDebug(w io.Writer) Option {
	return func(ip *Interp) { ip.Debug = true; ip.Trace = w }
}

// New constructs an interpreter for prog, reading Ask input from in and
// writing Display output to out.
func New(prog *graph.Program, out io.Writer, in io.Reader, opts ...Option) *Interp {
	ip := &Interp{
		prog:         prog,
		globals:      map[string]value.Value{},
		out:          out,
		in:           bufio.NewReader(in),
		iterLimit:    DefaultIterationLimit,
		callDepthMax: DefaultCallDepthLimit,
	}
	for _, o := range opts {
		o(ip)
	}
	return ip
}

// Globals exposes the top-level bindings after a run, used by the REPL
// to keep one persistent scope across successive inputs.
func (ip *Interp) Globals() map[string]value.Value { return ip.globals }

// frame is one function activation. Top-level code runs in the global
// frame (isGlobal==true), where every read and write touches
// ip.globals directly; a called function's frame sees ip.globals plus
// its own locals, and writes never escape back into globals — matching
// spec.md's "functions see only globals + own parameters/locals" and
// "blocks share their parent scope" rules (an If/While/ForEach body
// never gets its own frame).
type frame struct {
	locals   map[string]value.Value
	isGlobal bool
}

func (ip *Interp) getVar(fr *frame, name string, pos source.Pos) (value.Value, error) {
	if !fr.isGlobal {
		if v, ok := fr.locals[name]; ok {
			return v, nil
		}
	}
	if v, ok := ip.globals[name]; ok {
		return v, nil
	}
	return value.Value{}, nameErr(pos, name)
}

func (ip *Interp) setVar(fr *frame, name string, v value.Value) {
	if fr.isGlobal {
		ip.globals[name] = v
		return
	}
	fr.locals[name] = v
}

// Run executes the program's top-level statements to completion.
func (ip *Interp) Run() error {
	fr := &frame{isGlobal: true}
	_, err := ip.runFrame(ip.prog.Entry, nil, fr)
	return err
}

// RunEntry executes a standalone node chain (e.g. one REPL input's
// lowered statements) against the interpreter's persistent global
// scope and function table, returning whatever its last RETURN (if
// any) yielded.
func (ip *Interp) RunEntry(entry *graph.Node) (value.Value, error) {
	fr := &frame{isGlobal: true}
	return ip.runFrame(entry, nil, fr)
}

// AddFunctions merges fns into the interpreter's callable function
// table, overwriting any previous definition with the same name — the
// REPL's "redefine a function" case.
func (ip *Interp) AddFunctions(fns map[string]*graph.Function) {
	for name, fn := range fns {
		ip.prog.Functions[name] = fn
	}
}

// forState tracks one active ForEach's cursor into its iterable. It is
// local to the runFrame call that owns the loop, so recursive function
// calls never see another invocation's cursor.
type forState struct {
	node  *graph.Node
	items []value.Value
	idx   int
}

// runFrame walks n forward one node at a time until it reaches exit
// (a FUNC_EXIT sentinel, or nil for the top-level program), or a
// RETURN node yields a value.
func (ip *Interp) runFrame(start, exit *graph.Node, fr *frame) (value.Value, error) {
	var forStack []*forState
	n := start
	for {
		if n == nil || n == exit {
			return value.Absent, nil
		}
		ip.iterCount++
		if ip.iterLimit > 0 && ip.iterCount > ip.iterLimit {
			return value.Value{}, iterLimitErr(graph.PosOf(n), ip.iterLimit)
		}
		if ip.Debug && ip.Trace != nil {
			fmt.Fprintf(ip.Trace, "step %d: %s\n", ip.iterCount, n.Op)
		}

		switch n.Op {
		case graph.OpEntry, graph.OpFuncEntry, graph.OpFuncExit,
			graph.OpBreakTarget, graph.OpContinueTarget, graph.OpHalt:
			n = n.Next

		case graph.OpLoopBodyEnd:
			// A ForEach's cursor is pushed in OpForStep below and normally
			// popped there on exhaustion; Break jumps straight here instead,
			// skipping that pop, so pop it here too whenever this exit node
			// belongs to the ForEach currently on top of the stack.
			if len(forStack) > 0 && forStack[len(forStack)-1].node.Exit == n {
				forStack = forStack[:len(forStack)-1]
			}
			n = n.Next

		case graph.OpAssign:
			v, err := ip.eval(n.Value, fr)
			if err != nil {
				return value.Value{}, err
			}
			ip.setVar(fr, n.Target, v)
			n = n.Next

		case graph.OpDisplay:
			v, err := ip.eval(n.Value, fr)
			if err != nil {
				return value.Value{}, err
			}
			fmt.Fprintln(ip.out, v.Stringify(false))
			n = n.Next

		case graph.OpInput:
			v, err := ip.readInput(n.AskNum, graph.PosOf(n))
			if err != nil {
				return value.Value{}, err
			}
			ip.setVar(fr, n.Target, v)
			n = n.Next

		case graph.OpListAppend:
			pos := graph.PosOf(n)
			lv, err := ip.getVar(fr, n.Target, pos)
			if err != nil {
				return value.Value{}, err
			}
			val, err := ip.eval(n.Value, fr)
			if err != nil {
				return value.Value{}, err
			}
			appended, ok := lv.Append(val)
			if !ok {
				return value.Value{}, typeErr(pos, "%q is not a list", n.Target)
			}
			ip.setVar(fr, n.Target, appended)
			n = n.Next

		case graph.OpReadFile:
			pos := graph.PosOf(n)
			pv, err := ip.eval(n.Path, fr)
			if err != nil {
				return value.Value{}, err
			}
			path, ok := pv.Str()
			if !ok {
				return value.Value{}, typeErr(pos, "file path must be a string")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return value.Value{}, ioErr(pos, "reading %q: %v", path, err)
			}
			ip.setVar(fr, n.Target, value.String(string(data)))
			n = n.Next

		case graph.OpWriteFile:
			pos := graph.PosOf(n)
			val, err := ip.eval(n.Value, fr)
			if err != nil {
				return value.Value{}, err
			}
			pv, err := ip.eval(n.Path, fr)
			if err != nil {
				return value.Value{}, err
			}
			path, ok := pv.Str()
			if !ok {
				return value.Value{}, typeErr(pos, "file path must be a string")
			}
			if err := os.WriteFile(path, []byte(val.Stringify(false)), 0o644); err != nil {
				return value.Value{}, ioErr(pos, "writing %q: %v", path, err)
			}
			n = n.Next

		case graph.OpBranch:
			cond, err := ip.eval(n.Value, fr)
			if err != nil {
				return value.Value{}, err
			}
			if cond.Truthy() {
				n = n.Then
			} else {
				n = n.Else
			}

		case graph.OpLoopHead:
			cond, err := ip.eval(n.Value, fr)
			if err != nil {
				return value.Value{}, err
			}
			if cond.Truthy() {
				n = n.Body
			} else {
				n = n.Exit
			}

		case graph.OpForStep:
			var st *forState
			if len(forStack) > 0 && forStack[len(forStack)-1].node == n {
				st = forStack[len(forStack)-1]
				st.idx++
			} else {
				seq, err := ip.eval(n.Value, fr)
				if err != nil {
					return value.Value{}, err
				}
				items, err := sequenceItems(seq, graph.PosOf(n))
				if err != nil {
					return value.Value{}, err
				}
				st = &forState{node: n, items: items}
				forStack = append(forStack, st)
			}
			if st.idx < len(st.items) {
				ip.setVar(fr, n.LoopVar, st.items[st.idx])
				n = n.Body
			} else {
				forStack = forStack[:len(forStack)-1]
				n = n.Exit
			}

		case graph.OpCall:
			pos := graph.PosOf(n)
			ret, err := ip.call(n.Name, n.Args, fr, pos)
			if err != nil {
				return value.Value{}, err
			}
			if n.Target != "" {
				ip.setVar(fr, n.Target, ret)
			}
			n = n.Next

		case graph.OpReturn:
			if n.Value == nil {
				return value.Absent, nil
			}
			return ip.eval(n.Value, fr)

		default:
			return value.Value{}, typeErr(graph.PosOf(n), "unhandled opcode %s", n.Op)
		}
	}
}

func (ip *Interp) readInput(asNumber bool, pos source.Pos) (value.Value, error) {
	line, err := ip.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			if asNumber {
				return value.Int(0), nil
			}
			return value.String(""), nil
		}
		return value.Value{}, ioErr(pos, "reading input: %v", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if !asNumber {
		return value.String(line), nil
	}
	line = strings.TrimSpace(line)
	if i, err := strconv.ParseInt(line, 10, 64); err == nil {
		return value.Int(i), nil
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return value.Value{}, typeErr(pos, "expected a number, got %q", line)
	}
	return value.Float(f), nil
}

// sequenceItems implements the ForEach iterable rules decided in
// SPEC_FULL.md §13: a string yields its Unicode code points as
// one-rune strings, a list yields its elements.
func sequenceItems(v value.Value, pos source.Pos) ([]value.Value, error) {
	if items, ok := v.Items(); ok {
		return items, nil
	}
	if s, ok := v.Str(); ok {
		runes := []rune(s)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.String(string(r))
		}
		return out, nil
	}
	return nil, typeErr(pos, "cannot iterate over a %s", v.Kind())
}

// call dispatches to a built-in or a user-defined function.
func (ip *Interp) call(name string, argExprs []parse.Expr, fr *frame, pos source.Pos) (value.Value, error) {
	args := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		v, err := ip.eval(a, fr)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if b, ok := builtins[strings.ToLower(name)]; ok {
		return b(args, pos)
	}

	fn, ok := ip.prog.Functions[name]
	if !ok {
		return value.Value{}, nameErr(pos, name)
	}
	if len(args) != len(fn.Params) {
		return value.Value{}, arityErr(pos, name, len(fn.Params), len(args))
	}
	ip.callDepth++
	if ip.callDepthMax > 0 && ip.callDepth > ip.callDepthMax {
		ip.callDepth--
		return value.Value{}, iterLimitErr(pos, int64(ip.callDepthMax))
	}
	callee := &frame{locals: map[string]value.Value{}}
	for i, p := range fn.Params {
		callee.locals[p] = args[i]
	}
	ret, err := ip.runFrame(fn.Entry, fn.Exit, callee)
	ip.callDepth--
	return ret, err
}
