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

// Package graph implements spec.md §4.4: lowering the statement AST
// into a logic graph of opcode nodes joined by named successor edges,
// the intermediate form the interpreter in package interp walks.
//
// The node/edge shape follows the teacher's plan.Node/plan.Op linked
// structure (a struct carrying its own forward pointer(s) rather than
// an adjacency list keyed by integer id), generalized from plan's
// single "input" edge to the several named edges a control-flow graph
// needs ("then"/"else", "body"/"exit", ...).
package graph

import (
	"fmt"

	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/source"
)

// Op is the opcode tag of a Node (spec.md §4.4).
type Op int

const (
	OpEntry Op = iota
	OpAssign
	OpDisplay
	OpInput
	OpBranch
	OpLoopHead
	OpLoopBodyEnd
	OpForStep
	OpCall
	OpReturn
	OpFuncEntry
	OpFuncExit
	OpHalt
	OpBreakTarget
	OpContinueTarget
	OpListAppend
	OpReadFile
	OpWriteFile
)

func (o Op) String() string {
	switch o {
	case OpEntry:
		return "ENTRY"
	case OpAssign:
		return "ASSIGN"
	case OpDisplay:
		return "DISPLAY"
	case OpInput:
		return "INPUT"
	case OpBranch:
		return "BRANCH"
	case OpLoopHead:
		return "LOOP_HEAD"
	case OpLoopBodyEnd:
		return "LOOP_BODY_END"
	case OpForStep:
		return "FOR_STEP"
	case OpCall:
		return "CALL"
	case OpReturn:
		return "RETURN"
	case OpFuncEntry:
		return "FUNC_ENTRY"
	case OpFuncExit:
		return "FUNC_EXIT"
	case OpHalt:
		return "HALT"
	case OpBreakTarget:
		return "BREAK_TARGET"
	case OpContinueTarget:
		return "CONTINUE_TARGET"
	case OpListAppend:
		return "LIST_APPEND"
	case OpReadFile:
		return "READ_FILE"
	case OpWriteFile:
		return "WRITE_FILE"
	default:
		return "?"
	}
}

// Node is one instruction in the logic graph. Only the edges relevant
// to its Op are populated: a BRANCH uses Then/Else, a LOOP_HEAD or
// FOR_STEP uses Body/Exit, everything else uses Next.
type Node struct {
	ID   int
	Op   Op
	Pos  parse.Stmt // nil for synthetic nodes (If join points, loop exits, elif branches, ...)

	// payload, meaning depends on Op
	Target string    // ASSIGN/INPUT/LIST_APPEND/READ_FILE target, CALL result var
	Value  parse.Expr // ASSIGN/DISPLAY/LIST_APPEND/WRITE_FILE/RETURN value, BRANCH/LOOP_HEAD condition, FOR_STEP iterable
	Name   string    // CALL/FUNC_ENTRY function name
	Args   []parse.Expr
	AskNum bool // INPUT: true if numeric ask

	LoopVar string     // FOR_STEP: per-iteration binding name
	Path    parse.Expr // READ_FILE/WRITE_FILE file path

	Next  *Node
	Then  *Node
	Else  *Node
	Body  *Node
	Exit  *Node

	// breakTarget/continueTarget let nested Break/Continue statements
	// resolve to the enclosing loop's exit/head without threading
	// the loop stack through every statement-lowering call by hand.
	breakTarget    *Node
	continueTarget *Node
}

// Function is a named entry point with its own parameter list and
// graph. Body functions never see caller locals (spec.md §5's
// "functions see only globals + own parameters/locals").
type Function struct {
	Name    string
	Params  []string
	Entry   *Node // FUNC_ENTRY
	Exit    *Node // FUNC_EXIT (sentinel, no outgoing edges)
}

// Program is a whole lowered logic graph: a top-level entry node plus
// a function table keyed by name.
type Program struct {
	Entry     *Node
	Functions map[string]*Function
}

type builder struct {
	nextID    int
	functions map[string]*Function
}

// Build lowers a parsed statement list into a Program, registering any
// top-level FunctionDef as a callable Function and chaining the
// remaining top-level statements into the program's main line.
func Build(stmts []parse.Stmt) (*Program, error) {
	b := &builder{functions: map[string]*Function{}}

	var top []parse.Stmt
	for _, s := range stmts {
		if fd, ok := s.(*parse.FunctionDef); ok {
			if err := b.buildFunction(fd); err != nil {
				return nil, err
			}
			continue
		}
		top = append(top, s)
	}

	entry := b.newNode(OpEntry, nil)
	halt := b.newNode(OpHalt, nil)
	tail, err := b.lower(top, nil, nil)
	if err != nil {
		return nil, err
	}
	if tail.head == nil {
		entry.Next = halt
	} else {
		entry.Next = tail.head
		patchOpen(tail.tail, halt)
	}
	return &Program{Entry: entry, Functions: b.functions}, nil
}

func (b *builder) buildFunction(fd *parse.FunctionDef) error {
	entry := b.newNode(OpFuncEntry, fd)
	entry.Name = fd.Name
	exit := b.newNode(OpFuncExit, fd)
	body, err := b.lower(fd.Body, nil, nil)
	if err != nil {
		return err
	}
	if body.head == nil {
		entry.Next = exit
	} else {
		entry.Next = body.head
		patchOpen(body.tail, exit)
	}
	b.functions[fd.Name] = &Function{Name: fd.Name, Params: fd.Params, Entry: entry, Exit: exit}
	return nil
}

func (b *builder) newNode(op Op, stmt parse.Stmt) *Node {
	b.nextID++
	return &Node{ID: b.nextID, Op: op, Pos: stmt}
}

// chain is a (possibly empty) linear fragment with a head and the last
// node whose "next" pointer still needs a successor (nil when the
// fragment ends in a Break/Continue whose edge is already fixed), the
// way the teacher's plan.Node chains an Op pointer list and leaves the
// final input unterminated until the enclosing Tree splices it.
type chain struct {
	head *Node
	tail *Node // last-created node, for the common single-exit case
}

// PosOf reports n's source position, or the zero Pos for synthetic
// nodes introduced by lowering (join points, loop exits, ...).
func PosOf(n *Node) source.Pos {
	if n == nil || n.Pos == nil {
		return source.Pos{}
	}
	return n.Pos.Pos()
}

// patchOpen wires a fragment's last node to the node that follows it in
// the enclosing chain. It leaves a nil last, a BRANCH, a LOOP_HEAD, and
// a node whose Next is already set unchanged.
func patchOpen(last *Node, next *Node) {
	if last == nil {
		return
	}
	if last.Next == nil && last.Op != OpBranch && last.Op != OpLoopHead {
		last.Next = next
	}
}

func (b *builder) lower(stmts []parse.Stmt, brk, cont *Node) (chain, error) {
	var head, prev *Node
	for _, s := range stmts {
		n, err := b.lowerStmt(s, brk, cont)
		if err != nil {
			return chain{}, err
		}
		if n.head == nil {
			continue
		}
		if head == nil {
			head = n.head
		} else {
			patchOpen(prev, n.head)
		}
		prev = n.tail
	}
	return chain{head: head, tail: prev}, nil
}

func (b *builder) lowerStmt(s parse.Stmt, brk, cont *Node) (chain, error) {
	switch st := s.(type) {
	case *parse.Assign:
		n := b.newNode(OpAssign, s)
		n.Target = st.Target
		n.Value = st.Value
		return chain{head: n, tail: n}, nil

	case *parse.Display:
		n := b.newNode(OpDisplay, s)
		n.Value = st.Value
		return chain{head: n, tail: n}, nil

	case *parse.Ask:
		n := b.newNode(OpInput, s)
		n.Target = st.Target
		n.AskNum = st.Kind == parse.AskNumber
		return chain{head: n, tail: n}, nil

	case *parse.ListAppend:
		n := b.newNode(OpListAppend, s)
		n.Target = st.Target
		n.Value = st.Value
		return chain{head: n, tail: n}, nil

	case *parse.ReadFile:
		n := b.newNode(OpReadFile, s)
		n.Path = st.Path
		n.Target = st.Target
		return chain{head: n, tail: n}, nil

	case *parse.WriteFile:
		n := b.newNode(OpWriteFile, s)
		n.Value = st.Value
		n.Path = st.Path
		return chain{head: n, tail: n}, nil

	case *parse.CallStmt:
		n := b.newNode(OpCall, s)
		n.Name = st.Name
		n.Args = st.Args
		n.Target = st.Result
		return chain{head: n, tail: n}, nil

	case *parse.Return:
		n := b.newNode(OpReturn, s)
		n.Value = st.Value
		return chain{head: n, tail: n}, nil

	case *parse.Break:
		n := b.newNode(OpBreakTarget, s)
		n.Next = brk
		return chain{head: n, tail: nil}, nil // tail nil: this edge is already terminal

	case *parse.Continue:
		n := b.newNode(OpContinueTarget, s)
		n.Next = cont
		return chain{head: n, tail: nil}, nil

	case *parse.If:
		return b.lowerIf(st, brk, cont)

	case *parse.While:
		return b.lowerWhile(st, brk, cont)

	case *parse.Repeat:
		// Repeat N times desugars to a While over a synthetic
		// countdown counter.
		return b.lowerRepeat(st, brk, cont)

	case *parse.ForEach:
		return b.lowerForEach(st, brk, cont)

	default:
		return chain{}, fmt.Errorf("graph: unhandled statement type %T", s)
	}
}

func (b *builder) lowerIf(st *parse.If, brk, cont *Node) (chain, error) {
	branch := b.newNode(OpBranch, st)
	branch.Value = st.Cond

	thenC, err := b.lower(st.Then, brk, cont)
	if err != nil {
		return chain{}, err
	}

	join := b.newNode(OpEntry, nil) // synthetic join point, opcode unused for control
	branch.Then = thenC.head
	if branch.Then == nil {
		branch.Then = join
	} else {
		patchOpen(thenC.tail, join)
	}

	elseTarget, err := b.lowerElseChain(st.Elifs, st.Else, brk, cont, join)
	if err != nil {
		return chain{}, err
	}
	branch.Else = elseTarget

	return chain{head: branch, tail: join}, nil
}

func (b *builder) lowerElseChain(elifs []parse.ElifClause, elseBody []parse.Stmt, brk, cont, join *Node) (*Node, error) {
	if len(elifs) == 0 {
		if len(elseBody) == 0 {
			return join, nil
		}
		c, err := b.lower(elseBody, brk, cont)
		if err != nil {
			return nil, err
		}
		if c.head == nil {
			return join, nil
		}
		patchOpen(c.tail, join)
		return c.head, nil
	}
	head := elifs[0]
	rest := elifs[1:]
	branch := b.newNode(OpBranch, nil)
	branch.Value = head.Cond
	thenC, err := b.lower(head.Body, brk, cont)
	if err != nil {
		return nil, err
	}
	branch.Then = thenC.head
	if branch.Then == nil {
		branch.Then = join
	} else {
		patchOpen(thenC.tail, join)
	}
	elseTarget, err := b.lowerElseChain(rest, elseBody, brk, cont, join)
	if err != nil {
		return nil, err
	}
	branch.Else = elseTarget
	return branch, nil
}

func (b *builder) lowerWhile(st *parse.While, _, _ *Node) (chain, error) {
	head := b.newNode(OpLoopHead, st)
	head.Value = st.Cond
	exit := b.newNode(OpLoopBodyEnd, nil)

	bodyC, err := b.lower(st.Body, exit, head)
	if err != nil {
		return chain{}, err
	}
	head.Body = bodyC.head
	if head.Body == nil {
		head.Body = head
	} else {
		patchOpen(bodyC.tail, head)
	}
	head.Exit = exit
	return chain{head: head, tail: exit}, nil
}

// lowerRepeat desugars "Repeat N times" into a While loop over a
// hidden counter variable, reusing LOOP_HEAD rather than a dedicated
// counted-loop op.
func (b *builder) lowerRepeat(st *parse.Repeat, _, _ *Node) (chain, error) {
	counter := fmt.Sprintf("__repeat_%d", b.nextID+1)
	init := b.newNode(OpAssign, st)
	init.Target = counter
	init.Value = st.Count

	head := b.newNode(OpLoopHead, st)
	head.Value = &parse.Binary{Op: parse.OpGt, X: &parse.Ident{Name: counter}, Y: &parse.Literal{Kind: parse.LitInt, Int: 0}}
	exit := b.newNode(OpLoopBodyEnd, nil)

	dec := b.newNode(OpAssign, nil)
	dec.Target = counter
	dec.Value = &parse.Binary{Op: parse.OpSub, X: &parse.Ident{Name: counter}, Y: &parse.Literal{Kind: parse.LitInt, Int: 1}}

	// continue targets dec (not head) so a skipped remainder of the
	// body still decrements the counter before the condition is
	// re-checked.
	bodyC, err := b.lower(st.Body, exit, dec)
	if err != nil {
		return chain{}, err
	}
	if bodyC.head == nil {
		head.Body = dec
	} else {
		head.Body = bodyC.head
		patchOpen(bodyC.tail, dec)
	}
	dec.Next = head
	head.Exit = exit

	init.Next = head
	return chain{head: init, tail: exit}, nil
}

// lowerForEach desugars "For each V in SEQ" into a FOR_STEP loop that
// carries a hidden cursor, per SPEC_FULL.md §13: strings iterate by
// Unicode code point, sequences iterate by element, both via the same
// opcode with the iterable's runtime kind dispatched in package interp.
func (b *builder) lowerForEach(st *parse.ForEach, _, _ *Node) (chain, error) {
	step := b.newNode(OpForStep, st)
	step.Value = st.Iter
	step.LoopVar = st.Var
	exit := b.newNode(OpLoopBodyEnd, nil)

	bodyC, err := b.lower(st.Body, exit, step)
	if err != nil {
		return chain{}, err
	}
	step.Body = bodyC.head
	if step.Body == nil {
		step.Body = step
	} else {
		patchOpen(bodyC.tail, step)
	}
	step.Exit = exit
	return chain{head: step, tail: exit}, nil
}
