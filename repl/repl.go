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

// Package repl implements the interactive "repl" subcommand: one
// top-level scope and function table shared across every line the
// user enters, per spec.md's description of the repl interface.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/poojapathak0/vyra/graph"
	"github.com/poojapathak0/vyra/interp"
	"github.com/poojapathak0/vyra/lex"
	"github.com/poojapathak0/vyra/parse"
	"github.com/poojapathak0/vyra/source"
)

// Prompt is printed before reading each new input line.
const Prompt = "vyra> "

// REPL reads lines from in, feeding each complete sentence (accumulating
// across lines until a terminator closes it, exactly like a file)
// through the full pipeline, and prints Display output to out.
type REPL struct {
	ip  *interp.Interp
	out io.Writer
}

// New constructs a REPL sharing ip's global scope and function table.
// Callers typically build ip with interp.New on an empty
// *graph.Program{Functions: map[string]*graph.Function{}}.
func New(ip *interp.Interp, out io.Writer) *REPL {
	return &REPL{ip: ip, out: out}
}

// Run drives the read-eval-print loop until in is exhausted or the
// user types "exit." / "quit.".
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder
	fmt.Fprint(r.out, Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if pending.Len() == 0 && (strings.EqualFold(trimmed, "exit.") || strings.EqualFold(trimmed, "quit.")) {
			return nil
		}
		pending.WriteString(line)
		pending.WriteByte('\n')

		if !endsStatement(trimmed) {
			fmt.Fprint(r.out, "... ")
			continue
		}

		if err := r.eval(pending.String()); err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}
		pending.Reset()
		fmt.Fprint(r.out, Prompt)
	}
	return scanner.Err()
}

func endsStatement(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasSuffix(line, ".") || strings.HasSuffix(line, ":")
}

func (r *REPL) eval(text string) error {
	unit := &source.Unit{
		Lines:  strings.Split(text, "\n"),
		Origin: make([]source.Pos, len(strings.Split(text, "\n"))),
	}
	for i := range unit.Origin {
		unit.Origin[i] = source.Pos{File: "<repl>", Line: i + 1}
	}

	sents, err := lex.Split(unit)
	if err != nil {
		return err
	}
	if len(sents) == 0 {
		return nil
	}
	stmts, err := parse.Parse(sents)
	if err != nil {
		return err
	}
	prog, err := graph.Build(stmts)
	if err != nil {
		return err
	}
	r.ip.AddFunctions(prog.Functions)
	_, err = r.ip.RunEntry(prog.Entry)
	return err
}
