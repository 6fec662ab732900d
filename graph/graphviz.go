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

package graph

import (
	"fmt"
	"io"

	"github.com/poojapathak0/vyra/parse"
)

// Graphviz dumps p to dst as dot(1)-compatible text, one cluster per
// function plus the top-level program, following the shape of the
// teacher's plan.Graphviz dump.
func Graphviz(p *Program, dst io.Writer) error {
	if _, err := io.WriteString(dst, "digraph vyra {\n"); err != nil {
		return err
	}
	seen := map[*Node]bool{}
	if err := gvCluster(p.Entry, "program", dst, seen); err != nil {
		return err
	}
	for name, fn := range p.Functions {
		if err := gvCluster(fn.Entry, "func_"+name, dst, seen); err != nil {
			return err
		}
	}
	_, err := io.WriteString(dst, "}\n")
	return err
}

func gvCluster(entry *Node, label string, dst io.Writer, seen map[*Node]bool) error {
	if _, err := fmt.Fprintf(dst, "subgraph cluster_%s {\nlabel=%q;\ncolor=lightgrey;\n", label, label); err != nil {
		return err
	}
	if err := gvWalk(entry, dst, seen); err != nil {
		return err
	}
	_, err := io.WriteString(dst, "}\n")
	return err
}

func gvWalk(n *Node, dst io.Writer, seen map[*Node]bool) error {
	if n == nil || seen[n] {
		return nil
	}
	seen[n] = true
	lbl := n.Op.String()
	if n.Value != nil {
		lbl += ": " + parse.ToString(n.Value)
	}
	if n.Target != "" {
		lbl += " -> " + n.Target
	}
	if _, err := fmt.Fprintf(dst, "n%d [label=%q];\n", n.ID, lbl); err != nil {
		return err
	}
	edges := []struct {
		name string
		to   *Node
	}{
		{"next", n.Next},
		{"then", n.Then},
		{"else", n.Else},
		{"body", n.Body},
		{"exit", n.Exit},
	}
	for _, e := range edges {
		if e.to == nil {
			continue
		}
		if _, err := fmt.Fprintf(dst, "n%d -> n%d [label=%q];\n", n.ID, e.to.ID, e.name); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if err := gvWalk(e.to, dst, seen); err != nil {
			return err
		}
	}
	return nil
}
