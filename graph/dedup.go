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
	"encoding/binary"

	"github.com/dchest/siphash"

	"github.com/poojapathak0/vyra/parse"
)

const dedupK0, dedupK1 = 0, 1

// Dedup collapses structurally identical linear subgraphs that share
// no mutable state across them, such as repeated "Otherwise" bodies
// produced by --ai rewrites of near-duplicate sentences. Two nodes
// fingerprint equal only when their opcode, payload text, and outgoing
// edge targets (by fingerprint, recursively) all match, so sharing
// never merges nodes that would alias a loop variable between unlike
// call sites.
//
// This is a best-effort size optimization, not a correctness
// requirement of the interpreter; Build's output is valid without it.
func Dedup(p *Program) {
	memo := map[uint64]*Node{}
	fp := map[*Node]uint64{}
	visiting := map[*Node]bool{}
	p.Entry = dedupWalk(p.Entry, memo, fp, visiting)
	for _, fn := range p.Functions {
		fn.Entry = dedupWalk(fn.Entry, memo, fp, visiting)
	}
}

// dedupWalk rewrites n's subgraph to canonical nodes in post-order. The
// graph is cyclic (a loop body's last node points back to its own
// head), so a node still on the current call stack is tracked in
// visiting and returned as-is without recursing further — its
// fingerprint is folded in by identity via appendEdge's back-edge case
// once its enclosing node finishes.
func dedupWalk(n *Node, memo map[uint64]*Node, fp map[*Node]uint64, visiting map[*Node]bool) *Node {
	if n == nil {
		return nil
	}
	if h, ok := fp[n]; ok {
		if canon, ok := memo[h]; ok {
			return canon
		}
		return n
	}
	if visiting[n] {
		return n
	}
	visiting[n] = true

	n.Next = dedupWalk(n.Next, memo, fp, visiting)
	n.Then = dedupWalk(n.Then, memo, fp, visiting)
	n.Else = dedupWalk(n.Else, memo, fp, visiting)
	n.Body = dedupWalk(n.Body, memo, fp, visiting)
	n.Exit = dedupWalk(n.Exit, memo, fp, visiting)

	delete(visiting, n)

	h := fingerprint(n, fp)
	fp[n] = h
	if canon, ok := memo[h]; ok {
		return canon
	}
	memo[h] = n
	return n
}

func fingerprint(n *Node, fp map[*Node]uint64) uint64 {
	var buf []byte
	buf = appendUint64(buf, uint64(n.Op))
	buf = append(buf, n.Target...)
	buf = append(buf, 0)
	buf = append(buf, n.Name...)
	buf = append(buf, 0)
	buf = append(buf, n.LoopVar...)
	buf = append(buf, 0)
	if n.Value != nil {
		buf = append(buf, parse.ToString(n.Value)...)
	}
	buf = append(buf, 0)
	for _, a := range n.Args {
		buf = append(buf, parse.ToString(a)...)
		buf = append(buf, ',')
	}
	buf = appendEdge(buf, n.Next, fp)
	buf = appendEdge(buf, n.Then, fp)
	buf = appendEdge(buf, n.Else, fp)
	buf = appendEdge(buf, n.Body, fp)
	buf = appendEdge(buf, n.Exit, fp)
	return siphash.Hash(dedupK0, dedupK1, buf)
}

func appendEdge(buf []byte, to *Node, fp map[*Node]uint64) []byte {
	if to == nil {
		return appendUint64(buf, 0)
	}
	h, ok := fp[to]
	if !ok {
		// back-edge (loop): fold in the node's identity instead of
		// its not-yet-known fingerprint so cycles still terminate.
		return appendUint64(buf, uint64(uintptrOf(to)))
	}
	return appendUint64(buf, h)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func uintptrOf(n *Node) uint64 { return uint64(n.ID) }
