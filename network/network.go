/*
 * network.go, part of molkit.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package network defines a bonded graph over a molecule, on top of the
// gonum graph machinery. Nodes are atoms together with their position,
// edges carry the bond order and periodicity. The typical use is
// deleting chosen bonds and asking for the connected components, e.g.
// to take a constructed cage or polymer apart into its building blocks.
package network

import (
	"fmt"
	"sort"

	"github.com/rmera/molkit"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Node is an atom placed in space. It implements gonum's graph.Node,
// using the atom ID as the graph id.
type Node struct {
	*molkit.Atom
	Pos [3]float64
}

// ID returns the graph id of the node.
func (n *Node) ID() int64 {
	return int64(n.Atom.ID)
}

// Edge is a bond between two positioned atoms. It implements gonum's
// graph.WeightedEdge, with the bond order as the weight.
type Edge struct {
	F, T        *Node
	Order       float64
	Periodicity [3]int
}

func (e *Edge) From() graph.Node { return e.F }

func (e *Edge) To() graph.Node { return e.T }

func (e *Edge) ReversedEdge() graph.Edge {
	return &Edge{F: e.T, T: e.F, Order: e.Order, Periodicity: e.Periodicity}
}

// Weight returns the bond order, or 1 if the order is undetermined.
func (e *Edge) Weight() float64 {
	if e.Order == 0 {
		return 1
	}
	return e.Order
}

// Network is the bonded graph of a molecule.
type Network struct {
	g *simple.WeightedUndirectedGraph
}

// New returns an empty network.
func New() *Network {
	return &Network{g: simple.NewWeightedUndirectedGraph(0, 0)}
}

// FromMolecule builds the network of the given frame of a molecule.
// Every atom becomes a node even if it has no bonds.
func FromMolecule(mol *molkit.Molecule, frame int) (*Network, error) {
	errid := "network.FromMolecule"
	if mol == nil {
		return nil, fmt.Errorf("%s: given a nil molecule", errid)
	}
	if frame < 0 || frame >= mol.LenFrames() {
		return nil, fmt.Errorf("%s: frame %d out of range (%d frames)", errid, frame, mol.LenFrames())
	}
	nw := New()
	nodes := make(map[int]*Node, mol.Len())
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		c := mol.Coord(i, frame)
		n := &Node{Atom: at, Pos: [3]float64{c.At(0, 0), c.At(0, 1), c.At(0, 2)}}
		nodes[i] = n
		nw.g.AddNode(n)
	}
	for _, b := range mol.Bonds() {
		e := &Edge{F: nodes[b.At1.ID], T: nodes[b.At2.ID], Order: b.Order, Periodicity: b.Periodicity}
		nw.g.SetWeightedEdge(e)
	}
	return nw, nil
}

// Graph exposes the underlying gonum graph, for use with the rest of
// the gonum/graph algorithms.
func (nw *Network) Graph() graph.Undirected {
	return nw.g
}

// Nodes returns the nodes of the network, sorted by atom id.
func (nw *Network) Nodes() []*Node {
	it := nw.g.Nodes()
	ret := make([]*Node, 0, it.Len())
	for it.Next() {
		ret = append(ret, it.Node().(*Node))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID() < ret[j].ID() })
	return ret
}

// NumNodes returns the number of nodes in the network.
func (nw *Network) NumNodes() int {
	return nw.g.Nodes().Len()
}

// NumEdges returns the number of edges in the network.
func (nw *Network) NumEdges() int {
	return nw.g.Edges().Len()
}

// Clone returns a copy of the network. Nodes are shared, the edge set
// is independent.
func (nw *Network) Clone() *Network {
	clone := New()
	it := nw.g.Nodes()
	for it.Next() {
		clone.g.AddNode(it.Node())
	}
	et := nw.g.Edges()
	for et.Next() {
		clone.g.SetWeightedEdge(et.Edge().(*Edge))
	}
	return clone
}

// WithDeletedBonds returns a clone of the network with the edges
// between the given atom id pairs deleted. Pairs not present in the
// network are ignored, and the order within a pair does not matter.
func (nw *Network) WithDeletedBonds(pairs [][2]int) *Network {
	clone := nw.Clone()
	for _, p := range pairs {
		clone.g.RemoveEdge(int64(p[0]), int64(p[1]))
	}
	return clone
}

// ConnectedComponents returns the connected components of the network
// as slices of nodes. Components come ordered by the lowest atom id
// they contain, and each component is sorted by atom id.
func (nw *Network) ConnectedComponents() [][]*Node {
	comps := topo.ConnectedComponents(nw.g)
	ret := make([][]*Node, 0, len(comps))
	for _, c := range comps {
		nodes := make([]*Node, 0, len(c))
		for _, n := range c {
			nodes = append(nodes, n.(*Node))
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
		ret = append(ret, nodes)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0].ID() < ret[j][0].ID() })
	return ret
}

func (nw *Network) String() string {
	return fmt.Sprintf("Network(n=%d, e=%d)", nw.NumNodes(), nw.NumEdges())
}
