// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package graph implements the dependency graph used to schedule the parts of
// a composite gate.
//
package graph

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A CycleError is returned by Sort when the graph is not acyclic. Path lists
// the node ids forming the cycle, in dependency order, with the first node
// repeated at the end.
//
type CycleError struct {
	Path []int
}

func (e *CycleError) Error() string {
	var b strings.Builder
	b.WriteString("dependency cycle: ")
	for i, id := range e.Path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

type node struct {
	in  []int // producers
	out []int // consumers
}

// Graph is a directed graph over integer node ids. An edge from -> to means
// that from must be evaluated before to.
//
type Graph struct {
	nodes map[int]*node
}

// New returns a new empty graph.
//
func New() *Graph {
	return &Graph{nodes: make(map[int]*node)}
}

// AddNode adds node id to the graph. Adding an existing node is a no-op.
//
func (g *Graph) AddNode(id int) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = new(node)
	}
}

// Len returns the node count.
//
func (g *Graph) Len() int { return len(g.nodes) }

// AddEdge adds an edge between two existing nodes.
//
func (g *Graph) AddEdge(from, to int) error {
	f, ok := g.nodes[from]
	if !ok {
		return errors.Errorf("no such node %d", from)
	}
	t, ok := g.nodes[to]
	if !ok {
		return errors.Errorf("no such node %d", to)
	}
	f.out = append(f.out, to)
	t.in = append(t.in, from)
	return nil
}

// ids returns all node ids in ascending order.
//
func (g *Graph) ids() []int {
	ids := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Sort returns the node ids in evaluation order: every node comes after all
// of its producers. Independent nodes are ordered by ascending id, so that
// identical graphs always yield identical orders.
//
// If the graph contains a cycle, Sort returns a *CycleError.
//
func (g *Graph) Sort() ([]int, error) {
	var (
		res      = make([]int, 0, len(g.nodes))
		visited  = make(map[int]bool, len(g.nodes)) // on the current dfs path or done
		finished = make(map[int]bool, len(g.nodes))
		path     []int
	)

	var dfs func(id int) error
	dfs = func(id int) error {
		visited[id] = true
		path = append(path, id)
		in := append([]int(nil), g.nodes[id].in...)
		sort.Ints(in)
		for _, p := range in {
			if !visited[p] {
				if err := dfs(p); err != nil {
					return err
				}
				continue
			}
			if !finished[p] {
				return &CycleError{Path: cyclePath(path, p)}
			}
		}
		path = path[:len(path)-1]
		finished[id] = true
		res = append(res, id)
		return nil
	}

	for _, id := range g.ids() {
		if visited[id] {
			continue
		}
		if err := dfs(id); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// cyclePath extracts the cycle closing on id from the dfs path. The path goes
// from consumers to producers, so it is reversed.
//
func cyclePath(path []int, id int) []int {
	i := len(path) - 1
	for i > 0 && path[i] != id {
		i--
	}
	c := make([]int, 0, len(path)-i+1)
	for j := len(path) - 1; j >= i; j-- {
		c = append(c, path[j])
	}
	return append(c, path[len(path)-1])
}

// Ancestors returns the set of nodes from which any of the given roots can be
// reached, roots included. Unknown roots are ignored.
//
func (g *Graph) Ancestors(roots ...int) map[int]bool {
	seen := make(map[int]bool)
	stack := make([]int, 0, len(roots))
	for _, r := range roots {
		if _, ok := g.nodes[r]; ok && !seen[r] {
			seen[r] = true
			stack = append(stack, r)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range g.nodes[id].in {
			if !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
	return seen
}
