// Package depgraph models task dependencies as a directed graph.
// An edge a -> b means task a blocks task b.
package depgraph

import (
	"sort"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Graph is a set of nodes with adjacency sets keyed by task id.
type Graph struct {
	out map[int]map[int]struct{}
	in  map[int]map[int]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		out: make(map[int]map[int]struct{}),
		in:  make(map[int]map[int]struct{}),
	}
}

// FromTasks builds a graph from each task's dependency map.
func FromTasks(tasks []*models.Task) *Graph {
	g := New()
	for _, t := range tasks {
		g.AddNode(t.ID)
		for _, blocked := range t.DependencyMap {
			g.AddEdge(t.ID, blocked)
		}
	}
	return g
}

// AddNode registers id with no edges. Adding an existing node is a no-op.
func (g *Graph) AddNode(id int) {
	if _, ok := g.out[id]; !ok {
		g.out[id] = make(map[int]struct{})
	}
	if _, ok := g.in[id]; !ok {
		g.in[id] = make(map[int]struct{})
	}
}

// AddEdge records that from blocks to.
func (g *Graph) AddEdge(from, to int) {
	g.AddNode(from)
	g.AddNode(to)
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
}

// RemoveEdge deletes the edge from -> to if present.
func (g *Graph) RemoveEdge(from, to int) {
	delete(g.out[from], to)
	delete(g.in[to], from)
}

// Successors returns the ids blocked by id, sorted.
func (g *Graph) Successors(id int) []int {
	return sortedKeys(g.out[id])
}

// Predecessors returns the ids blocking id, sorted.
func (g *Graph) Predecessors(id int) []int {
	return sortedKeys(g.in[id])
}

// SetSuccessors replaces every outgoing edge of id.
func (g *Graph) SetSuccessors(id int, ids []int) {
	for _, to := range g.Successors(id) {
		g.RemoveEdge(id, to)
	}
	g.AddNode(id)
	for _, to := range ids {
		g.AddEdge(id, to)
	}
}

// SetPredecessors replaces every incoming edge of id.
func (g *Graph) SetPredecessors(id int, ids []int) {
	for _, from := range g.Predecessors(id) {
		g.RemoveEdge(from, id)
	}
	g.AddNode(id)
	for _, from := range ids {
		g.AddEdge(from, id)
	}
}

// Nodes returns every node id, sorted.
func (g *Graph) Nodes() []int {
	return sortedKeys(g.out)
}

// FindCycle returns one cycle as a closed path [a, b, ..., a], or nil when the
// graph is acyclic. Nodes and edges are visited in ascending id order so the
// same graph always yields the same path.
func (g *Graph) FindCycle() []int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, len(g.out))
	parent := make(map[int]int, len(g.out))
	var cycle []int

	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.Successors(u) {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// back edge u -> v closes a cycle through the parent chain
				cycle = append(cycle, v)
				for cur := u; cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for _, id := range g.Nodes() {
		if color[id] == white && dfs(id) {
			break
		}
	}
	if len(cycle) == 0 {
		return nil
	}

	out := make([]int, len(cycle))
	for i := range cycle {
		out[i] = cycle[len(cycle)-1-i]
	}
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
