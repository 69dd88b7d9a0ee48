// Package cgraph holds the compiled graph representation and the
// validation / query / annotation operations that run over it, per
// spec.md §4.5-§4.6 and DESIGN NOTES §9: an undirected adjacency map
// keyed by node id, with a parallel attribute map, and a reverse
// index from attribute name to node id built lazily on first filter
// use and invalidated on any annotation write.
package cgraph

import (
	"sort"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// EdgeRecord is one undirected, canonicalized compiled-graph edge.
type EdgeRecord struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Link string `json:"link"`
}

// Graph is the expanded, undirected, attributed graph produced by
// compiling an Infrastructure declaration. It is not safe for
// concurrent use; callers (internal/service.Compiler) serialize writes
// behind a lock.
type Graph struct {
	nodes     map[string]map[string]string
	neighbors map[string]map[string]string // node id -> neighbor id -> link name
	edges     map[string]EdgeRecord        // canonical "a\x00b" -> record

	reverseIndex map[string]map[string][]string // attr name -> value -> node ids; nil when stale
}

// New returns an empty compiled graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]map[string]string),
		neighbors: make(map[string]map[string]string),
		edges:     make(map[string]EdgeRecord),
	}
}

// AddNode inserts or replaces a node and its attribute map.
func (g *Graph) AddNode(id string, attrs map[string]string) {
	if _, exists := g.nodes[id]; !exists {
		g.neighbors[id] = make(map[string]string)
	}
	cloned := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cloned[k] = v
	}
	g.nodes[id] = cloned
	g.reverseIndex = nil
}

// HasNode reports whether id names a node in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Attrs returns the attribute map for a node, or nil if absent. The
// returned map must not be mutated by the caller.
func (g *Graph) Attrs(id string) map[string]string {
	return g.nodes[id]
}

// AddEdge inserts an undirected edge between two existing nodes.
// a == b is rejected as a self-loop; unknown endpoints are rejected.
// Re-adding the same unordered pair overwrites its link label.
func (g *Graph) AddEdge(a, b, link string) error {
	if a == b {
		return &infragraph.InvariantViolationError{Reason: "self-loop at " + a}
	}
	if !g.HasNode(a) {
		return &infragraph.UnknownEndpointError{NodeID: a}
	}
	if !g.HasNode(b) {
		return &infragraph.UnknownEndpointError{NodeID: b}
	}

	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	g.edges[lo+"\x00"+hi] = EdgeRecord{A: lo, B: hi, Link: link}
	g.neighbors[a][b] = link
	g.neighbors[b][a] = link
	return nil
}

// NodeIDs returns all node ids in sorted order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns all edges, deduplicated as an unordered-pair set, in
// a stable sorted order.
func (g *Graph) Edges() []EdgeRecord {
	out := make([]EdgeRecord, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Degree returns the number of distinct neighbors of a node.
func (g *Graph) Degree(id string) int {
	return len(g.neighbors[id])
}

// Neighbors returns the sorted neighbor ids of a node.
func (g *Graph) Neighbors(id string) []string {
	out := make([]string, 0, len(g.neighbors[id]))
	for n := range g.neighbors[id] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// NodeCount and EdgeCount report graph size for resource accounting.
func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }
