package cgraph

import (
	"regexp"
	"sort"
	"strings"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// GetEndpoints returns the sorted node ids carrying attrName. When
// value is non-nil, only nodes whose attrName attribute equals *value
// are returned; otherwise every node that carries the attribute at all
// is returned, regardless of its value (spec.md §4.6).
func (g *Graph) GetEndpoints(attrName string, value *string) []string {
	g.ensureReverseIndex()

	byValue := g.reverseIndex[attrName]
	if value != nil {
		return append([]string(nil), byValue[*value]...)
	}

	seen := make(map[string]struct{})
	var out []string
	for _, ids := range byValue {
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (g *Graph) ensureReverseIndex() {
	if g.reverseIndex != nil {
		return
	}
	idx := make(map[string]map[string][]string)
	for _, id := range g.NodeIDs() {
		for attr, val := range g.nodes[id] {
			byValue, ok := idx[attr]
			if !ok {
				byValue = make(map[string][]string)
				idx[attr] = byValue
			}
			byValue[val] = append(byValue[val], id)
		}
	}
	g.reverseIndex = idx
}

// Annotate applies a batch of attribute writes atomically: every
// NodeID is validated before any write is applied, so a single
// unknown endpoint fails the whole batch rather than leaving the
// graph partially annotated.
func (g *Graph) Annotate(annotations []infragraph.Annotation) error {
	for _, a := range annotations {
		if !g.HasNode(a.NodeID) {
			return &infragraph.UnknownEndpointError{NodeID: a.NodeID}
		}
	}
	for _, a := range annotations {
		g.nodes[a.NodeID][a.Attribute] = a.Value
	}
	g.reverseIndex = nil
	return nil
}

// ShortestPath runs an unweighted BFS between two node ids and returns
// the node sequence of a shortest path, inclusive of both endpoints.
func (g *Graph) ShortestPath(src, dst string) ([]string, error) {
	if !g.HasNode(src) {
		return nil, &infragraph.UnknownEndpointError{NodeID: src}
	}
	if !g.HasNode(dst) {
		return nil, &infragraph.UnknownEndpointError{NodeID: dst}
	}
	if src == dst {
		return []string{src}, nil
	}

	visited := map[string]bool{src: true}
	parent := map[string]string{}
	queue := []string{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			if next == dst {
				return reconstructPath(parent, src, dst), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, &infragraph.NoPathError{Src: src, Dst: dst}
}

func reconstructPath(parent map[string]string, src, dst string) []string {
	path := []string{dst}
	for path[len(path)-1] != src {
		path = append(path, parent[path[len(path)-1]])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FilterOperator names a comparison applied between a filter's subject
// and its value.
type FilterOperator string

const (
	OpEQ       FilterOperator = "EQ"
	OpCONTAINS FilterOperator = "CONTAINS"
	OpREGEX    FilterOperator = "REGEX"
)

// FilterKind selects what a Filter compares: the node id itself, or
// one of its attributes.
type FilterKind string

const (
	FilterID        FilterKind = "id"
	FilterAttribute FilterKind = "attribute"
)

// Filter is one conjunctive clause of a Query (spec.md §4.6). A Query
// call ANDs every supplied Filter together.
type Filter struct {
	Kind      FilterKind     `json:"kind"`
	Attribute string         `json:"attribute,omitempty"` // used when Kind == FilterAttribute
	Operator  FilterOperator `json:"operator"`
	Value     string         `json:"value"`
}

// Match is one node satisfying every Filter in a Query, reported with
// its full attribute set so callers don't need a follow-up lookup.
type Match struct {
	NodeID string            `json:"node_id"`
	Attrs  map[string]string `json:"attrs"`
}

// Query returns every node matching the conjunction of filters, in
// sorted node-id order. An empty filter set matches every node.
func (g *Graph) Query(filters []Filter) ([]Match, error) {
	var out []Match
	for _, id := range g.NodeIDs() {
		ok := true
		for _, f := range filters {
			matched, err := g.evaluateFilter(id, f)
			if err != nil {
				return nil, err
			}
			if !matched {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, Match{NodeID: id, Attrs: g.nodes[id]})
		}
	}
	return out, nil
}

func (g *Graph) evaluateFilter(id string, f Filter) (bool, error) {
	var subject string
	switch f.Kind {
	case FilterID:
		subject = id
	case FilterAttribute:
		subject = g.nodes[id][f.Attribute]
	default:
		return false, &infragraph.UnknownFilterKindError{Kind: string(f.Kind)}
	}

	switch f.Operator {
	case OpEQ:
		return subject == f.Value, nil
	case OpCONTAINS:
		return strings.Contains(subject, f.Value), nil
	case OpREGEX:
		re, err := regexp.Compile("^(?:" + f.Value + ")")
		if err != nil {
			return false, &infragraph.MalformedSliceError{Segment: f.Value, Reason: "invalid regular expression: " + err.Error()}
		}
		return re.MatchString(subject), nil
	default:
		return false, &infragraph.UnknownFilterKindError{Kind: string(f.Operator)}
	}
}
