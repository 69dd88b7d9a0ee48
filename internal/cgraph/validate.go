package cgraph

import (
	"fmt"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

// Warning is a non-fatal observation raised during validation. Callers
// route these to a logger or a collector; they never abort compilation.
type Warning struct {
	NodeID string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.NodeID, w.Reason)
}

// Validate runs the defensive post-assembly checks spec.md §4.5
// requires of a freshly compiled graph: no self-loops (the expansion
// passes already reject these before they reach AddEdge, so a hit here
// signals an assembly bug rather than a bad declaration), and isolated
// nodes, which are reported as warnings rather than errors since a
// component with no configured edges is a valid, if unusual,
// declaration.
//
// Dangling link references and cross-instance intra-device edges are
// checked earlier, in internal/expand, where the device/infrastructure
// scope that makes them meaningful is still available.
func Validate(g *Graph) ([]Warning, error) {
	for _, e := range g.Edges() {
		if e.A == e.B {
			return nil, &infragraph.InvariantViolationError{Reason: "compiled graph contains a self-loop at " + e.A}
		}
	}

	var warnings []Warning
	for _, id := range g.NodeIDs() {
		if g.Degree(id) == 0 {
			warnings = append(warnings, Warning{NodeID: id, Reason: "node has no edges"})
		}
	}
	return warnings, nil
}
