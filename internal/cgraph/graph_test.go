package cgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

func buildChain(t *testing.T) *Graph {
	t.Helper()
	g := New()
	g.AddNode("a", map[string]string{"type": "cpu"})
	g.AddNode("b", map[string]string{"type": "nic"})
	g.AddNode("c", map[string]string{"type": "nic"})
	require.NoError(t, g.AddEdge("a", "b", "link1"))
	require.NoError(t, g.AddEdge("b", "c", "link2"))
	return g
}

func TestAddEdge_SelfLoopRejected(t *testing.T) {
	g := New()
	g.AddNode("a", nil)
	err := g.AddEdge("a", "a", "link")
	var invariant *infragraph.InvariantViolationError
	assert.ErrorAs(t, err, &invariant)
}

func TestAddEdge_UnknownEndpointRejected(t *testing.T) {
	g := New()
	g.AddNode("a", nil)
	err := g.AddEdge("a", "b", "link")
	var unknown *infragraph.UnknownEndpointError
	assert.ErrorAs(t, err, &unknown)
}

func TestAddEdge_UndirectedDeduplication(t *testing.T) {
	g := New()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	require.NoError(t, g.AddEdge("a", "b", "link"))
	require.NoError(t, g.AddEdge("b", "a", "link"))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestDegreeAndNeighbors(t *testing.T) {
	g := buildChain(t)
	assert.Equal(t, 1, g.Degree("a"))
	assert.Equal(t, 2, g.Degree("b"))
	assert.Equal(t, []string{"a", "c"}, g.Neighbors("b"))
}

func TestValidate_IsolatedNodeWarning(t *testing.T) {
	g := New()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	require.NoError(t, g.AddEdge("a", "b", "link"))
	g.AddNode("isolated", nil)

	warnings, err := Validate(g)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "isolated", warnings[0].NodeID)
}
