package cgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servak/infragraph/internal/domain/infragraph"
)

func buildLine(t *testing.T) *Graph {
	t.Helper()
	g := New()
	g.AddNode("a.0.cpu.0", map[string]string{"type": "cpu", "instance": "a"})
	g.AddNode("a.0.nic.0", map[string]string{"type": "nic", "instance": "a"})
	g.AddNode("b.0.nic.0", map[string]string{"type": "nic", "instance": "b"})
	require.NoError(t, g.AddEdge("a.0.cpu.0", "a.0.nic.0", "pcie"))
	require.NoError(t, g.AddEdge("a.0.nic.0", "b.0.nic.0", "ethernet"))
	return g
}

func TestGetEndpoints_ByValue(t *testing.T) {
	g := buildLine(t)
	ids := g.GetEndpoints("type", strPtr("nic"))
	assert.Equal(t, []string{"a.0.nic.0", "b.0.nic.0"}, ids)
}

func TestGetEndpoints_AnyValue(t *testing.T) {
	g := buildLine(t)
	ids := g.GetEndpoints("instance", nil)
	assert.Equal(t, []string{"a.0.cpu.0", "a.0.nic.0", "b.0.nic.0"}, ids)
}

func TestAnnotate_AtomicOnUnknownNode(t *testing.T) {
	g := buildLine(t)
	err := g.Annotate([]infragraph.Annotation{
		{NodeID: "a.0.cpu.0", Attribute: "rack", Value: "r1"},
		{NodeID: "missing", Attribute: "rack", Value: "r1"},
	})
	var unknown *infragraph.UnknownEndpointError
	require.ErrorAs(t, err, &unknown)

	// the first write must not have been applied.
	assert.Empty(t, g.Attrs("a.0.cpu.0")["rack"])
}

func TestAnnotate_ReflectedInGetEndpoints(t *testing.T) {
	g := buildLine(t)
	require.NoError(t, g.Annotate([]infragraph.Annotation{
		{NodeID: "a.0.cpu.0", Attribute: "rack", Value: "r1"},
	}))
	ids := g.GetEndpoints("rack", strPtr("r1"))
	assert.Equal(t, []string{"a.0.cpu.0"}, ids)
}

func TestShortestPath_Found(t *testing.T) {
	g := buildLine(t)
	path, err := g.ShortestPath("a.0.cpu.0", "b.0.nic.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.0.cpu.0", "a.0.nic.0", "b.0.nic.0"}, path)
}

func TestShortestPath_SameNode(t *testing.T) {
	g := buildLine(t)
	path, err := g.ShortestPath("a.0.cpu.0", "a.0.cpu.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.0.cpu.0"}, path)
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := buildLine(t)
	g.AddNode("island", nil)
	_, err := g.ShortestPath("a.0.cpu.0", "island")
	var noPath *infragraph.NoPathError
	assert.ErrorAs(t, err, &noPath)
}

func TestShortestPath_UnknownEndpoint(t *testing.T) {
	g := buildLine(t)
	_, err := g.ShortestPath("a.0.cpu.0", "missing")
	var unknown *infragraph.UnknownEndpointError
	assert.ErrorAs(t, err, &unknown)
}

func TestQuery_ConjunctiveFilters(t *testing.T) {
	g := buildLine(t)
	matches, err := g.Query([]Filter{
		{Kind: FilterAttribute, Attribute: "type", Operator: OpEQ, Value: "nic"},
		{Kind: FilterAttribute, Attribute: "instance", Operator: OpEQ, Value: "a"},
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a.0.nic.0", matches[0].NodeID)
}

func TestQuery_ContainsOperator(t *testing.T) {
	g := buildLine(t)
	matches, err := g.Query([]Filter{
		{Kind: FilterID, Operator: OpCONTAINS, Value: "nic"},
	})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestQuery_RegexAnchoredAtStart(t *testing.T) {
	g := buildLine(t)
	matches, err := g.Query([]Filter{
		{Kind: FilterID, Operator: OpREGEX, Value: "a\\."},
	})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	// anchored at start: a pattern that only matches mid-string finds nothing.
	matches, err = g.Query([]Filter{
		{Kind: FilterID, Operator: OpREGEX, Value: "nic"},
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQuery_UnknownFilterKind(t *testing.T) {
	g := buildLine(t)
	_, err := g.Query([]Filter{{Kind: "bogus"}})
	var unknownKind *infragraph.UnknownFilterKindError
	assert.ErrorAs(t, err, &unknownKind)
}

func strPtr(s string) *string { return &s }
