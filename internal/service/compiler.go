// Package service assembles the expand and cgraph packages into the
// single stateful operation the rest of the system depends on: compile
// a declared Infrastructure into a queryable graph, hold it, and serve
// reads/annotations against it. Mirrors the shape of the teacher's
// internal/service/topology.go: a mutex-guarded struct wrapping an
// in-memory representation, with every graph operation taking a
// context.Context even though nothing here blocks on I/O.
package service

import (
	"context"
	"sync"

	"github.com/servak/infragraph/internal/cgraph"
	"github.com/servak/infragraph/internal/domain/infragraph"
	"github.com/servak/infragraph/internal/expand"
	"github.com/servak/infragraph/pkg/logger"
)

// Compiler holds the most recently compiled graph for one
// Infrastructure declaration and serves queries against it.
type Compiler struct {
	mu  sync.RWMutex
	log *logger.Logger

	name     string
	graph    *cgraph.Graph
	warnings []cgraph.Warning
}

// New returns an empty Compiler. Compile must be called before any
// read or write operation succeeds.
func New(log *logger.Logger) *Compiler {
	return &Compiler{log: log}
}

// Compile validates and expands infra into a new compiled graph,
// replacing any previously compiled graph only if the whole pass
// succeeds. A failed compile leaves the previous graph (if any)
// untouched.
func (c *Compiler) Compile(ctx context.Context, infra *infragraph.Infrastructure) ([]cgraph.Warning, error) {
	graph, warnings, err := compile(infra)
	if err != nil {
		if c.log != nil {
			c.log.CompileError(ctx, infra.Name, err)
		}
		return nil, err
	}
	if c.log != nil {
		for _, w := range warnings {
			c.log.ValidationWarning(ctx, infra.Name, w.NodeID, w.Reason)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = infra.Name
	c.graph = graph
	c.warnings = warnings
	return warnings, nil
}

// compile performs the pure expand+assemble+validate pipeline without
// touching Compiler state, so it can be tested and retried without a
// lock.
func compile(infra *infragraph.Infrastructure) (*cgraph.Graph, []cgraph.Warning, error) {
	if err := expand.CheckUniqueNames(infra); err != nil {
		return nil, nil, err
	}
	if err := expand.CheckAcyclic(infra); err != nil {
		return nil, nil, err
	}

	graph := cgraph.New()

	for i := range infra.Instances {
		instance := &infra.Instances[i]
		if expand.IsNestedDeviceName(infra, instance.Device) {
			continue
		}

		materialized, err := expand.MaterializeInstance(infra, instance)
		if err != nil {
			return nil, nil, err
		}
		for _, n := range materialized.Nodes {
			graph.AddNode(n.ID, n.Attrs)
		}
		for _, e := range materialized.Edges {
			if err := graph.AddEdge(e.From, e.To, e.Link); err != nil {
				return nil, nil, err
			}
		}
	}

	interInstance, err := expand.WireInfrastructure(infra)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range interInstance {
		if err := graph.AddEdge(e.From, e.To, e.Link); err != nil {
			return nil, nil, err
		}
	}

	if len(infra.Annotations) > 0 {
		if err := graph.Annotate(infra.Annotations); err != nil {
			return nil, nil, err
		}
	}

	warnings, err := cgraph.Validate(graph)
	if err != nil {
		return nil, nil, err
	}
	return graph, warnings, nil
}

// current returns the active compiled graph, or NotInitializedError if
// Compile has never succeeded.
func (c *Compiler) current() (*cgraph.Graph, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.graph == nil {
		return nil, &infragraph.NotInitializedError{}
	}
	return c.graph, nil
}

// GetEndpoints returns node ids carrying attrName, optionally filtered
// to a single value.
func (c *Compiler) GetEndpoints(ctx context.Context, attrName string, value *string) ([]string, error) {
	g, err := c.current()
	if err != nil {
		return nil, err
	}
	return g.GetEndpoints(attrName, value), nil
}

// Get returns the full compiled graph as node and edge snapshots, for
// the get_graph collaborator operation (spec.md §6).
func (c *Compiler) Get(ctx context.Context) ([]cgraph.Match, []cgraph.EdgeRecord, error) {
	g, err := c.current()
	if err != nil {
		return nil, nil, err
	}
	matches := make([]cgraph.Match, 0, g.NodeCount())
	for _, id := range g.NodeIDs() {
		matches = append(matches, cgraph.Match{NodeID: id, Attrs: g.Attrs(id)})
	}
	return matches, g.Edges(), nil
}

// Annotate applies a batch of attribute writes to the live graph.
func (c *Compiler) Annotate(ctx context.Context, annotations []infragraph.Annotation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.graph == nil {
		return &infragraph.NotInitializedError{}
	}
	return c.graph.Annotate(annotations)
}

// ShortestPath returns a shortest node-id path between src and dst.
func (c *Compiler) ShortestPath(ctx context.Context, src, dst string) ([]string, error) {
	g, err := c.current()
	if err != nil {
		return nil, err
	}
	return g.ShortestPath(src, dst)
}

// Query returns nodes matching the conjunction of filters.
func (c *Compiler) Query(ctx context.Context, filters []cgraph.Filter) ([]cgraph.Match, error) {
	g, err := c.current()
	if err != nil {
		return nil, err
	}
	return g.Query(filters)
}

// Warnings returns the warnings raised by the most recent successful Compile.
func (c *Compiler) Warnings() []cgraph.Warning {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]cgraph.Warning(nil), c.warnings...)
}

// Name returns the name of the most recently compiled Infrastructure,
// or "" if none has compiled yet.
func (c *Compiler) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// NodeCount and EdgeCount expose compiled-graph size for diagnostics.
func (c *Compiler) NodeCount() int {
	g, err := c.current()
	if err != nil {
		return 0
	}
	return g.NodeCount()
}

func (c *Compiler) EdgeCount() int {
	g, err := c.current()
	if err != nil {
		return 0
	}
	return g.EdgeCount()
}
