// Package neo4j writes a compiled graph's nodes and edges into Neo4j
// for visualization/analysis tooling downstream of this repo. It is
// write-only: nothing here reads a graph back out of Neo4j, so the
// compiled graph itself stays free of persistence, per the spec's
// Non-goal against storing compiled graph state.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/servak/infragraph/internal/cgraph"
)

// Config holds Neo4j connection settings.
type Config struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

func (c *Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("neo4j URI is required")
	}
	if c.Username == "" {
		return fmt.Errorf("neo4j username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("neo4j password is required")
	}
	return nil
}

// Exporter writes compiled graphs to Neo4j.
type Exporter struct {
	driver neo4j.DriverWithContext
	config *Config
}

// New opens a Neo4j driver and verifies connectivity.
func New(ctx context.Context, config *Config) (*Exporter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Neo4j configuration: %w", err)
	}

	driver, err := neo4j.NewDriverWithContext(
		config.URI,
		neo4j.BasicAuth(config.Username, config.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	return &Exporter{driver: driver, config: config}, nil
}

func (e *Exporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

// Export clears any prior export under infraName and writes every
// node and edge as :Endpoint nodes and :LINKED_BY relationships. nodes
// and edges are the same snapshot internal/service.Compiler.Get
// returns, so callers never need to reach into the internal graph
// representation to export it.
func (e *Exporter) Export(ctx context.Context, infraName string, nodes []cgraph.Match, edges []cgraph.EdgeRecord) error {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.config.Database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx,
			`MATCH (n:Endpoint {infrastructure: $infra}) DETACH DELETE n`,
			map[string]any{"infra": infraName}); err != nil {
			return nil, fmt.Errorf("failed to clear prior export: %w", err)
		}

		for _, m := range nodes {
			props := make(map[string]any, len(m.Attrs)+2)
			for k, v := range m.Attrs {
				props[k] = v
			}
			props["infrastructure"] = infraName
			props["node_id"] = m.NodeID

			if _, err := tx.Run(ctx,
				`CREATE (n:Endpoint $props)`,
				map[string]any{"props": props}); err != nil {
				return nil, fmt.Errorf("failed to create node %q: %w", m.NodeID, err)
			}
		}

		for _, edge := range edges {
			if _, err := tx.Run(ctx,
				`MATCH (a:Endpoint {infrastructure: $infra, node_id: $a})
				 MATCH (b:Endpoint {infrastructure: $infra, node_id: $b})
				 CREATE (a)-[:LINKED_BY {link: $link}]->(b)`,
				map[string]any{"infra": infraName, "a": edge.A, "b": edge.B, "link": edge.Link}); err != nil {
				return nil, fmt.Errorf("failed to create edge %s-%s: %w", edge.A, edge.B, err)
			}
		}
		return nil, nil
	})
	return err
}
