package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servak/infragraph/internal/codec"
	neo4jexport "github.com/servak/infragraph/internal/export/neo4j"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

var exportNeo4jCmd = &cobra.Command{
	Use:   "export-neo4j <document.yaml>",
	Short: "Compile a document and export its graph to Neo4j",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportNeo4j,
}

func init() {
	rootCmd.AddCommand(exportNeo4jCmd)
}

func runExportNeo4j(cmd *cobra.Command, args []string) error {
	infra, err := codec.DeserializeFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	if !cfg.Neo4j.Enabled {
		return fmt.Errorf("neo4j export is disabled; set neo4j.enabled: true in the config file")
	}
	log := logger.New(cfg.LogLevel)

	compiler := service.New(log)
	ctx := context.Background()
	if _, err := compiler.Compile(ctx, infra); err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	exporter, err := neo4jexport.New(ctx, &neo4jexport.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}
	defer exporter.Close(ctx)

	nodes, edges, err := compiler.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read compiled graph: %w", err)
	}
	if err := exporter.Export(ctx, infra.Name, nodes, edges); err != nil {
		return fmt.Errorf("failed to export to neo4j: %w", err)
	}

	fmt.Fprintf(os.Stdout, "exported %q: %d nodes, %d edges\n", infra.Name, len(nodes), len(edges))
	return nil
}
