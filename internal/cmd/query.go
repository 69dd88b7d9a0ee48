package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servak/infragraph/internal/cgraph"
	"github.com/servak/infragraph/internal/codec"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

var (
	queryAttr  string
	queryValue string
	queryOp    string
)

var queryCmd = &cobra.Command{
	Use:   "query <document.yaml>",
	Short: "Compile a document and run a single attribute filter against it",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryAttr, "attr", "", "attribute name to filter on")
	queryCmd.Flags().StringVar(&queryValue, "value", "", "value to compare against")
	queryCmd.Flags().StringVar(&queryOp, "op", "EQ", "operator: EQ, CONTAINS, or REGEX")
}

func runQuery(cmd *cobra.Command, args []string) error {
	infra, err := codec.DeserializeFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	compiler := service.New(log)
	if _, err := compiler.Compile(context.Background(), infra); err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	var filters []cgraph.Filter
	if queryAttr != "" {
		filters = append(filters, cgraph.Filter{
			Kind:      cgraph.FilterAttribute,
			Attribute: queryAttr,
			Operator:  cgraph.FilterOperator(queryOp),
			Value:     queryValue,
		})
	}

	matches, err := compiler.Query(context.Background(), filters)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}
