package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servak/infragraph/internal/codec"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

var pathCmd = &cobra.Command{
	Use:   "shortest-path <document.yaml> <src> <dst>",
	Short: "Compile a document and report the shortest path between two node ids",
	Args:  cobra.ExactArgs(3),
	RunE:  runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
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

	path, err := compiler.ShortestPath(context.Background(), args[1], args[2])
	if err != nil {
		return fmt.Errorf("shortest path failed: %w", err)
	}

	fmt.Println(strings.Join(path, " -> "))
	return nil
}
