package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servak/infragraph/internal/codec"
	"github.com/servak/infragraph/internal/config"
	"github.com/servak/infragraph/internal/service"
	"github.com/servak/infragraph/pkg/logger"
)

var compileCmd = &cobra.Command{
	Use:   "compile <document.yaml>",
	Short: "Compile a declarative infrastructure document into a graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

var validateCmd = &cobra.Command{
	Use:   "validate <document.yaml>",
	Short: "Compile a document and report errors/warnings without further action",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
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
	warnings, err := compiler.Compile(context.Background(), infra)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "compiled %q: %d nodes, %d edges\n", infra.Name, compiler.NodeCount(), compiler.EdgeCount())
	for _, w := range warnings {
		fmt.Fprintf(os.Stdout, "warning: %s\n", w.String())
	}
	return nil
}

func loadConfigOrDefault() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(configPath)
}
