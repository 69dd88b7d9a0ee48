package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/servak/infragraph/internal/docstore/postgres"
)

var saveDocumentCmd = &cobra.Command{
	Use:   "save-document <name> <document.yaml>",
	Short: "Persist a declaration document's raw bytes to the document store",
	Args:  cobra.ExactArgs(2),
	RunE:  runSaveDocument,
}

var loadDocumentCmd = &cobra.Command{
	Use:   "load-document <name>",
	Short: "Print the most recently stored revision of a named document",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadDocument,
}

func init() {
	rootCmd.AddCommand(saveDocumentCmd)
	rootCmd.AddCommand(loadDocumentCmd)
}

// openDocstore loads the config and opens a connection to the document
// store, refusing to dial Postgres unless docstore.enabled is set.
func openDocstore(ctx context.Context) (*postgres.Store, error) {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return nil, err
	}
	if !cfg.Docstore.Enabled {
		return nil, fmt.Errorf("document store is disabled; set docstore.enabled: true in the config file")
	}
	return postgres.Open(ctx, cfg.Docstore.DSN)
}

func runSaveDocument(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	ctx := context.Background()
	store, err := openDocstore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	revision, err := store.Put(ctx, name, body)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	fmt.Fprintf(os.Stdout, "saved %q as revision %s\n", name, revision)
	return nil
}

func runLoadDocument(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctx := context.Background()
	store, err := openDocstore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := store.Latest(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	_, err = os.Stdout.Write(doc.Body)
	return err
}
