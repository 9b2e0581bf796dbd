package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/vitae/internal/app"
	"github.com/MrSnakeDoc/vitae/internal/store"
	"github.com/MrSnakeDoc/vitae/internal/store/file"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Copy the JSON resumes of a directory into the configured store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importOverwrite bool

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace resumes that already exist in the store")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log := setup()
	defer func() { _ = log.Sync() }()

	src, err := file.New(args[0], log)
	if err != nil {
		return err
	}
	backend, err := app.OpenStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	res, err := store.Copy(cmd.Context(), src, backend.Store, importOverwrite, log)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.Printf("✅ %d imported, %d skipped\n", res.Copied, res.Skipped)
	return nil
}
