package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/vitae/internal/app"
	"github.com/MrSnakeDoc/vitae/internal/domain"
	"github.com/MrSnakeDoc/vitae/internal/render"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

var renderCmd = &cobra.Command{
	Use:   "render <filename>",
	Short: "Export a stored resume to PDF or HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderFormat string
	renderOut    string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "pdf", "Output format: pdf or html")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output path (defaults to the export filename)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(renderFormat)
	if format != "pdf" && format != "html" {
		return fmt.Errorf("unknown format %q, want pdf or html", renderFormat)
	}

	cfg, log := setup()
	defer func() { _ = log.Sync() }()

	backend, err := app.OpenStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	id, err := store.NormalizeID(args[0])
	if err != nil {
		return err
	}
	doc, err := backend.Store.Load(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to load resume '%s': %w", id, err)
	}

	body, err := renderDocument(cmd.Context(), render.New(app.NewEngine(cfg), log), doc, format)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" {
		out = domain.ExportName(id, doc.Basics.Name, "."+format)
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	cmd.Printf("✅ %s written (%d bytes)\n", out, len(body))
	return nil
}

func renderDocument(ctx context.Context, r *render.Renderer, doc *domain.Resume, format string) ([]byte, error) {
	if format == "html" {
		return r.HTML(ctx, doc)
	}
	return r.PDF(ctx, doc)
}
