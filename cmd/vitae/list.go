package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/vitae/internal/app"
	"github.com/MrSnakeDoc/vitae/internal/render"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(render.ColorAccent)).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(render.ColorGray))
)

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, log := setup()
	defer func() { _ = log.Sync() }()

	backend, err := app.OpenStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	summaries, err := backend.Store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}
	if len(summaries) == 0 {
		cmd.Println("No resumes stored yet.")
		return nil
	}
	cmd.Println(summaryTable(summaries))
	return nil
}

func summaryTable(summaries []store.Summary) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("FILENAME", "NAME", "MODIFIED")
	for _, s := range summaries {
		t.Row(s.ID, s.Name, s.Modified.Format(store.ModifiedLayout))
	}
	return t.String()
}
