package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/games-hub/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game registered in the hub with its id and a short description.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeGameList(cmd.OutOrStdout(), registry.List())
	},
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

// writeGameList renders games as a bordered id/title/description table.
func writeGameList(w io.Writer, games []registry.GameInfo) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games registered.")
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "TITLE", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, g := range games {
		t.Row(g.ID, g.Title, g.Description)
	}

	_, err := fmt.Fprintf(w, "%s\nStart one with: hub play <id>\n", t.Render())
	return err
}
