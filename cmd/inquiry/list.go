package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/jothom/inquiry/internal/store"
	"github.com/jothom/inquiry/internal/tui/theme"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored inquiries",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	inquiries, err := b.List(ctx)
	if err != nil {
		return fmt.Errorf("listing inquiries: %w", err)
	}
	if len(inquiries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No inquiries stored yet.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(inquiries))
	return nil
}

// renderTable lays inquiries out as a bordered table, oldest first.
func renderTable(inquiries []store.Inquiry) string {
	t := theme.Current()
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)).Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderDefault))).
		Headers("ID", "SUBMITTED", "NAME", "PROJECT", "CITY", "BUDGET").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, inq := range inquiries {
		tbl.Row(
			inq.ID,
			inq.SubmittedAt.Local().Format(time.DateTime),
			inq.Record.FullName,
			inq.Record.ProjectType,
			inq.Record.CityTown,
			inq.Record.BudgetRange,
		)
	}
	return tbl.String()
}
