package main

import (
	"fmt"
	"time"

	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/timesheet"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// renderMonth lays out one month sheet as a table, one row per calendar
// day, with weekend rows dimmed and edited entries marked.
func renderMonth(repo *document.Repository, year, month int, sheet timesheet.MonthSheet) string {
	header := tui.HighlightStyle.Render(fmt.Sprintf(
		"%s — %s %d", repo.DisplayNamespace(), time.Month(month), year))

	weekendRows := make(map[int]bool, len(sheet))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Day", "Weekday", "Hours", "Edited")

	var total float64
	for i, entry := range sheet {
		day := i + 1
		weekday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()

		edited := ""
		if entry.UserEdited {
			edited = "*"
		}
		if entry.Weekend {
			weekendRows[i] = true
		}
		total += entry.Hours

		t.Row(
			fmt.Sprintf("%d", day),
			weekday.String(),
			fmt.Sprintf("%.2f", entry.Hours),
			edited,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tui.HighlightStyle
		}
		if weekendRows[row] {
			return tui.DimStyle
		}
		return lipgloss.NewStyle()
	})

	footer := fmt.Sprintf("Total: %.2f hours", total)
	if repo.ProjectNumber != "" {
		footer += tui.DimStyle.Render(fmt.Sprintf("  (project %s)", repo.ProjectNumber))
	}

	return header + "\n" + t.Render() + "\n" + footer
}

// renderDocument lays out every client and repository for `autolog list`.
func renderDocument(doc document.Document) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Client", "Namespace", "Repository path", "User")

	for _, entry := range doc {
		clientName := ""
		if entry.Client != nil {
			clientName = entry.Client.Name
		}
		userName := ""
		if entry.User != nil {
			userName = entry.User.Name
			if entry.User.IsAlias {
				userName += " (alias)"
			}
		}
		for i := range entry.Repositories {
			repo := &entry.Repositories[i]
			t.Row(clientName, repo.DisplayNamespace(), repo.RepoPath, userName)
		}
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tui.HighlightStyle
		}
		return lipgloss.NewStyle()
	})

	return t.Render()
}
