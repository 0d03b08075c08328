package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/autolog-dev/autolog/internal/config"
	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/git"
	"github.com/autolog-dev/autolog/internal/share"
	"github.com/autolog-dev/autolog/internal/timesheet"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/spf13/cobra"
)

// regenerateClient recomputes worked-day indexes and timesheets for every
// repository under the client. Both passes run over all repositories
// because the fairness split for any one depends on every sibling's
// worked days.
func regenerateClient(ctx context.Context, runner *git.Runner, entry *document.ClientRepositories) error {
	for i := range entry.Repositories {
		repo := &entry.Repositories[i]
		history, err := runner.Log(ctx, repo.GitPath, repo.Name)
		if err != nil {
			return err
		}
		index, err := timesheet.ParseWorkedDays(history)
		if err != nil {
			return fmt.Errorf("repository %s: %w", repo.DisplayNamespace(), err)
		}
		repo.WorkedDays = index
	}

	for i := range entry.Repositories {
		repo := &entry.Repositories[i]
		adjacent := make([]timesheet.WorkedDayIndex, 0, len(entry.Repositories)-1)
		for j := range entry.Repositories {
			if j != i {
				adjacent = append(adjacent, entry.Repositories[j].WorkedDays)
			}
		}
		repo.Timesheet = timesheet.Assemble(repo.WorkedDays, adjacent, repo.Timesheet)
	}

	return nil
}

func runMake(cmd *cobra.Command, args []string) error {
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")

	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if err := timesheet.ValidateDate(year, month, 1); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		return errors.New("no repositories initialised — run 'autolog init' first")
	}

	ctx := context.Background()
	runner := git.NewRunner(newLogger())

	ci, ri, err := resolveCwdRepository(ctx, runner, doc)
	if err != nil {
		return notFoundHint(err)
	}

	fmt.Println(tui.DimStyle.Render(
		fmt.Sprintf("Generating timesheet for %s %d...", time.Month(month), year)))

	if err := regenerateClient(ctx, runner, &doc[ci]); err != nil {
		return err
	}

	doc = document.Upsert(doc, doc[ci])
	if err := st.Save(doc); err != nil {
		return err
	}

	repo := &doc[ci].Repositories[ri]
	sheet := repo.Timesheet.Month(year, month)
	if sheet == nil {
		return fmt.Errorf("no activity for %s in %s %d: %w",
			repo.DisplayNamespace(), time.Month(month), year, timesheet.ErrMonthNotFound)
	}

	fmt.Println(renderMonth(repo, year, month, sheet))

	return publishSheet(cfg, repo, year, month, sheet)
}

// publishSheet stores the rendered month under a short expiring path and
// prints the share location.
func publishSheet(cfg *config.Config, repo *document.Repository, year, month int, sheet timesheet.MonthSheet) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	db, err := share.Open(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	payload, err := json.Marshal(struct {
		Namespace string               `json:"namespace"`
		Client    string               `json:"client_name"`
		User      string               `json:"name"`
		Year      int                  `json:"year"`
		Month     int                  `json:"month"`
		Sheet     timesheet.MonthSheet `json:"timesheet"`
	}{repo.DisplayNamespace(), repo.ClientName, repo.Name, year, month, sheet})
	if err != nil {
		return fmt.Errorf("encoding share payload: %w", err)
	}

	ttl := time.Duration(cfg.Share.TTLMinutes) * time.Minute
	path, err := db.Publish(repo.DisplayNamespace(), payload, ttl)
	if err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf(
		"Timesheet now available for %d minutes @ %s/%s \U0001F389",
		cfg.Share.TTLMinutes, cfg.Share.BaseURL, path)))
	return nil
}
