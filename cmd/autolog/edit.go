package main

import (
	"context"
	"fmt"
	"time"

	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/git"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"
)

func runEdit(cmd *cobra.Command, args []string) error {
	hours, _ := cmd.Flags().GetFloat64("hours")
	day, _ := cmd.Flags().GetInt("day")
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")
	on, _ := cmd.Flags().GetString("on")
	namespace, _ := cmd.Flags().GetString("namespace")

	now := time.Now()
	if on != "" {
		when, err := naturaldate.Parse(on, now, naturaldate.WithDirection(naturaldate.Past))
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", on, err)
		}
		day, month, year = when.Day(), int(when.Month()), when.Year()
	}
	if day == 0 {
		day = now.Day()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	runner := git.NewRunner(newLogger())

	ci, ri, err := resolveTarget(ctx, runner, doc, namespace)
	if err != nil {
		return notFoundHint(err)
	}

	repo := &doc[ci].Repositories[ri]
	if err := repo.Timesheet.SetHours(hours, day, month, year); err != nil {
		return fmt.Errorf("editing %s: %w", repo.DisplayNamespace(), err)
	}

	// a single-repository record replaces only this repository within
	// the client entry, leaving siblings untouched
	record := document.ClientRepositories{
		Client:           doc[ci].Client,
		User:             doc[ci].User,
		Repositories:     []document.Repository{*repo},
		RequiresApproval: doc[ci].RequiresApproval,
		Approver:         doc[ci].Approver,
	}
	doc = document.Upsert(doc, record)

	if err := st.Save(doc); err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render(fmt.Sprintf(
		"Set %v hours on %d %s %d for %s", hours, day, time.Month(month), year, repo.DisplayNamespace())))
	return nil
}
