package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/autolog-dev/autolog/internal/config"
	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/git"
	"github.com/autolog-dev/autolog/internal/store"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "autolog",
	Short:         "Timesheets generated from your commit history",
	Long:          "autolog derives per-day worked hours from git history, groups repositories under clients, and shares generated month sheets via expiring links.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Onboard a repository and generate its first timesheet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var makeCmd = &cobra.Command{
	Use:   "make",
	Short: "Regenerate timesheets and share a month sheet",
	RunE:  runMake,
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Set the hours worked for a single day",
	RunE:  runEdit,
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a repository or an entire client",
	RunE:  runRemove,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update client, user or repository details",
	RunE:  runUpdate,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients and their repositories",
	RunE:  runList,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	makeCmd.Flags().Int("month", 0, "Month to render (1-12, defaults to the current month)")
	makeCmd.Flags().Int("year", 0, "Year to render (defaults to the current year)")

	editCmd.Flags().Float64("hours", 0, "Hours worked (0-8)")
	editCmd.Flags().Int("day", 0, "Day of month (defaults to today)")
	editCmd.Flags().Int("month", 0, "Month (defaults to the current month)")
	editCmd.Flags().Int("year", 0, "Year (defaults to the current year)")
	editCmd.Flags().String("on", "", "Natural-language date, e.g. \"last tuesday\"")
	editCmd.Flags().String("namespace", "", "Repository namespace (defaults to the repository at the current directory)")
	_ = editCmd.MarkFlagRequired("hours")

	removeCmd.Flags().String("client", "", "Client name")
	removeCmd.Flags().String("namespace", "", "Repository namespace")

	updateCmd.Flags().String("client", "", "Client name")
	updateCmd.Flags().String("namespace", "", "Repository namespace")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(makeCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !cfg.TestMode {
		if err := config.EnsureConfigDir(); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	path, err := cfg.DocumentPath()
	if err != nil {
		return nil, fmt.Errorf("resolving document path: %w", err)
	}
	return store.New(path), nil
}

// loadDocument reads the persisted document; a nil document means no
// repository has been onboarded yet.
func loadDocument(cfg *config.Config) (*store.Store, document.Document, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	doc, err := st.Load()
	if err != nil {
		return nil, nil, err
	}
	return st, doc, nil
}

// confirm asks a destructive yes/no question, except in test mode where
// prompts are suppressed and the answer is always yes.
func confirm(cfg *config.Config, question string) (bool, error) {
	if cfg.TestMode {
		return true, nil
	}
	return tui.Confirm(question)
}

// resolveCwdRepository locates the current directory's repository in the
// document, trying the working directory path first and the git top
// level second.
func resolveCwdRepository(ctx context.Context, runner *git.Runner, doc document.Document) (clientIdx, repoIdx int, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return -1, -1, fmt.Errorf("finding working directory: %w", err)
	}

	if ci, ri, err := doc.Resolve(document.LookupByPath(cwd)); err == nil {
		return ci, ri, nil
	}

	gitPath, err := runner.GitPath(ctx, cwd)
	if err != nil {
		return -1, -1, err
	}
	return doc.Resolve(document.LookupByPath(gitPath))
}

// resolveTarget picks a repository by --namespace when given, otherwise
// by the current directory.
func resolveTarget(ctx context.Context, runner *git.Runner, doc document.Document, namespace string) (clientIdx, repoIdx int, err error) {
	if namespace != "" {
		return doc.Resolve(document.LookupByNamespace(namespace))
	}
	return resolveCwdRepository(ctx, runner, doc)
}

func notFoundHint(err error) error {
	if errors.Is(err, document.ErrNotFound) {
		return fmt.Errorf("client or repository not found — run 'autolog list' to see what is tracked: %w", err)
	}
	return err
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	return abs, nil
}
