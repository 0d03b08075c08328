// Package git shells out to the git binary for the handful of facts
// autolog needs: the repository's top level, the configured author
// identity, and the raw commit log for that author.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"
)

// ErrNoNamespace is returned when a git path does not contain a
// recognisable project directory name.
var ErrNoNamespace = errors.New("no namespace found in git path")

// Runner executes git commands against a repository.
type Runner struct {
	logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// IsRepository checks whether path lies inside a git work tree.
func IsRepository(path string) bool {
	return exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree").Run() == nil
}

func (r *Runner) output(ctx context.Context, args ...string) (string, error) {
	r.logger.Debug("running git", "args", args)
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// GitPath resolves the repository's .git directory from any path inside
// the work tree.
func (r *Runner) GitPath(ctx context.Context, repoPath string) (string, error) {
	top, err := r.output(ctx, "-C", repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("finding repository top level: %w", err)
	}
	return top + "/.git/", nil
}

// UserName reads the configured user.name for the repository.
func (r *Runner) UserName(ctx context.Context, repoPath string) (string, error) {
	name, err := r.output(ctx, "-C", repoPath, "config", "user.name")
	if err != nil {
		return "", fmt.Errorf("reading user.name: %w", err)
	}
	return name, nil
}

// UserEmail reads the configured user.email for the repository.
func (r *Runner) UserEmail(ctx context.Context, repoPath string) (string, error) {
	email, err := r.output(ctx, "-C", repoPath, "config", "user.email")
	if err != nil {
		return "", fmt.Errorf("reading user.email: %w", err)
	}
	return email, nil
}

// Log returns the raw log text for every commit by author across all
// branches, with RFC-2822 dates as expected by the timesheet parser.
func (r *Runner) Log(ctx context.Context, gitPath, author string) (string, error) {
	out, err := exec.CommandContext(ctx,
		"git", "-C", gitPath, "log", "--date=rfc", "--author="+author, "--all",
	).Output()
	if err != nil {
		return "", fmt.Errorf("reading git log for %s: %w", author, err)
	}
	return string(out), nil
}

var namespacePattern = regexp.MustCompile(`(?P<namespace>[^/][\w()_\-,.]+)/\.git/`)

// NamespaceFromGitPath derives the project name from the directory
// containing .git.
func NamespaceFromGitPath(gitPath string) (string, error) {
	match := namespacePattern.FindStringSubmatch(gitPath)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrNoNamespace, gitPath)
	}
	return match[namespacePattern.SubexpIndex("namespace")], nil
}
