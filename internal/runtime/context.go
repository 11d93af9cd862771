// Package runtime provides a context type that holds the git runner and
// logger for use throughout the application. This avoids passing multiple
// parameters.
package runtime

import (
	"fmt"

	"gflow.dev/gflow/internal/git"
	"gflow.dev/gflow/internal/tui"
)

// Context provides access to the git runner and output for commands
type Context struct {
	Runner   git.Runner
	Splog    *tui.Splog
	RepoRoot string
}

// NewContext creates a new context with the given runner
func NewContext(runner git.Runner) *Context {
	return &Context{
		Runner: runner,
		Splog:  tui.NewSplog(),
	}
}

// NewContextWithRepoRoot creates a new context with the given runner and repo root
func NewContextWithRepoRoot(runner git.Runner, repoRoot string) *Context {
	ctx := NewContext(runner)
	ctx.RepoRoot = repoRoot
	return ctx
}

// GetContext builds the real-runner context for the working repository.
// It fails when the current directory is not inside a git repository;
// workflow initialization is checked later, when a topology is resolved.
func GetContext() (*Context, error) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
	}

	return &Context{
		Runner:   git.NewRealRunner(),
		Splog:    splog,
		RepoRoot: repoRoot,
	}, nil
}
