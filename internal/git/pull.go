package git

import (
	"context"
	"fmt"

	gflowerrors "gflow.dev/gflow/internal/errors"
)

// FastForward advances the currently checked-out branch to its remote
// counterpart, refusing to create a merge commit. A branch that cannot be
// fast-forwarded has diverged from the remote and is reported as
// ErrDivergedHistory so the caller can decide between rebase and manual
// resolution.
func FastForward(ctx context.Context, remote, branch string) error {
	_, err := RunGitCommandWithContext(ctx, "merge", "--ff-only", remote+"/"+branch)
	if err != nil {
		return fmt.Errorf("pull of %s from %s: %w", branch, remote, gflowerrors.ErrDivergedHistory)
	}
	return nil
}

// Rebase rebases the currently checked-out branch onto the given upstream ref
func Rebase(ctx context.Context, upstream string) error {
	_, err := RunGitCommandWithContext(ctx, "rebase", upstream)
	if err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w", upstream, err)
	}
	return nil
}
