package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gflowerrors "gflow.dev/gflow/internal/errors"
)

// DefaultRemote is the remote branches are published to and tracked from
const DefaultRemote = "origin"

// Push pushes a refspec to the remote without forcing. A rejected
// non-fast-forward push is reported as ErrRemoteRejected.
func Push(ctx context.Context, remote, refspec string) error {
	_, err := RunGitCommandWithContext(ctx, "push", remote, refspec)
	if err != nil {
		if isNonFastForwardRejection(err) {
			return fmt.Errorf("push of %s to %s: %w", refspec, remote, gflowerrors.ErrRemoteRejected)
		}
		return fmt.Errorf("failed to push %s to %s: %w", refspec, remote, err)
	}
	return nil
}

// isNonFastForwardRejection inspects a push failure for git's rejection
// wording. Anything else is treated as an engine failure.
func isNonFastForwardRejection(err error) bool {
	var cmdErr *gflowerrors.GitCommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	combined := cmdErr.Stderr + cmdErr.Stdout
	return strings.Contains(combined, "non-fast-forward") ||
		strings.Contains(combined, "[rejected]") ||
		strings.Contains(combined, "fetch first")
}

// Fetch fetches a ref (or everything, when ref is empty) from the remote
func Fetch(ctx context.Context, remote, ref string) error {
	args := []string{"fetch", remote}
	if ref != "" {
		args = append(args, ref)
	}
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}
	return nil
}

// RemoteBranchExists reports whether the remote has a branch with the given name
func RemoteBranchExists(ctx context.Context, remote, name string) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "ls-remote", "--heads", remote, name)
	if err != nil {
		return false, fmt.Errorf("failed to query %s for branch %s: %w", remote, name, err)
	}
	return output != "", nil
}
