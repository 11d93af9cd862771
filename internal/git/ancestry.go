package git

import (
	"context"
	"fmt"
)

// IsAncestor reports whether ancestor is reachable from descendant
func IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	// Exit code 1 is git's "no" answer, not a failure
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("ancestor check for %s on %s failed: %w", ancestor, descendant, err)
}

// IsMergedInto reports whether every commit of branch is already contained
// in target
func IsMergedInto(ctx context.Context, branch, target string) (bool, error) {
	branchRev, err := RunGitCommandWithContext(ctx, "rev-parse", branch)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", branch, err)
	}
	return IsAncestor(ctx, branchRev, target)
}
