package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Merge merges the given branch into the currently checked-out branch,
// always recording an explicit merge commit. The caller is responsible for
// checking out the target branch first. A conflicted merge returns an error;
// use HasMergeConflicts to distinguish conflicts from other failures.
func Merge(ctx context.Context, from, message string) error {
	args := []string{"merge", "--no-ff"}
	if message != "" {
		args = append(args, "-m", message)
	}
	args = append(args, from)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to merge %s: %w", from, err)
	}
	return nil
}

// MergeInProgress reports whether the repository has an unconcluded merge
// (MERGE_HEAD present)
func MergeInProgress(ctx context.Context) (bool, error) {
	gitDir, err := RunGitCommandWithContext(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return false, err
	}
	_, statErr := os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	if statErr == nil {
		return true, nil
	}
	if os.IsNotExist(statErr) {
		return false, nil
	}
	return false, statErr
}

// HasMergeConflicts reports whether the index currently holds unmerged paths
func HasMergeConflicts(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "ls-files", "--unmerged")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// MergeAbort aborts an in-progress merge
func MergeAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "merge", "--abort")
	if err != nil {
		return fmt.Errorf("merge abort failed: %w", err)
	}
	return nil
}
