package git

import (
	"context"
)

// IsCleanWorkingTree reports whether the working tree and index carry no
// uncommitted changes. Untracked files do not count as dirty.
func IsCleanWorkingTree(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return output == "", nil
}
