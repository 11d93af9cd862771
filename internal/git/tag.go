package git

import (
	"context"
	"fmt"
)

// CreateTag creates an annotated (optionally signed) tag on the given ref
func CreateTag(ctx context.Context, name, ref, message string, sign bool) error {
	if message == "" {
		message = name
	}
	args := []string{"tag"}
	if sign {
		args = append(args, "-s")
	} else {
		args = append(args, "-a")
	}
	args = append(args, "-m", message, name, ref)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to create tag %s on %s: %w", name, ref, err)
	}
	return nil
}

// TagExists reports whether a tag with the given name exists
func TagExists(ctx context.Context, name string) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "tag", "--list", name)
	if err != nil {
		return false, err
	}
	return output != "", nil
}
