package git

import (
	"context"
	"fmt"
)

// CreateBranch creates a new branch at the given starting ref without
// checking it out
func CreateBranch(ctx context.Context, branchName, from string) error {
	_, err := RunGitCommandWithContext(ctx, "branch", branchName, from)
	if err != nil {
		return fmt.Errorf("failed to create branch %s from %s: %w", branchName, from, err)
	}
	return nil
}

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch deletes a branch. Without force, git refuses to delete a
// branch that is not merged into its upstream or HEAD.
func DeleteBranch(ctx context.Context, branchName string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := RunGitCommandWithContext(ctx, "branch", flag, branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// CheckoutTracking creates a local branch tracking the remote branch of the
// same name and checks it out
func CheckoutTracking(ctx context.Context, remote, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", "-b", branchName, "--track", remote+"/"+branchName)
	if err != nil {
		return fmt.Errorf("failed to track %s/%s: %w", remote, branchName, err)
	}
	return nil
}
