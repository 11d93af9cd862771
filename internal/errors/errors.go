// Package errors provides sentinel errors and custom error types for the gflow application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotInitialized indicates that the repository has not been set up for the workflow
	ErrNotInitialized = errors.New("workflow not initialized")

	// ErrBranchExists indicates that a branch with the requested name already exists
	ErrBranchExists = errors.New("branch already exists")

	// ErrNoMatch indicates that no branch matched the given name or prefix
	ErrNoMatch = errors.New("no matching branch")

	// ErrAmbiguousMatch indicates that more than one branch matched the given prefix
	ErrAmbiguousMatch = errors.New("ambiguous branch prefix")

	// ErrInvalidBase indicates that the requested base is not a valid commit on the category base branch
	ErrInvalidBase = errors.New("invalid base")

	// ErrDirtyWorkingTree indicates that the working tree has uncommitted changes
	ErrDirtyWorkingTree = errors.New("working tree is dirty")

	// ErrMergeConflict indicates that a merge stopped on conflicts
	ErrMergeConflict = errors.New("merge conflict")

	// ErrRemoteRejected indicates that the remote rejected a non-fast-forward push
	ErrRemoteRejected = errors.New("push rejected by remote")

	// ErrRemoteNotFound indicates that the remote branch does not exist
	ErrRemoteNotFound = errors.New("remote branch not found")

	// ErrDivergedHistory indicates that local and remote history have diverged
	ErrDivergedHistory = errors.New("local and remote history diverged")

	// ErrUnmergedChanges indicates that a branch still carries commits missing from its target
	ErrUnmergedChanges = errors.New("branch has unmerged changes")

	// ErrTagExists indicates that the version tag for a release already exists
	ErrTagExists = errors.New("tag already exists")

	// ErrCategoryBranchExists indicates that another branch of a single-active category is in progress
	ErrCategoryBranchExists = errors.New("category branch already in progress")

	// ErrOperationNotAllowed indicates an operation the category policy does not permit
	ErrOperationNotAllowed = errors.New("operation not allowed for this category")
)

// BranchExistsError reports an attempt to start a branch that is already present.
type BranchExistsError struct {
	BranchName string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("branch %s already exists", e.BranchName)
}

// Is returns true if the target error is ErrBranchExists
func (e *BranchExistsError) Is(target error) bool {
	return target == ErrBranchExists
}

// NewBranchExistsError creates a new BranchExistsError
func NewBranchExistsError(branchName string) *BranchExistsError {
	return &BranchExistsError{BranchName: branchName}
}

// NoMatchError reports that a name or prefix resolved to no branch of a category.
type NoMatchError struct {
	Category string
	Prefix   string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("there is no %s branch matching %q", e.Category, e.Prefix)
}

// Is returns true if the target error is ErrNoMatch
func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// NewNoMatchError creates a new NoMatchError
func NewNoMatchError(category, prefix string) *NoMatchError {
	return &NoMatchError{Category: category, Prefix: prefix}
}

// AmbiguousMatchError reports that a prefix matched more than one branch,
// carrying the full candidate list so the caller can disambiguate.
type AmbiguousMatchError struct {
	Category   string
	Prefix     string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple %s branches match %q: %s",
		e.Category, e.Prefix, strings.Join(e.Candidates, ", "))
}

// Is returns true if the target error is ErrAmbiguousMatch
func (e *AmbiguousMatchError) Is(target error) bool {
	return target == ErrAmbiguousMatch
}

// NewAmbiguousMatchError creates a new AmbiguousMatchError
func NewAmbiguousMatchError(category, prefix string, candidates []string) *AmbiguousMatchError {
	return &AmbiguousMatchError{Category: category, Prefix: prefix, Candidates: candidates}
}

// InvalidBaseError reports a base that is not a valid commit on the category base branch.
type InvalidBaseError struct {
	Base       string
	BaseBranch string
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("given base %q is not a valid commit on %q", e.Base, e.BaseBranch)
}

// Is returns true if the target error is ErrInvalidBase
func (e *InvalidBaseError) Is(target error) bool {
	return target == ErrInvalidBase
}

// NewInvalidBaseError creates a new InvalidBaseError
func NewInvalidBaseError(base, baseBranch string) *InvalidBaseError {
	return &InvalidBaseError{Base: base, BaseBranch: baseBranch}
}

// MergeConflictError reports a merge that stopped on conflicts. Target is the
// branch that was checked out when the merge ran; the working tree is left on
// it with the conflict markers in place.
type MergeConflictError struct {
	Target string
	Branch string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merging %s into %s produced conflicts; resolve them, commit, and re-run finish", e.Branch, e.Target)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(target, branch string) *MergeConflictError {
	return &MergeConflictError{Target: target, Branch: branch}
}

// UnmergedChangesError reports a delete refused because the branch is not
// merged into its integration target.
type UnmergedChangesError struct {
	BranchName string
	Target     string
}

func (e *UnmergedChangesError) Error() string {
	return fmt.Sprintf("branch %s is not merged into %s; use --force to delete anyway", e.BranchName, e.Target)
}

// Is returns true if the target error is ErrUnmergedChanges
func (e *UnmergedChangesError) Is(target error) bool {
	return target == ErrUnmergedChanges
}

// NewUnmergedChangesError creates a new UnmergedChangesError
func NewUnmergedChangesError(branchName, target string) *UnmergedChangesError {
	return &UnmergedChangesError{BranchName: branchName, Target: target}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
