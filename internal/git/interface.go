package git

import "context"

// Runner defines the version-control primitives the workflow layer consumes.
// Every primitive is synchronous and returns a definite outcome; mutating
// primitives each touch exactly one logical piece of repository state. This
// allows the workflow to be exercised against both real git and fake
// implementations.
type Runner interface {
	// Repository and config
	RepoRoot() (string, error)
	GetConfig(key string) (string, error)
	LookupConfig(key string) (string, bool, error)
	SetConfig(key, value string) error

	// Branch queries
	CurrentBranch() (string, error)
	LocalBranches() ([]string, error)
	BranchExists(name string) (bool, error)
	IsCleanWorkingTree(ctx context.Context) (bool, error)

	// Branch mutations
	CreateBranch(ctx context.Context, name, from string) error
	Checkout(ctx context.Context, name string) error
	DeleteBranch(ctx context.Context, name string, force bool) error

	// Merging and tagging
	Merge(ctx context.Context, from, message string) error
	MergeInProgress(ctx context.Context) (bool, error)
	HasMergeConflicts(ctx context.Context) (bool, error)
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)
	IsMergedInto(ctx context.Context, branch, target string) (bool, error)
	CreateTag(ctx context.Context, name, ref, message string, sign bool) error
	TagExists(ctx context.Context, name string) (bool, error)

	// Remote operations
	Push(ctx context.Context, remote, refspec string) error
	Fetch(ctx context.Context, remote, ref string) error
	RemoteBranchExists(ctx context.Context, remote, name string) (bool, error)
	CheckoutTracking(ctx context.Context, remote, name string) error
	FastForward(ctx context.Context, remote, branch string) error
	Rebase(ctx context.Context, upstream string) error
}

// NewRealRunner returns a standard implementation of Runner that calls
// the package-level git functions.
func NewRealRunner() Runner {
	return &realRunner{}
}

// realRunner implements Runner by calling the actual git package functions
type realRunner struct{}

func (r *realRunner) RepoRoot() (string, error) {
	return GetRepoRoot()
}

func (r *realRunner) GetConfig(key string) (string, error) {
	return GetConfig(key)
}

func (r *realRunner) LookupConfig(key string) (string, bool, error) {
	return LookupConfig(key)
}

func (r *realRunner) SetConfig(key, value string) error {
	return SetConfig(key, value)
}

func (r *realRunner) CurrentBranch() (string, error) {
	return GetCurrentBranch()
}

func (r *realRunner) LocalBranches() ([]string, error) {
	return GetAllBranchNames()
}

func (r *realRunner) BranchExists(name string) (bool, error) {
	return BranchExists(name)
}

func (r *realRunner) IsCleanWorkingTree(ctx context.Context) (bool, error) {
	return IsCleanWorkingTree(ctx)
}

func (r *realRunner) CreateBranch(ctx context.Context, name, from string) error {
	return CreateBranch(ctx, name, from)
}

func (r *realRunner) Checkout(ctx context.Context, name string) error {
	return CheckoutBranch(ctx, name)
}

func (r *realRunner) DeleteBranch(ctx context.Context, name string, force bool) error {
	return DeleteBranch(ctx, name, force)
}

func (r *realRunner) Merge(ctx context.Context, from, message string) error {
	return Merge(ctx, from, message)
}

func (r *realRunner) MergeInProgress(ctx context.Context) (bool, error) {
	return MergeInProgress(ctx)
}

func (r *realRunner) HasMergeConflicts(ctx context.Context) (bool, error) {
	return HasMergeConflicts(ctx)
}

func (r *realRunner) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	return IsAncestor(ctx, ancestor, descendant)
}

func (r *realRunner) IsMergedInto(ctx context.Context, branch, target string) (bool, error) {
	return IsMergedInto(ctx, branch, target)
}

func (r *realRunner) CreateTag(ctx context.Context, name, ref, message string, sign bool) error {
	return CreateTag(ctx, name, ref, message, sign)
}

func (r *realRunner) TagExists(ctx context.Context, name string) (bool, error) {
	return TagExists(ctx, name)
}

func (r *realRunner) Push(ctx context.Context, remote, refspec string) error {
	return Push(ctx, remote, refspec)
}

func (r *realRunner) Fetch(ctx context.Context, remote, ref string) error {
	return Fetch(ctx, remote, ref)
}

func (r *realRunner) RemoteBranchExists(ctx context.Context, remote, name string) (bool, error) {
	return RemoteBranchExists(ctx, remote, name)
}

func (r *realRunner) CheckoutTracking(ctx context.Context, remote, name string) error {
	return CheckoutTracking(ctx, remote, name)
}

func (r *realRunner) FastForward(ctx context.Context, remote, branch string) error {
	return FastForward(ctx, remote, branch)
}

func (r *realRunner) Rebase(ctx context.Context, upstream string) error {
	return Rebase(ctx, upstream)
}
