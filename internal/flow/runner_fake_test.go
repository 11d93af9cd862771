package flow_test

import (
	"context"
	"fmt"
	"sort"
	"strings"

	gflowerrors "gflow.dev/gflow/internal/errors"
	"gflow.dev/gflow/internal/git"
)

// fakeRunner is an in-memory git.Runner. Branches are modeled as commit
// sets; a branch is merged into another when its set is a subset. This is
// enough to exercise the whole lifecycle without a real repository.
type fakeRunner struct {
	current  string
	branches map[string]map[string]bool
	refs     map[string]map[string]bool
	remote   map[string]map[string]bool
	tags     map[string]bool
	config   map[string]string

	clean      bool
	inMerge    bool
	conflicted bool

	// conflicts maps "target<-from" to a pending conflict
	conflicts  map[string]bool
	rejectPush bool
	failTag    error

	// merges records performed merges as "from->target"
	merges  []string
	commits int
}

var _ git.Runner = (*fakeRunner)(nil)

// newFakeRunner creates a runner with the given branches, all sharing one
// root commit.
func newFakeRunner(branches ...string) *fakeRunner {
	f := &fakeRunner{
		branches:  make(map[string]map[string]bool),
		refs:      make(map[string]map[string]bool),
		remote:    make(map[string]map[string]bool),
		tags:      make(map[string]bool),
		config:    make(map[string]string),
		conflicts: make(map[string]bool),
		clean:     true,
	}
	for _, branch := range branches {
		f.branches[branch] = map[string]bool{"c0": true}
	}
	if len(branches) > 0 {
		f.current = branches[0]
	}
	return f
}

// commit adds a unique commit to a branch and returns its id
func (f *fakeRunner) commit(branch string) string {
	f.commits++
	id := fmt.Sprintf("c%d", f.commits)
	f.branches[branch][id] = true
	return id
}

// ref registers a named ref pointing at a copy of a branch's current history
func (f *fakeRunner) ref(name, branch string) {
	f.refs[name] = copySet(f.branches[branch])
}

// addRemote registers a remote branch with a copy of the given commit set
func (f *fakeRunner) addRemote(name string, commits map[string]bool) {
	f.remote[name] = copySet(commits)
}

// resolveMerge concludes a conflicted merge by hand, the way an operator
// resolves and commits
func (f *fakeRunner) resolveMerge(target, from string) {
	delete(f.conflicts, target+"<-"+from)
	for commit := range f.branches[from] {
		f.branches[target][commit] = true
	}
	f.commit(target)
	f.inMerge = false
	f.conflicted = false
}

func copySet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (f *fakeRunner) resolve(ref string) (map[string]bool, error) {
	if set, ok := f.branches[ref]; ok {
		return set, nil
	}
	if set, ok := f.refs[ref]; ok {
		return set, nil
	}
	return nil, fmt.Errorf("unknown ref %s", ref)
}

func isSubset(sub, super map[string]bool) bool {
	for commit := range sub {
		if !super[commit] {
			return false
		}
	}
	return true
}

func (f *fakeRunner) RepoRoot() (string, error) {
	return "", fmt.Errorf("fake runner has no repo root")
}

func (f *fakeRunner) GetConfig(key string) (string, error) {
	return f.config[key], nil
}

func (f *fakeRunner) LookupConfig(key string) (string, bool, error) {
	value, ok := f.config[key]
	return value, ok, nil
}

func (f *fakeRunner) SetConfig(key, value string) error {
	f.config[key] = value
	return nil
}

func (f *fakeRunner) CurrentBranch() (string, error) {
	return f.current, nil
}

func (f *fakeRunner) LocalBranches() ([]string, error) {
	names := make([]string, 0, len(f.branches))
	for name := range f.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRunner) BranchExists(name string) (bool, error) {
	_, ok := f.branches[name]
	return ok, nil
}

func (f *fakeRunner) IsCleanWorkingTree(_ context.Context) (bool, error) {
	return f.clean, nil
}

func (f *fakeRunner) CreateBranch(_ context.Context, name, from string) error {
	if _, ok := f.branches[name]; ok {
		return fmt.Errorf("branch %s already exists", name)
	}
	set, err := f.resolve(from)
	if err != nil {
		return err
	}
	f.branches[name] = copySet(set)
	return nil
}

func (f *fakeRunner) Checkout(_ context.Context, name string) error {
	if _, ok := f.branches[name]; !ok {
		return fmt.Errorf("branch %s does not exist", name)
	}
	f.current = name
	return nil
}

func (f *fakeRunner) DeleteBranch(_ context.Context, name string, force bool) error {
	set, ok := f.branches[name]
	if !ok {
		return fmt.Errorf("branch %s does not exist", name)
	}
	if !force && !isSubset(set, f.branches[f.current]) {
		return fmt.Errorf("branch %s is not fully merged", name)
	}
	delete(f.branches, name)
	return nil
}

func (f *fakeRunner) Merge(_ context.Context, from, _ string) error {
	target := f.current
	if f.conflicts[target+"<-"+from] {
		f.inMerge = true
		f.conflicted = true
		return fmt.Errorf("merge of %s into %s has conflicts", from, target)
	}
	set, err := f.resolve(from)
	if err != nil {
		return err
	}
	for commit := range set {
		f.branches[target][commit] = true
	}
	f.commit(target)
	f.merges = append(f.merges, from+"->"+target)
	return nil
}

func (f *fakeRunner) MergeInProgress(_ context.Context) (bool, error) {
	return f.inMerge, nil
}

func (f *fakeRunner) HasMergeConflicts(_ context.Context) (bool, error) {
	return f.conflicted, nil
}

func (f *fakeRunner) IsAncestor(_ context.Context, ancestor, descendant string) (bool, error) {
	ancestorSet, err := f.resolve(ancestor)
	if err != nil {
		return false, nil // unknown refs are simply not ancestors
	}
	descendantSet, err := f.resolve(descendant)
	if err != nil {
		return false, err
	}
	return isSubset(ancestorSet, descendantSet), nil
}

func (f *fakeRunner) IsMergedInto(ctx context.Context, branch, target string) (bool, error) {
	return f.IsAncestor(ctx, branch, target)
}

func (f *fakeRunner) CreateTag(_ context.Context, name, _, _ string, _ bool) error {
	if f.failTag != nil {
		err := f.failTag
		f.failTag = nil
		return err
	}
	f.tags[name] = true
	return nil
}

func (f *fakeRunner) TagExists(_ context.Context, name string) (bool, error) {
	return f.tags[name], nil
}

func (f *fakeRunner) Push(_ context.Context, _, refspec string) error {
	if f.rejectPush {
		return fmt.Errorf("push of %s: %w", refspec, gflowerrors.ErrRemoteRejected)
	}
	set, err := f.resolve(refspec)
	if err != nil {
		return err
	}
	f.remote[refspec] = copySet(set)
	return nil
}

// Fetch mirrors real git: a ref-specific fetch of a branch the remote does
// not have fails instead of reporting absence gracefully
func (f *fakeRunner) Fetch(_ context.Context, _, ref string) error {
	if ref == "" {
		return nil
	}
	if _, ok := f.remote[ref]; !ok {
		return fmt.Errorf("couldn't find remote ref %s", ref)
	}
	return nil
}

func (f *fakeRunner) RemoteBranchExists(_ context.Context, _, name string) (bool, error) {
	_, ok := f.remote[name]
	return ok, nil
}

func (f *fakeRunner) CheckoutTracking(_ context.Context, _, name string) error {
	set, ok := f.remote[name]
	if !ok {
		return fmt.Errorf("remote branch %s does not exist", name)
	}
	f.branches[name] = copySet(set)
	f.current = name
	return nil
}

func (f *fakeRunner) FastForward(_ context.Context, remote, branch string) error {
	remoteSet, ok := f.remote[branch]
	if !ok {
		return fmt.Errorf("remote branch %s does not exist", branch)
	}
	if !isSubset(f.branches[branch], remoteSet) {
		return fmt.Errorf("pull of %s from %s: %w", branch, remote, gflowerrors.ErrDivergedHistory)
	}
	f.branches[branch] = copySet(remoteSet)
	return nil
}

func (f *fakeRunner) Rebase(_ context.Context, upstream string) error {
	name := upstream[strings.Index(upstream, "/")+1:]
	remoteSet, ok := f.remote[name]
	if !ok {
		return fmt.Errorf("unknown upstream %s", upstream)
	}
	for commit := range remoteSet {
		f.branches[f.current][commit] = true
	}
	return nil
}
