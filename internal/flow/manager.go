package flow

import (
	"context"
	"fmt"

	gflowerrors "gflow.dev/gflow/internal/errors"
	"gflow.dev/gflow/internal/git"
	"gflow.dev/gflow/internal/runtime"
)

// Manager implements the supporting-branch lifecycle for one category. The
// control flow is shared across categories; all variation comes from the
// policy row and the resolved topology.
type Manager struct {
	category Category
	policy   Policy
	topo     *Topology
	rc       *runtime.Context
}

// NewManager creates a manager for the given category.
func NewManager(rc *runtime.Context, topo *Topology, category Category) (*Manager, error) {
	policy, ok := PolicyFor(category)
	if !ok {
		return nil, fmt.Errorf("unknown branch category %q", category)
	}
	return &Manager{
		category: category,
		policy:   policy,
		topo:     topo,
		rc:       rc,
	}, nil
}

// StartOptions contains options for starting a branch
type StartOptions struct {
	// Fetch updates the base branch from the remote before branching
	Fetch bool
}

// FinishOptions contains options for finishing a branch
type FinishOptions struct {
	KeepBranch bool
	NoTag      bool
	Sign       bool
	TagMessage string
	Fetch      bool
}

// BranchInfo describes one supporting branch for listing
type BranchInfo struct {
	Short   string
	Full    string
	Current bool
}

// List returns all branches of the category with the current-branch marker.
func (m *Manager) List(_ context.Context) ([]BranchInfo, error) {
	shorts, err := m.topo.List(m.rc.Runner, m.category)
	if err != nil {
		return nil, err
	}

	// Detached HEAD just means nothing gets the marker
	current, _ := m.rc.Runner.CurrentBranch()

	infos := make([]BranchInfo, 0, len(shorts))
	for _, short := range shorts {
		full := m.topo.FullName(m.category, short)
		infos = append(infos, BranchInfo{
			Short:   short,
			Full:    full,
			Current: full == current,
		})
	}
	return infos, nil
}

// Start creates a new supporting branch and checks it out. All validation
// runs before the first mutating primitive; a validation failure leaves the
// repository untouched.
func (m *Manager) Start(ctx context.Context, short, base string, opts StartOptions) error {
	runner := m.rc.Runner
	full := m.topo.FullName(m.category, short)

	exists, err := runner.BranchExists(full)
	if err != nil {
		return err
	}
	if exists {
		return gflowerrors.NewBranchExistsError(full)
	}

	if m.policy.SingleActive {
		active, err := m.topo.List(runner, m.category)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return fmt.Errorf("%s branch %s is still in progress: %w",
				m.category, m.topo.FullName(m.category, active[0]),
				gflowerrors.ErrCategoryBranchExists)
		}
	}

	if m.policy.TagOnFinish {
		tagName := m.topo.VersionTagPrefix + short
		tagged, err := runner.TagExists(ctx, tagName)
		if err != nil {
			return err
		}
		if tagged {
			return fmt.Errorf("tag %s: %w", tagName, gflowerrors.ErrTagExists)
		}
	}

	baseBranch := m.topo.BranchName(m.policy.Base)
	if base == "" {
		base = baseBranch
	} else if !m.policy.AllowArbitraryBase {
		onBase, err := runner.IsAncestor(ctx, base, baseBranch)
		if err != nil {
			return err
		}
		if !onBase {
			return gflowerrors.NewInvalidBaseError(base, baseBranch)
		}
	}

	clean, err := runner.IsCleanWorkingTree(ctx)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("commit or stash your changes first: %w", gflowerrors.ErrDirtyWorkingTree)
	}

	if opts.Fetch {
		if err := runner.Fetch(ctx, git.DefaultRemote, baseBranch); err != nil {
			return err
		}
	}

	if err := runner.CreateBranch(ctx, full, base); err != nil {
		return err
	}
	if err := runner.Checkout(ctx, full); err != nil {
		return err
	}

	splog := m.rc.Splog
	splog.Info("Summary of actions:")
	splog.Info("- A new branch %s was created, based on %s", full, base)
	splog.Info("- You are now on branch %s", full)
	return nil
}

// Finish merges a supporting branch into its targets, tags when the policy
// says so, and deletes the branch last. Progress is persisted after every
// completed step so an interrupted finish resumes instead of re-merging.
func (m *Manager) Finish(ctx context.Context, partial string, opts FinishOptions) error {
	runner := m.rc.Runner
	splog := m.rc.Splog

	if !m.policy.Allows(OpFinish) {
		return fmt.Errorf("finishing a %s branch: %w", m.category, gflowerrors.ErrOperationNotAllowed)
	}

	full, err := m.topo.MatchByPrefix(runner, m.category, partial)
	if err != nil {
		return err
	}
	short := m.topo.Shorten(m.category, full)

	state, err := LoadFinishState(m.rc.RepoRoot)
	if err != nil {
		return err
	}
	if state != nil && state.Branch != full {
		return fmt.Errorf("a finish of %s is still in progress; complete it before finishing %s",
			state.Branch, full)
	}

	inMerge, err := runner.MergeInProgress(ctx)
	if err != nil {
		return err
	}
	if inMerge {
		conflicted, err := runner.HasMergeConflicts(ctx)
		if err != nil {
			return err
		}
		if conflicted {
			return fmt.Errorf("the previous merge still has unresolved conflicts: %w",
				gflowerrors.ErrMergeConflict)
		}
		return fmt.Errorf("a merge is in progress; commit it and re-run finish")
	}

	clean, err := runner.IsCleanWorkingTree(ctx)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("commit or stash your changes first: %w", gflowerrors.ErrDirtyWorkingTree)
	}

	if opts.Fetch {
		if err := runner.Fetch(ctx, git.DefaultRemote, ""); err != nil {
			return err
		}
	}

	if state == nil {
		state = &FinishState{Branch: full, Category: string(m.category)}
	}

	for _, role := range m.policy.MergeTargets {
		target := m.topo.BranchName(role)

		if state.HasMerged(target) {
			splog.Debug("merge into %s already recorded, skipping", target)
			continue
		}

		// A merge concluded by hand after a conflict shows up here
		merged, err := runner.IsMergedInto(ctx, full, target)
		if err != nil {
			return err
		}
		if merged {
			splog.Info("Branch %s is already merged into %s", full, target)
			state.MarkMerged(target)
			if err := state.Save(m.rc.RepoRoot); err != nil {
				return err
			}
			continue
		}

		if err := runner.Checkout(ctx, target); err != nil {
			return err
		}
		message := fmt.Sprintf("Finish %s %s", m.category, short)
		if err := runner.Merge(ctx, full, message); err != nil {
			conflicted, conflictErr := runner.HasMergeConflicts(ctx)
			if conflictErr == nil && conflicted {
				// The repository stays on the conflicted target; the
				// marker keeps the completed merges so a re-run resumes
				if saveErr := state.Save(m.rc.RepoRoot); saveErr != nil {
					return saveErr
				}
				return gflowerrors.NewMergeConflictError(target, full)
			}
			return err
		}

		state.MarkMerged(target)
		if err := state.Save(m.rc.RepoRoot); err != nil {
			return err
		}
	}

	tagName := ""
	if m.policy.TagOnFinish && !opts.NoTag && !state.Tagged {
		tagName = m.topo.VersionTagPrefix + short
		tagged, err := runner.TagExists(ctx, tagName)
		if err != nil {
			return err
		}
		if !tagged {
			if err := runner.CreateTag(ctx, tagName, m.topo.Master, opts.TagMessage, opts.Sign); err != nil {
				if saveErr := state.Save(m.rc.RepoRoot); saveErr != nil {
					return saveErr
				}
				return err
			}
		}
		state.Tagged = true
		if err := state.Save(m.rc.RepoRoot); err != nil {
			return err
		}
	}

	// Finish always lands on the development branch
	if err := runner.Checkout(ctx, m.topo.Develop); err != nil {
		return err
	}

	if !opts.KeepBranch {
		if err := runner.DeleteBranch(ctx, full, false); err != nil {
			return err
		}
	}

	if err := ClearFinishState(m.rc.RepoRoot); err != nil {
		return err
	}

	splog.Info("Summary of actions:")
	for _, role := range m.policy.MergeTargets {
		splog.Info("- Branch %s was merged into %s", full, m.topo.BranchName(role))
	}
	if tagName != "" {
		splog.Info("- The finish was tagged %s", tagName)
	}
	if opts.KeepBranch {
		splog.Info("- Branch %s is still available", full)
	} else {
		splog.Info("- Branch %s has been deleted", full)
	}
	splog.Info("- You are now on branch %s", m.topo.Develop)
	return nil
}

// Publish pushes the local supporting branch to the remote under the same
// name and records the tracking configuration.
func (m *Manager) Publish(ctx context.Context, short string) error {
	runner := m.rc.Runner
	full := m.topo.FullName(m.category, short)

	exists, err := runner.BranchExists(full)
	if err != nil {
		return err
	}
	if !exists {
		return gflowerrors.NewNoMatchError(string(m.category), short)
	}

	remote := git.DefaultRemote
	onRemote, err := runner.RemoteBranchExists(ctx, remote, full)
	if err != nil {
		return err
	}
	if onRemote {
		return gflowerrors.NewBranchExistsError(remote + "/" + full)
	}

	if err := runner.Push(ctx, remote, full); err != nil {
		return err
	}
	if err := runner.SetConfig("branch."+full+".remote", remote); err != nil {
		return err
	}
	if err := runner.SetConfig("branch."+full+".merge", "refs/heads/"+full); err != nil {
		return err
	}
	if err := runner.Checkout(ctx, full); err != nil {
		return err
	}

	m.rc.Splog.Info("Branch %s was pushed to %s and is now tracking it", full, remote)
	return nil
}

// Track creates a local branch tracking the remote branch of the same name
// and checks it out.
func (m *Manager) Track(ctx context.Context, short string) error {
	runner := m.rc.Runner
	full := m.topo.FullName(m.category, short)

	exists, err := runner.BranchExists(full)
	if err != nil {
		return err
	}
	if exists {
		return gflowerrors.NewBranchExistsError(full)
	}

	// Existence is checked against the remote itself before fetching: a
	// ref-specific fetch of a branch the remote does not have fails outright
	remote := git.DefaultRemote
	onRemote, err := runner.RemoteBranchExists(ctx, remote, full)
	if err != nil {
		return err
	}
	if !onRemote {
		return fmt.Errorf("%s/%s: %w", remote, full, gflowerrors.ErrRemoteNotFound)
	}
	if err := runner.Fetch(ctx, remote, full); err != nil {
		return err
	}

	if err := runner.CheckoutTracking(ctx, remote, full); err != nil {
		return err
	}

	m.rc.Splog.Info("You are now on branch %s, tracking %s/%s", full, remote, full)
	return nil
}

// Pull updates (or creates) the local supporting branch from a remote peer.
// Without rebase, only a fast-forward is performed; diverged history is
// surfaced to the operator instead of being merged silently.
func (m *Manager) Pull(ctx context.Context, remote, short string, rebase bool) error {
	runner := m.rc.Runner
	if remote == "" {
		remote = git.DefaultRemote
	}
	full := m.topo.FullName(m.category, short)

	onRemote, err := runner.RemoteBranchExists(ctx, remote, full)
	if err != nil {
		return err
	}
	if !onRemote {
		return fmt.Errorf("%s/%s: %w", remote, full, gflowerrors.ErrRemoteNotFound)
	}
	if err := runner.Fetch(ctx, remote, full); err != nil {
		return err
	}

	exists, err := runner.BranchExists(full)
	if err != nil {
		return err
	}
	if !exists {
		if err := runner.CheckoutTracking(ctx, remote, full); err != nil {
			return err
		}
		m.rc.Splog.Info("Created local branch %s from %s/%s", full, remote, full)
		return nil
	}

	clean, err := runner.IsCleanWorkingTree(ctx)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("commit or stash your changes first: %w", gflowerrors.ErrDirtyWorkingTree)
	}

	if err := runner.Checkout(ctx, full); err != nil {
		return err
	}
	if rebase {
		if err := runner.Rebase(ctx, remote+"/"+full); err != nil {
			return err
		}
	} else if err := runner.FastForward(ctx, remote, full); err != nil {
		return err
	}

	m.rc.Splog.Info("Pulled %s from %s", full, remote)
	return nil
}

// Delete removes a supporting branch. Without force it refuses unless the
// branch is fully merged into the category's integration target.
func (m *Manager) Delete(ctx context.Context, short string, force bool) error {
	runner := m.rc.Runner
	full := m.topo.FullName(m.category, short)

	exists, err := runner.BranchExists(full)
	if err != nil {
		return err
	}
	if !exists {
		return gflowerrors.NewNoMatchError(string(m.category), short)
	}

	target := m.topo.BranchName(m.policy.DeleteTarget())
	if !force {
		merged, err := runner.IsMergedInto(ctx, full, target)
		if err != nil {
			return err
		}
		if !merged {
			return gflowerrors.NewUnmergedChangesError(full, target)
		}
	}

	current, err := runner.CurrentBranch()
	if err == nil && current == full {
		if err := runner.Checkout(ctx, target); err != nil {
			return err
		}
	}

	// Merged-ness was validated against the integration target above;
	// git's own HEAD-relative -d check does not apply here
	if err := runner.DeleteBranch(ctx, full, true); err != nil {
		return err
	}

	m.rc.Splog.Info("Deleted branch %s", full)
	return nil
}
