package flow

import (
	"context"
	"fmt"

	gflowerrors "gflow.dev/gflow/internal/errors"
	"gflow.dev/gflow/internal/output"
	"gflow.dev/gflow/internal/runtime"
)

// Request is a validated (category, operation, name, args) triple plus flags.
type Request struct {
	Category  Category
	Operation Operation
	Name      string
	Base      string
	Remote    string

	Fetch      bool
	Force      bool
	KeepBranch bool
	NoTag      bool
	Rebase     bool
	Sign       bool
	TagMessage string
}

// Driver checks a request against the category policy and dispatches it to
// the matching manager operation. It is the only place aware of the full
// category × operation matrix.
type Driver struct {
	rc *runtime.Context
}

// NewDriver creates a driver bound to a runtime context.
func NewDriver(rc *runtime.Context) *Driver {
	return &Driver{rc: rc}
}

// Run executes one workflow request. Typed failures from the manager pass
// through unchanged so the caller can map them to process outcomes.
func (d *Driver) Run(ctx context.Context, req Request) error {
	policy, ok := PolicyFor(req.Category)
	if !ok {
		return fmt.Errorf("unknown branch category %q", req.Category)
	}
	if !policy.Allows(req.Operation) {
		return fmt.Errorf("%s %s: %w", req.Category, req.Operation, gflowerrors.ErrOperationNotAllowed)
	}

	topo, err := ResolveTopology(d.rc.Runner)
	if err != nil {
		return err
	}

	manager, err := NewManager(d.rc, topo, req.Category)
	if err != nil {
		return err
	}

	switch req.Operation {
	case OpList:
		return d.list(ctx, manager)
	case OpStart:
		return manager.Start(ctx, req.Name, req.Base, StartOptions{Fetch: req.Fetch})
	case OpFinish:
		return manager.Finish(ctx, req.Name, FinishOptions{
			KeepBranch: req.KeepBranch,
			NoTag:      req.NoTag,
			Sign:       req.Sign,
			TagMessage: req.TagMessage,
			Fetch:      req.Fetch,
		})
	case OpPublish:
		return manager.Publish(ctx, req.Name)
	case OpTrack:
		return manager.Track(ctx, req.Name)
	case OpPull:
		return manager.Pull(ctx, req.Remote, req.Name, req.Rebase)
	case OpDelete:
		return manager.Delete(ctx, req.Name, req.Force)
	default:
		return fmt.Errorf("unknown operation %q", req.Operation)
	}
}

func (d *Driver) list(ctx context.Context, manager *Manager) error {
	infos, err := manager.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		d.rc.Splog.Info("No %s branches exist.", manager.category)
		d.rc.Splog.Info("You can start a new one with: gflow %s start <name>", manager.category)
		return nil
	}

	lines := make([]output.BranchLine, 0, len(infos))
	for _, info := range infos {
		lines = append(lines, output.BranchLine{Name: info.Short, Current: info.Current})
	}
	d.rc.Splog.Page(output.FormatBranchList(lines))
	return nil
}
