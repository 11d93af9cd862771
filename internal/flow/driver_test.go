package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gflowerrors "gflow.dev/gflow/internal/errors"
	"gflow.dev/gflow/internal/flow"
	"gflow.dev/gflow/internal/runtime"
)

func initializedRunner(t *testing.T, branches ...string) *fakeRunner {
	t.Helper()
	runner := newFakeRunner(branches...)
	require.NoError(t, runner.SetConfig(flow.ConfigKeyMaster, "master"))
	require.NoError(t, runner.SetConfig(flow.ConfigKeyDevelop, "develop"))
	require.NoError(t, runner.SetConfig(flow.ConfigKeyVersionTag, "v"))
	return runner
}

func TestDriverRun(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches start", func(t *testing.T) {
		runner := initializedRunner(t, "master", "develop")
		driver := flow.NewDriver(runtime.NewContextWithRepoRoot(runner, t.TempDir()))

		err := driver.Run(ctx, flow.Request{
			Category:  flow.Feature,
			Operation: flow.OpStart,
			Name:      "login",
		})
		require.NoError(t, err)
		require.Equal(t, "feature/login", runner.current)
	})

	t.Run("rejects an operation the policy disallows", func(t *testing.T) {
		runner := initializedRunner(t, "master", "develop", "support/0.9.x")
		driver := flow.NewDriver(runtime.NewContextWithRepoRoot(runner, t.TempDir()))

		err := driver.Run(ctx, flow.Request{
			Category:  flow.Support,
			Operation: flow.OpFinish,
			Name:      "0.9.x",
		})
		require.ErrorIs(t, err, gflowerrors.ErrOperationNotAllowed)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		runner := initializedRunner(t, "master", "develop")
		driver := flow.NewDriver(runtime.NewContextWithRepoRoot(runner, t.TempDir()))

		err := driver.Run(ctx, flow.Request{
			Category:  flow.Category("gadget"),
			Operation: flow.OpList,
		})
		require.Error(t, err)
	})

	t.Run("requires an initialized workflow", func(t *testing.T) {
		runner := newFakeRunner("master", "develop")
		driver := flow.NewDriver(runtime.NewContextWithRepoRoot(runner, t.TempDir()))

		err := driver.Run(ctx, flow.Request{
			Category:  flow.Feature,
			Operation: flow.OpList,
		})
		require.ErrorIs(t, err, gflowerrors.ErrNotInitialized)
	})

	t.Run("lists without error on an empty category", func(t *testing.T) {
		runner := initializedRunner(t, "master", "develop")
		driver := flow.NewDriver(runtime.NewContextWithRepoRoot(runner, t.TempDir()))

		err := driver.Run(ctx, flow.Request{
			Category:  flow.Hotfix,
			Operation: flow.OpList,
		})
		require.NoError(t, err)
	})
}
