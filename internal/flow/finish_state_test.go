package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gflow.dev/gflow/internal/flow"
)

func TestFinishState(t *testing.T) {
	t.Run("missing marker loads as nil", func(t *testing.T) {
		state, err := flow.LoadFinishState(t.TempDir())
		require.NoError(t, err)
		require.Nil(t, state)
	})

	t.Run("round-trips through the marker file", func(t *testing.T) {
		repoRoot := t.TempDir()
		state := &flow.FinishState{Branch: "release/1.0", Category: "release"}
		state.MarkMerged("master")
		state.Tagged = true
		require.NoError(t, state.Save(repoRoot))

		loaded, err := flow.LoadFinishState(repoRoot)
		require.NoError(t, err)
		require.Equal(t, state, loaded)
	})

	t.Run("clear removes the marker", func(t *testing.T) {
		repoRoot := t.TempDir()
		state := &flow.FinishState{Branch: "hotfix/1.0.1", Category: "hotfix"}
		require.NoError(t, state.Save(repoRoot))

		require.NoError(t, flow.ClearFinishState(repoRoot))
		loaded, err := flow.LoadFinishState(repoRoot)
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run("clearing an absent marker is fine", func(t *testing.T) {
		require.NoError(t, flow.ClearFinishState(t.TempDir()))
	})

	t.Run("marking a target twice records it once", func(t *testing.T) {
		state := &flow.FinishState{Branch: "release/1.0"}
		state.MarkMerged("master")
		state.MarkMerged("master")
		require.Equal(t, []string{"master"}, state.MergedTargets)
		require.True(t, state.HasMerged("master"))
		require.False(t, state.HasMerged("develop"))
	})
}
