package flow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	gflowerrors "gflow.dev/gflow/internal/errors"
	"gflow.dev/gflow/internal/flow"
)

func testTopology() *flow.Topology {
	return &flow.Topology{
		Master:  "master",
		Develop: "develop",
		Prefixes: map[flow.Category]string{
			flow.Feature: "feature/",
			flow.Release: "release/",
			flow.Hotfix:  "hotfix/",
			flow.Support: "support/",
		},
		VersionTagPrefix: "v",
	}
}

func TestResolveTopology(t *testing.T) {
	t.Run("fails when branch config is unset", func(t *testing.T) {
		runner := newFakeRunner("master", "develop")

		_, err := flow.ResolveTopology(runner)
		require.ErrorIs(t, err, gflowerrors.ErrNotInitialized)
	})

	t.Run("fails when a configured branch is missing", func(t *testing.T) {
		runner := newFakeRunner("master")
		require.NoError(t, runner.SetConfig(flow.ConfigKeyMaster, "master"))
		require.NoError(t, runner.SetConfig(flow.ConfigKeyDevelop, "develop"))

		_, err := flow.ResolveTopology(runner)
		require.ErrorIs(t, err, gflowerrors.ErrNotInitialized)
	})

	t.Run("falls back to default prefixes", func(t *testing.T) {
		runner := newFakeRunner("master", "develop")
		require.NoError(t, runner.SetConfig(flow.ConfigKeyMaster, "master"))
		require.NoError(t, runner.SetConfig(flow.ConfigKeyDevelop, "develop"))

		topo, err := flow.ResolveTopology(runner)
		require.NoError(t, err)
		require.Equal(t, "feature/", topo.Prefix(flow.Feature))
		require.Equal(t, "support/", topo.Prefix(flow.Support))
		require.Empty(t, topo.VersionTagPrefix)
	})

	t.Run("explicitly empty prefix stays empty", func(t *testing.T) {
		runner := newFakeRunner("master", "develop")
		require.NoError(t, runner.SetConfig(flow.ConfigKeyMaster, "master"))
		require.NoError(t, runner.SetConfig(flow.ConfigKeyDevelop, "develop"))
		require.NoError(t, runner.SetConfig(flow.PrefixKey(flow.Feature), ""))

		topo, err := flow.ResolveTopology(runner)
		require.NoError(t, err)
		require.Empty(t, topo.Prefix(flow.Feature))
		require.Equal(t, "login", topo.FullName(flow.Feature, "login"))
		require.Equal(t, "release/", topo.Prefix(flow.Release))
	})

	t.Run("honors configured names and prefixes", func(t *testing.T) {
		runner := newFakeRunner("main", "dev")
		require.NoError(t, runner.SetConfig(flow.ConfigKeyMaster, "main"))
		require.NoError(t, runner.SetConfig(flow.ConfigKeyDevelop, "dev"))
		require.NoError(t, runner.SetConfig(flow.PrefixKey(flow.Feature), "feat/"))
		require.NoError(t, runner.SetConfig(flow.ConfigKeyVersionTag, "rel-"))

		topo, err := flow.ResolveTopology(runner)
		require.NoError(t, err)
		require.Equal(t, "main", topo.Master)
		require.Equal(t, "dev", topo.Develop)
		require.Equal(t, "feat/", topo.Prefix(flow.Feature))
		require.Equal(t, "release/", topo.Prefix(flow.Release))
		require.Equal(t, "rel-", topo.VersionTagPrefix)
	})
}

func TestTopologyNames(t *testing.T) {
	topo := testTopology()

	require.Equal(t, "master", topo.BranchName(flow.RoleMaster))
	require.Equal(t, "develop", topo.BranchName(flow.RoleDevelop))
	require.Equal(t, "feature/login", topo.FullName(flow.Feature, "login"))
	require.Equal(t, "login", topo.Shorten(flow.Feature, "feature/login"))
	require.Equal(t, "login", topo.Shorten(flow.Feature, "login"))
}

func TestTopologyList(t *testing.T) {
	runner := newFakeRunner("master", "develop", "feature/zeta", "feature/alpha", "release/1.0")
	topo := testTopology()

	t.Run("returns sorted short names", func(t *testing.T) {
		shorts, err := topo.List(runner, flow.Feature)
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "zeta"}, shorts)
	})

	t.Run("empty category gives empty list", func(t *testing.T) {
		shorts, err := topo.List(runner, flow.Hotfix)
		require.NoError(t, err)
		require.Empty(t, shorts)
	})
}

func TestMatchByPrefix(t *testing.T) {
	runner := newFakeRunner("master", "develop", "feature/foo", "feature/foobar", "feature/quux")
	topo := testTopology()

	t.Run("exact name wins over longer candidates", func(t *testing.T) {
		full, err := topo.MatchByPrefix(runner, flow.Feature, "foo")
		require.NoError(t, err)
		require.Equal(t, "feature/foo", full)
	})

	t.Run("unique prefix resolves", func(t *testing.T) {
		full, err := topo.MatchByPrefix(runner, flow.Feature, "q")
		require.NoError(t, err)
		require.Equal(t, "feature/quux", full)
	})

	t.Run("ambiguous prefix reports candidates", func(t *testing.T) {
		_, err := topo.MatchByPrefix(runner, flow.Feature, "fo")
		require.ErrorIs(t, err, gflowerrors.ErrAmbiguousMatch)

		var ambiguous *gflowerrors.AmbiguousMatchError
		require.True(t, errors.As(err, &ambiguous))
		require.Equal(t, []string{"feature/foo", "feature/foobar"}, ambiguous.Candidates)
	})

	t.Run("no match is reported", func(t *testing.T) {
		_, err := topo.MatchByPrefix(runner, flow.Feature, "nope")
		require.ErrorIs(t, err, gflowerrors.ErrNoMatch)
	})

	t.Run("categories do not bleed into each other", func(t *testing.T) {
		_, err := topo.MatchByPrefix(runner, flow.Release, "foo")
		require.ErrorIs(t, err, gflowerrors.ErrNoMatch)
	})
}
