package cli_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"gflow.dev/gflow/internal/cli"
)

func findCommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func TestRootCommandTree(t *testing.T) {
	root := cli.NewRootCmd("1.0.0", "abc123", "2026-01-01")

	t.Run("has init and version", func(t *testing.T) {
		require.NotNil(t, findCommand(t, root, "init"))
		require.NotNil(t, findCommand(t, root, "version"))
	})

	t.Run("has one command per category", func(t *testing.T) {
		for _, name := range []string{"feature", "release", "hotfix", "support"} {
			require.NotNil(t, findCommand(t, root, name), "missing %s command", name)
		}
	})

	t.Run("feature carries the full lifecycle", func(t *testing.T) {
		feature := findCommand(t, root, "feature")
		require.NotNil(t, feature)
		for _, name := range []string{"list", "start", "finish", "publish", "track", "pull", "delete"} {
			require.NotNil(t, findCommand(t, feature, name), "missing feature %s", name)
		}
	})

	t.Run("support has no finish", func(t *testing.T) {
		support := findCommand(t, root, "support")
		require.NotNil(t, support)
		require.Nil(t, findCommand(t, support, "finish"))
		require.NotNil(t, findCommand(t, support, "start"))
		require.NotNil(t, findCommand(t, support, "delete"))
	})

	t.Run("tag flags exist only where finishing tags", func(t *testing.T) {
		releaseFinish := findCommand(t, findCommand(t, root, "release"), "finish")
		require.NotNil(t, releaseFinish)
		require.NotNil(t, releaseFinish.Flags().Lookup("no-tag"))
		require.NotNil(t, releaseFinish.Flags().Lookup("sign-tag"))
		require.NotNil(t, releaseFinish.Flags().Lookup("message"))

		featureFinish := findCommand(t, findCommand(t, root, "feature"), "finish")
		require.NotNil(t, featureFinish)
		require.Nil(t, featureFinish.Flags().Lookup("no-tag"))
		require.NotNil(t, featureFinish.Flags().Lookup("keep-branch"))
	})

	t.Run("delete has a force flag", func(t *testing.T) {
		release := findCommand(t, root, "release")
		deleteCmd := findCommand(t, release, "delete")
		require.NotNil(t, deleteCmd)
		require.NotNil(t, deleteCmd.Flags().Lookup("force"))
	})
}
