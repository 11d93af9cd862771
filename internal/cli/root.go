// Package cli wires the cobra command tree. Commands stay thin: they parse
// flags into a flow.Request and hand it to the workflow driver.
package cli

import (
	"github.com/spf13/cobra"

	"gflow.dev/gflow/internal/flow"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gflow",
		Short: "Gflow standardizes a branching workflow around two permanent branches",
		Long: `Gflow standardizes the creation, naming, publishing, and merging of
supporting branches (feature, release, hotfix, support) around the two
permanent branches of a repository: development and production.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	for _, category := range flow.Categories {
		rootCmd.AddCommand(newCategoryCmd(category))
	}

	return rootCmd
}
