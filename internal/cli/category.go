package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gflow.dev/gflow/internal/flow"
	"gflow.dev/gflow/internal/runtime"
)

// runRequest resolves the runtime context and dispatches one workflow request
func runRequest(cmd *cobra.Command, req flow.Request) error {
	rc, err := runtime.GetContext()
	if err != nil {
		return err
	}
	return flow.NewDriver(rc).Run(cmd.Context(), req)
}

// completeBranches offers the category's short branch names for completion
func completeBranches(category flow.Category) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		rc, err := runtime.GetContext()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		topo, err := flow.ResolveTopology(rc.Runner)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		shorts, err := topo.List(rc.Runner, category)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return shorts, cobra.ShellCompDirectiveNoFileComp
	}
}

// newCategoryCmd builds the command group for one branch category. Only the
// operations the category policy permits get a subcommand.
func newCategoryCmd(category flow.Category) *cobra.Command {
	policy, _ := flow.PolicyFor(category)

	cmd := &cobra.Command{
		Use:   string(category),
		Short: fmt.Sprintf("Manage your %s branches", category),
	}

	builders := map[flow.Operation]func(flow.Category) *cobra.Command{
		flow.OpList:    newListCmd,
		flow.OpStart:   newStartCmd,
		flow.OpFinish:  newFinishCmd,
		flow.OpPublish: newPublishCmd,
		flow.OpTrack:   newTrackCmd,
		flow.OpPull:    newPullCmd,
		flow.OpDelete:  newDeleteCmd,
	}
	for _, op := range policy.Operations {
		cmd.AddCommand(builders[op](category))
	}

	return cmd
}

func newListCmd(category flow.Category) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %s branches", category),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRequest(cmd, flow.Request{
				Category:  category,
				Operation: flow.OpList,
			})
		},
	}
}

func newStartCmd(category flow.Category) *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "start <name> [base]",
		Short: fmt.Sprintf("Start a new %s branch", category),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := ""
			if len(args) > 1 {
				base = args[1]
			}
			return runRequest(cmd, flow.Request{
				Category:  category,
				Operation: flow.OpStart,
				Name:      args[0],
				Base:      base,
				Fetch:     fetch,
			})
		},
	}

	cmd.Flags().BoolVarP(&fetch, "fetch", "F", false, "Fetch from the remote before performing the local operation.")

	return cmd
}

func newFinishCmd(category flow.Category) *cobra.Command {
	var (
		fetch      bool
		keepBranch bool
		noTag      bool
		sign       bool
		tagMessage string
	)

	cmd := &cobra.Command{
		Use:               "finish <name>",
		Short:             fmt.Sprintf("Finish a %s branch: merge it into its targets and delete it", category),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBranches(category),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, flow.Request{
				Category:   category,
				Operation:  flow.OpFinish,
				Name:       args[0],
				Fetch:      fetch,
				KeepBranch: keepBranch,
				NoTag:      noTag,
				Sign:       sign,
				TagMessage: tagMessage,
			})
		},
	}

	cmd.Flags().BoolVarP(&fetch, "fetch", "F", false, "Fetch from the remote before performing the local operation.")
	cmd.Flags().BoolVarP(&keepBranch, "keep-branch", "k", false, "Keep the branch after finishing.")
	policy, _ := flow.PolicyFor(category)
	if policy.TagOnFinish {
		cmd.Flags().BoolVar(&noTag, "no-tag", false, "Skip tagging the finish.")
		cmd.Flags().BoolVarP(&sign, "sign-tag", "s", false, "Sign the tag cryptographically.")
		cmd.Flags().StringVarP(&tagMessage, "message", "m", "", "Use the given tag message.")
	}

	return cmd
}

func newPublishCmd(category flow.Category) *cobra.Command {
	return &cobra.Command{
		Use:               "publish <name>",
		Short:             fmt.Sprintf("Publish a %s branch to the remote", category),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBranches(category),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, flow.Request{
				Category:  category,
				Operation: flow.OpPublish,
				Name:      args[0],
			})
		},
	}
}

func newTrackCmd(category flow.Category) *cobra.Command {
	return &cobra.Command{
		Use:   "track <name>",
		Short: fmt.Sprintf("Track a %s branch from the remote", category),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, flow.Request{
				Category:  category,
				Operation: flow.OpTrack,
				Name:      args[0],
			})
		},
	}
}

func newPullCmd(category flow.Category) *cobra.Command {
	var rebase bool

	cmd := &cobra.Command{
		Use:   "pull <remote> <name>",
		Short: fmt.Sprintf("Pull a %s branch from a remote peer", category),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, flow.Request{
				Category:  category,
				Operation: flow.OpPull,
				Remote:    args[0],
				Name:      args[1],
				Rebase:    rebase,
			})
		},
	}

	cmd.Flags().BoolVar(&rebase, "rebase", false, "Rebase the local branch onto the remote instead of fast-forwarding.")

	return cmd
}

func newDeleteCmd(category flow.Category) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "delete <name>",
		Short:             fmt.Sprintf("Delete a %s branch", category),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBranches(category),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, flow.Request{
				Category:  category,
				Operation: flow.OpDelete,
				Name:      args[0],
				Force:     force,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete the branch even if it is not merged.")

	return cmd
}
