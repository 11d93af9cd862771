package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gflow.dev/gflow/internal/flow"
	"gflow.dev/gflow/internal/git"
	"gflow.dev/gflow/internal/runtime"
)

// isInteractive checks if we're in an interactive terminal
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// askOrDefault prompts for a value in interactive mode, otherwise keeps the default
func askOrDefault(interactive bool, question, defaultValue string) (string, error) {
	if !interactive {
		return defaultValue, nil
	}
	answer := defaultValue
	prompt := &survey.Input{
		Message: question,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// currentOrFallback returns the configured value when set, the fallback otherwise
func currentOrFallback(runner git.Runner, key, fallback string) string {
	value, err := runner.GetConfig(key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		defaults bool
		force    bool
		master   string
		develop  string
		prefixes = map[flow.Category]*string{}
		tag      string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the repository for the branching workflow",
		Long: `Initialize the repository for the branching workflow.

Records the names of the two permanent branches and the per-category branch
prefixes in the repository's git config, and creates the development branch
when it does not exist yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			runner := rc.Runner

			existingMaster, err := runner.GetConfig(flow.ConfigKeyMaster)
			if err != nil {
				return err
			}
			existingDevelop, err := runner.GetConfig(flow.ConfigKeyDevelop)
			if err != nil {
				return err
			}
			if existingMaster != "" && existingDevelop != "" && !force {
				return fmt.Errorf("already initialized; use 'gflow init --force' to reconfigure")
			}

			branches, err := runner.LocalBranches()
			if err != nil {
				return err
			}
			if len(branches) == 0 {
				return fmt.Errorf("no branches found; create your first commit and re-run gflow init")
			}

			interactive := isInteractive() && !defaults

			if master == "" {
				fallback := currentOrFallback(runner, flow.ConfigKeyMaster, flow.DefaultMaster)
				master, err = askOrDefault(interactive, "Branch name for production releases:", fallback)
				if err != nil {
					return err
				}
			}
			masterExists, err := runner.BranchExists(master)
			if err != nil {
				return err
			}
			if !masterExists {
				return fmt.Errorf("production branch %s does not exist", master)
			}

			if develop == "" {
				fallback := currentOrFallback(runner, flow.ConfigKeyDevelop, flow.DefaultDevelop)
				develop, err = askOrDefault(interactive, "Branch name for development:", fallback)
				if err != nil {
					return err
				}
			}
			if develop == master {
				return fmt.Errorf("production and development branches must differ")
			}

			developExists, err := runner.BranchExists(develop)
			if err != nil {
				return err
			}
			if !developExists {
				if err := runner.CreateBranch(cmd.Context(), develop, master); err != nil {
					return err
				}
				rc.Splog.Info("Created branch %s from %s", develop, master)
			}

			if err := runner.SetConfig(flow.ConfigKeyMaster, master); err != nil {
				return err
			}
			if err := runner.SetConfig(flow.ConfigKeyDevelop, develop); err != nil {
				return err
			}

			for _, category := range flow.Categories {
				policy, _ := flow.PolicyFor(category)
				value := *prefixes[category]
				if value == "" {
					fallback := currentOrFallback(runner, flow.PrefixKey(category), policy.DefaultPrefix)
					value, err = askOrDefault(interactive,
						fmt.Sprintf("Prefix for %s branches:", category), fallback)
					if err != nil {
						return err
					}
				}
				if err := runner.SetConfig(flow.PrefixKey(category), value); err != nil {
					return err
				}
			}

			if tag == "" && interactive {
				tag, err = askOrDefault(interactive, "Prefix for version tags:",
					currentOrFallback(runner, flow.ConfigKeyVersionTag, ""))
				if err != nil {
					return err
				}
			}
			if tag != "" {
				if err := runner.SetConfig(flow.ConfigKeyVersionTag, tag); err != nil {
					return err
				}
			}

			rc.Splog.Info("Repository initialized: %s (production), %s (development)", master, develop)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&defaults, "defaults", "d", false, "Use default values without prompting.")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force reinitialization of an already-configured repository.")
	cmd.Flags().StringVar(&master, "master", "", "Name of the production branch.")
	cmd.Flags().StringVar(&develop, "develop", "", "Name of the development branch.")
	for _, category := range flow.Categories {
		prefix := new(string)
		prefixes[category] = prefix
		cmd.Flags().StringVar(prefix, string(category), "",
			fmt.Sprintf("Prefix for %s branches.", category))
	}
	cmd.Flags().StringVar(&tag, "tag", "", "Prefix for version tags.")

	return cmd
}
