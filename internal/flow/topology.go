package flow

import (
	"fmt"
	"sort"
	"strings"

	gflowerrors "gflow.dev/gflow/internal/errors"
	"gflow.dev/gflow/internal/git"
)

// Config keys under the reserved gflow namespace. Workflow configuration
// lives in the repository-scoped git config, nothing else.
const (
	ConfigKeyMaster     = "gflow.branch.master"
	ConfigKeyDevelop    = "gflow.branch.develop"
	ConfigKeyVersionTag = "gflow.prefix.versiontag"

	configKeyPrefixFormat = "gflow.prefix.%s"
)

// Defaults applied by init when no explicit values are given.
const (
	DefaultMaster  = "master"
	DefaultDevelop = "develop"
)

// PrefixKey returns the config key holding a category's branch prefix.
func PrefixKey(category Category) string {
	return fmt.Sprintf(configKeyPrefixFormat, category)
}

// Topology is the resolved workflow configuration: the two permanent
// branches plus the per-category prefixes. It is an explicit value threaded
// through calls so tests can construct synthetic topologies.
type Topology struct {
	Master           string
	Develop          string
	Prefixes         map[Category]string
	VersionTagPrefix string
}

// ResolveTopology reads the workflow configuration from the repository.
// It fails with ErrNotInitialized when either permanent branch is unset or
// does not exist as a local branch.
func ResolveTopology(runner git.Runner) (*Topology, error) {
	master, err := runner.GetConfig(ConfigKeyMaster)
	if err != nil {
		return nil, err
	}
	develop, err := runner.GetConfig(ConfigKeyDevelop)
	if err != nil {
		return nil, err
	}
	if master == "" || develop == "" {
		return nil, fmt.Errorf("run 'gflow init' first: %w", gflowerrors.ErrNotInitialized)
	}

	for _, branch := range []string{master, develop} {
		exists, err := runner.BranchExists(branch)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("permanent branch %s is configured but missing: %w",
				branch, gflowerrors.ErrNotInitialized)
		}
	}

	prefixes := make(map[Category]string, len(Categories))
	for _, category := range Categories {
		// A key explicitly set to the empty string means "no prefix";
		// only an absent key falls back to the category default
		prefix, set, err := runner.LookupConfig(PrefixKey(category))
		if err != nil {
			return nil, err
		}
		if !set {
			policy, _ := PolicyFor(category)
			prefix = policy.DefaultPrefix
		}
		prefixes[category] = prefix
	}

	versionTag, err := runner.GetConfig(ConfigKeyVersionTag)
	if err != nil {
		return nil, err
	}

	return &Topology{
		Master:           master,
		Develop:          develop,
		Prefixes:         prefixes,
		VersionTagPrefix: versionTag,
	}, nil
}

// BranchName resolves a permanent-branch role to its configured name.
func (t *Topology) BranchName(role Role) string {
	if role == RoleMaster {
		return t.Master
	}
	return t.Develop
}

// Prefix returns the configured prefix for a category.
func (t *Topology) Prefix(category Category) string {
	return t.Prefixes[category]
}

// FullName builds the full branch name for a short name.
func (t *Topology) FullName(category Category, short string) string {
	return t.Prefixes[category] + short
}

// Shorten strips the category prefix from a full branch name. A name that
// does not carry the prefix is returned unchanged.
func (t *Topology) Shorten(category Category, full string) string {
	return strings.TrimPrefix(full, t.Prefixes[category])
}

// List returns the short names of all local branches of a category, sorted
// lexicographically.
func (t *Topology) List(runner git.Runner, category Category) ([]string, error) {
	branches, err := runner.LocalBranches()
	if err != nil {
		return nil, err
	}

	prefix := t.Prefixes[category]
	shorts := []string{}
	for _, branch := range branches {
		if strings.HasPrefix(branch, prefix) {
			shorts = append(shorts, strings.TrimPrefix(branch, prefix))
		}
	}
	sort.Strings(shorts)
	return shorts, nil
}

// MatchByPrefix resolves a partial short name to the full branch name of a
// category. An exact name always wins; otherwise the partial must match
// exactly one branch by prefix. Ambiguity is a reported failure carrying the
// candidate list, never a heuristic choice.
func (t *Topology) MatchByPrefix(runner git.Runner, category Category, partial string) (string, error) {
	full := t.FullName(category, partial)

	exists, err := runner.BranchExists(full)
	if err != nil {
		return "", err
	}
	if exists {
		return full, nil
	}

	branches, err := runner.LocalBranches()
	if err != nil {
		return "", err
	}

	categoryPrefix := t.Prefixes[category]
	var matches []string
	for _, branch := range branches {
		if strings.HasPrefix(branch, categoryPrefix) && strings.HasPrefix(branch, full) {
			matches = append(matches, branch)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", gflowerrors.NewNoMatchError(string(category), partial)
	default:
		sort.Strings(matches)
		return "", gflowerrors.NewAmbiguousMatchError(string(category), partial, matches)
	}
}
