// Package flow implements the branching-workflow core: category policies,
// repository topology resolution, and the supporting-branch lifecycle
// (start, finish, publish, track, pull, delete) on top of the git gateway.
package flow

// Category identifies one of the supporting-branch kinds.
type Category string

// The four supporting-branch categories. The set is fixed; per-category
// behavior differences live in the policy table, not in specialized types.
const (
	Feature Category = "feature"
	Release Category = "release"
	Hotfix  Category = "hotfix"
	Support Category = "support"
)

// Categories lists all categories in declaration order.
var Categories = []Category{Feature, Release, Hotfix, Support}

// Operation identifies one lifecycle operation on a supporting branch.
type Operation string

// Lifecycle operations.
const (
	OpList    Operation = "list"
	OpStart   Operation = "start"
	OpFinish  Operation = "finish"
	OpPublish Operation = "publish"
	OpTrack   Operation = "track"
	OpPull    Operation = "pull"
	OpDelete  Operation = "delete"
)

// Role names one of the two permanent branches symbolically, so policies can
// be declared without knowing the configured branch names.
type Role int

// Permanent-branch roles.
const (
	// RoleDevelop is the development branch (integration line)
	RoleDevelop Role = iota
	// RoleMaster is the production branch
	RoleMaster
)

// Policy carries the per-category variant data consumed by the Manager.
// One behavior contract, four rows of data.
type Policy struct {
	// Category this policy belongs to
	Category Category

	// DefaultPrefix used when no prefix is configured for the category
	DefaultPrefix string

	// Base is the permanent branch new branches start from
	Base Role

	// MergeTargets are the branches that receive a merge on finish, in
	// order. Production comes before development so a release reaches
	// master first. Empty for categories without finish.
	MergeTargets []Role

	// TagOnFinish creates an annotated version tag on the first merge
	// target after all merges succeed
	TagOnFinish bool

	// AllowArbitraryBase permits starting from any explicit commit, not
	// just commits on the base branch
	AllowArbitraryBase bool

	// SingleActive permits at most one branch of the category at a time
	SingleActive bool

	// Operations allowed for this category
	Operations []Operation
}

var policies = map[Category]Policy{
	Feature: {
		Category:      Feature,
		DefaultPrefix: "feature/",
		Base:          RoleDevelop,
		MergeTargets:  []Role{RoleDevelop},
		Operations: []Operation{
			OpList, OpStart, OpFinish, OpPublish, OpTrack, OpPull, OpDelete,
		},
	},
	Release: {
		Category:      Release,
		DefaultPrefix: "release/",
		Base:          RoleDevelop,
		MergeTargets:  []Role{RoleMaster, RoleDevelop},
		TagOnFinish:   true,
		SingleActive:  true,
		Operations: []Operation{
			OpList, OpStart, OpFinish, OpPublish, OpTrack, OpPull, OpDelete,
		},
	},
	Hotfix: {
		Category:      Hotfix,
		DefaultPrefix: "hotfix/",
		Base:          RoleMaster,
		MergeTargets:  []Role{RoleMaster, RoleDevelop},
		TagOnFinish:   true,
		SingleActive:  true,
		Operations: []Operation{
			OpList, OpStart, OpFinish, OpPublish, OpTrack, OpPull, OpDelete,
		},
	},
	Support: {
		Category:           Support,
		DefaultPrefix:      "support/",
		Base:               RoleMaster,
		AllowArbitraryBase: true,
		// Support branches are long-lived by design: no finish
		Operations: []Operation{
			OpList, OpStart, OpPublish, OpTrack, OpPull, OpDelete,
		},
	},
}

// PolicyFor returns the policy row for a category. The second return value
// is false for an unknown category.
func PolicyFor(category Category) (Policy, bool) {
	policy, ok := policies[category]
	return policy, ok
}

// Allows reports whether the policy permits the given operation.
func (p Policy) Allows(op Operation) bool {
	for _, allowed := range p.Operations {
		if allowed == op {
			return true
		}
	}
	return false
}

// DeleteTarget is the permanent branch an unforced delete checks merged-ness
// against: the development branch for features, production for the rest.
func (p Policy) DeleteTarget() Role {
	if p.Category == Feature {
		return RoleDevelop
	}
	return RoleMaster
}

// ParseCategory converts a string to a Category. The second return value is
// false for an unknown name.
func ParseCategory(name string) (Category, bool) {
	for _, category := range Categories {
		if string(category) == name {
			return category, true
		}
	}
	return "", false
}
