// Package testhelpers creates throwaway git repositories for tests that
// exercise the real git gateway.
package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo is a real git repository in a temporary directory.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a repository with a single commit on master.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.Command("git", "-c", "core.autocrlf=false", "init", "-b", "master", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init repo: %v\n%s", err, output)
	}

	repo := &GitRepo{Dir: dir}
	repo.Git(t, "config", "user.name", "Test User")
	repo.Git(t, "config", "user.email", "test@example.com")
	repo.Git(t, "config", "commit.gpgsign", "false")
	repo.CommitFile(t, "README.md", "hello", "initial commit")
	return repo
}

// Git runs a git command in the repository and fails the test on error.
func (r *GitRepo) Git(t *testing.T, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

// TryGit runs a git command and returns the error instead of failing.
func (r *GitRepo) TryGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// WriteFile writes a file relative to the repository root.
func (r *GitRepo) WriteFile(t *testing.T, name, content string) {
	t.Helper()

	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// CommitFile writes a file and commits it on the current branch.
func (r *GitRepo) CommitFile(t *testing.T, name, content, message string) {
	t.Helper()

	r.WriteFile(t, name, content)
	r.Git(t, "add", name)
	r.Git(t, "commit", "-m", message)
}

// CreateBranch creates a branch at HEAD without checking it out.
func (r *GitRepo) CreateBranch(t *testing.T, name string) {
	t.Helper()
	r.Git(t, "branch", name)
}

// Checkout switches to an existing branch.
func (r *GitRepo) Checkout(t *testing.T, name string) {
	t.Helper()
	r.Git(t, "checkout", name)
}

// CurrentBranch returns the name of the checked-out branch.
func (r *GitRepo) CurrentBranch(t *testing.T) string {
	t.Helper()
	return r.Git(t, "rev-parse", "--abbrev-ref", "HEAD")
}

// Head returns the commit hash HEAD points at.
func (r *GitRepo) Head(t *testing.T) string {
	t.Helper()
	return r.Git(t, "rev-parse", "HEAD")
}

// CreateRemote initializes a bare repository in a temporary directory and
// registers it as a remote of this repository. Returns the bare repo path.
func (r *GitRepo) CreateRemote(t *testing.T, name string) string {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "--bare", "-b", "master", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init bare repo: %v\n%s", err, output)
	}

	r.Git(t, "remote", "add", name, dir)
	return dir
}

// RequireGit skips the test when no git binary is on the PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}
