// Package testhelpers builds throwaway git repositories for tests.
package testhelpers

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// SetupGitRepo initializes a git repository in dir with a local identity.
func SetupGitRepo(t *testing.T, dir string) {
	t.Helper()
	Git(t, dir, "init")

	// Configure git user to avoid errors
	Git(t, dir, "config", "user.name", "Test User")
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "commit.gpgsign", "false")
	Git(t, dir, "config", "tag.gpgsign", "false")
}

// Git runs git in dir and returns its trimmed stdout.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	require.NoError(t, cmd.Run(), "git %s: %s", strings.Join(args, " "), stderr.String())
	return strings.TrimSpace(stdout.String())
}

// CreateFile writes content to dir/name, creating parent directories.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644), "failed to create file %s", name)
	return filePath
}

// ModifyFile overwrites a file with different content.
func ModifyFile(t *testing.T, filePath string) {
	t.Helper()
	err := os.WriteFile(filePath, []byte("modified content\n"), 0o644)
	require.NoError(t, err, "failed to modify file %s", filePath)
}

// GitAddAll stages every change, including names that look like options.
func GitAddAll(t *testing.T, repoDir string) {
	t.Helper()
	Git(t, repoDir, "add", "-A")
}

// GitCommit commits staged files.
func GitCommit(t *testing.T, repoDir, message string) {
	t.Helper()
	Git(t, repoDir, "commit", "-m", message)
}

// CommitFile creates name, stages it and commits it.
func CommitFile(t *testing.T, repoDir, name, content string) string {
	t.Helper()
	filePath := CreateFile(t, repoDir, name, content)
	Git(t, repoDir, "add", "--", name)
	GitCommit(t, repoDir, "add "+name)
	return filePath
}

// GitTag creates a lightweight tag at HEAD.
func GitTag(t *testing.T, repoDir, name string) {
	t.Helper()
	Git(t, repoDir, "tag", name)
}

// GitAnnotatedTag creates an annotated tag at HEAD.
func GitAnnotatedTag(t *testing.T, repoDir, name string) {
	t.Helper()
	Git(t, repoDir, "tag", "-a", name, "-m", "release "+name)
}

// GitGoldie creates a goldie instance for git tests.
func GitGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}

// NormalizePaths replaces the repository directory in output with $REPO so golden
// files do not depend on the temp directory.
func NormalizePaths(repoDir, output string) string {
	if resolved, err := filepath.EvalSymlinks(repoDir); err == nil && resolved != repoDir {
		output = strings.ReplaceAll(output, resolved, "$REPO")
	}
	return strings.ReplaceAll(output, repoDir, "$REPO")
}
