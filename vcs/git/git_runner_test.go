package git

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/revstamp/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingTool = "revstamp-test-no-such-git"

func TestInvocation_String(t *testing.T) {
	inv := Invocation{Tool: "git", Dir: "/tmp", Args: []string{"rev-parse", "--short", "HEAD"}}

	assert.Equal(t, "git rev-parse --short HEAD", inv.String())
	assert.Equal(t, "git", Invocation{Tool: "git"}.String())
}

func TestNewRunner_Tool(t *testing.T) {
	assert.Equal(t, DefaultTool, NewRunner().Tool())
	assert.Equal(t, "/opt/git/bin/git", NewRunner(WithTool("/opt/git/bin/git")).Tool())
	assert.Equal(t, DefaultTool, NewRunner(WithTool("")).Tool())
}

func TestRun_ReportsSuccessInsideRepository(t *testing.T) {
	dir := t.TempDir()
	testhelpers.SetupGitRepo(t, dir)

	ok, err := NewRunner().Run(dir, "rev-parse", "--git-dir")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	dir := t.TempDir()

	ok, err := NewRunner().Run(dir, "rev-parse", "--git-dir")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRun_MissingToolIsLaunchError(t *testing.T) {
	_, err := NewRunner(WithTool(missingTool)).Run(t.TempDir(), "rev-parse", "--git-dir")

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, missingTool+" rev-parse --git-dir", launchErr.Command)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
	assert.Contains(t, err.Error(), "failed to run `"+missingTool+" rev-parse --git-dir`")
}

func TestOutput_CapturesStdout(t *testing.T) {
	dir := t.TempDir()
	testhelpers.SetupGitRepo(t, dir)
	testhelpers.Git(t, dir, "config", "revstamp.test", "captured")

	out, err := NewRunner().Output(dir, "config", "revstamp.test")

	require.NoError(t, err)
	assert.Equal(t, "captured\n", string(out))
}

func TestOutput_NonZeroExitIsCommandError(t *testing.T) {
	dir := t.TempDir()

	_, err := NewRunner().Output(dir, "rev-parse", "--git-dir")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "git rev-parse --git-dir", cmdErr.Command)
	assert.True(t, cmdErr.HasExitCode)
	assert.Equal(t, 128, cmdErr.ExitCode)
	assert.NotEmpty(t, cmdErr.Stderr)
	assert.Contains(t, err.Error(), "`git rev-parse --git-dir` reported non-zero exit-status (128)")
}

func TestOutput_MissingToolIsLaunchError(t *testing.T) {
	_, err := NewRunner(WithTool(missingTool)).Output(t.TempDir(), "status")

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, missingTool+" status", launchErr.Command)
}

func TestOutput_MissingDirectoryIsLaunchError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := NewRunner().Output(dir, "status")

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
}

func TestCommandError_WithoutExitCode(t *testing.T) {
	err := &CommandError{Command: "git status"}

	assert.Equal(t, "`git status` reported non-zero exit-status", err.Error())
}

func TestText_DecodesOutput(t *testing.T) {
	dir := t.TempDir()
	testhelpers.SetupGitRepo(t, dir)
	testhelpers.Git(t, dir, "config", "revstamp.test", "grüße")

	text, err := NewRunner().Text(dir, "config", "revstamp.test")

	require.NoError(t, err)
	assert.Equal(t, "grüße\n", text)
}

func TestPath_StripsSingleTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	testhelpers.SetupGitRepo(t, dir)

	p, err := NewRunner().Path(dir, "rev-parse", "--git-dir")

	require.NoError(t, err)
	assert.Equal(t, ".git", p)
}

func TestRunner_DisablesOptionalLocks(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRunner().command(Invocation{Tool: DefaultTool, Dir: dir, Args: []string{"status"}})

	assert.Contains(t, cmd.Env, "GIT_OPTIONAL_LOCKS=0")
	assert.Nil(t, cmd.Stdin)
	assert.Equal(t, dir, cmd.Dir)
}
