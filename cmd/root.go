package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/revstamp/cmd/ldflags"
	"github.com/LegacyCodeHQ/revstamp/cmd/show"
	"github.com/LegacyCodeHQ/revstamp/cmd/watch"

	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revstamp",
		Short: "Compute a git revision string for embedding into build artifacts",
		Long: `revstamp computes a human-readable revision for the git working tree a build
runs in: the tag HEAD points at or the short commit hash, with a trailing "+"
when tracked files have uncommitted changes.

It also emits rerun-if-changed directives naming the files whose modification
should trigger recomputation, and degrades to a warning when git is missing or
the directory is not a repository.

Use 'revstamp <command> --help' for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		Annotations:  map[string]string{"buildDate": buildDate, "commit": commit},
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.AddCommand(show.NewCommand())
	cmd.AddCommand(ldflags.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
