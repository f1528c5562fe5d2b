package ldflags

import (
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/revstamp/cmd/internal/cliutil"
	"github.com/LegacyCodeHQ/revstamp/revision"
	"github.com/LegacyCodeHQ/revstamp/vcs/git"

	"github.com/spf13/cobra"
)

type ldflagsOptions struct {
	variable string
	bare     bool
	gitTool  string
}

// NewCommand returns a new ldflags command instance.
func NewCommand() *cobra.Command {
	opts := &ldflagsOptions{
		variable: "main.version",
	}

	cmd := &cobra.Command{
		Use:   "ldflags [dir]",
		Short: "Print a linker flag that embeds the revision into a Go binary",
		Long: `Print "-X <var>=<revision>" for use with go build -ldflags.

Nothing is printed when no revision is available, so the build keeps the
variable's default value.

Examples:
  go build -ldflags "$(revstamp ldflags)" ./cmd/app
  go build -ldflags "$(revstamp ldflags --var github.com/acme/app/cmd.commit)" .`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLdflags(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variable, "var", opts.variable, "Fully qualified string variable to set")
	cmd.Flags().BoolVar(&opts.bare, "bare", false, "Never append the local-modification marker")
	cmd.Flags().StringVar(&opts.gitTool, "git", git.DefaultTool, "git executable to run")

	return cmd
}

func runLdflags(cmd *cobra.Command, args []string, opts *ldflagsOptions) error {
	dir, err := cliutil.TargetDir(args)
	if err != nil {
		return err
	}

	mode := revision.Auto
	if opts.bare {
		mode = revision.Bare
	}

	resolver := revision.NewResolver(
		revision.WithRunner(git.NewRunner(git.WithTool(opts.gitTool))),
		revision.WithOutput(io.Discard),
	)
	rev, err := resolver.Resolve(dir, mode, revision.Sources{})
	if err != nil {
		return fmt.Errorf("failed to resolve revision: %w", err)
	}

	flag, err := revision.LinkerFlag(opts.variable, rev)
	if err != nil {
		return err
	}
	if flag == "" {
		cliutil.PrintWarning(cmd.ErrOrStderr(), rev.Reason)
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), flag)
	return err
}
