package show

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/LegacyCodeHQ/revstamp/cmd/internal/cliutil"
	"github.com/LegacyCodeHQ/revstamp/revision"
	"github.com/LegacyCodeHQ/revstamp/vcs/git"

	"github.com/spf13/cobra"
)

type showOptions struct {
	bare     bool
	discover bool
	sources  []string
	emit     string
	prefix   string
	gitTool  string
}

// NewCommand returns a new show command instance.
func NewCommand() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:     "show [dir]",
		Aliases: []string{"revision", "rev"},
		Short:   "Print the revision of a git working tree",
		Long: `Print the revision of the git working tree containing dir (default: current directory).

The revision is the tag HEAD points at or the short commit hash, followed by "+"
when tracked files have uncommitted changes. Nothing is printed when git is not
installed or dir is not inside a repository.

Dependency-tracking directives (rerun-if-changed=<path>, warning=<message>) can be
written with --emit so a build tool knows when to run this again.

Examples:
  revstamp show
  revstamp show --bare ./service
  revstamp show --discover --emit - --prefix cargo:
  revstamp show -s schema.json -s go.mod --emit build/revision.deps`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.bare, "bare", false, "Never append the local-modification marker")
	cmd.Flags().BoolVar(&opts.discover, "discover", false, "Watch every tracked file in addition to git metadata")
	cmd.Flags().StringArrayVarP(&opts.sources, "source", "s", nil, "Extra path to watch, relative to the working-tree root (repeatable)")
	cmd.Flags().StringVar(&opts.emit, "emit", "", "Write directives to this file, or - for stdout (default: discard)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Prefix for every directive line, e.g. cargo:")
	cmd.Flags().StringVar(&opts.gitTool, "git", git.DefaultTool, "git executable to run")
	cmd.MarkFlagsMutuallyExclusive("discover", "source")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, opts *showOptions) error {
	dir, err := cliutil.TargetDir(args)
	if err != nil {
		return err
	}

	sink, closeSink, err := openSink(cmd, opts.emit)
	if err != nil {
		return err
	}
	defer closeSink()

	rev, err := resolve(dir, sink, opts)
	if err != nil {
		return fmt.Errorf("failed to resolve revision: %w", err)
	}

	if rev.Status != revision.Available {
		slog.Debug("revision unavailable", "dir", dir, "reason", rev.Reason)
		cliutil.PrintWarning(cmd.ErrOrStderr(), rev.Reason)
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rev.ID)
	return err
}

func resolve(dir string, sink io.Writer, opts *showOptions) (revision.Revision, error) {
	resolver := revision.NewResolver(
		revision.WithRunner(git.NewRunner(git.WithTool(opts.gitTool))),
		revision.WithOutput(sink),
		revision.WithPrefix(opts.prefix),
	)

	mode := revision.Auto
	if opts.bare {
		mode = revision.Bare
	}

	var sources revision.Sources
	switch {
	case opts.discover:
		sources = revision.Tracked()
	case len(opts.sources) > 0:
		sources = revision.Paths(opts.sources...)
	}

	return resolver.Resolve(dir, mode, sources)
}

func openSink(cmd *cobra.Command, emit string) (io.Writer, func(), error) {
	switch emit {
	case "":
		return io.Discard, func() {}, nil
	case "-":
		return cmd.OutOrStdout(), func() {}, nil
	}

	f, err := os.Create(emit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create directive file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
