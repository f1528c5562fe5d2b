package watch

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LegacyCodeHQ/revstamp/cmd/internal/cliutil"
	"github.com/LegacyCodeHQ/revstamp/vcs/git"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	bare         bool
	discover     bool
	gitTool      string
	pollInterval time.Duration
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		discover:     true,
		pollInterval: 2 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Print the revision every time it changes",
		Long: `Watch the paths a build would depend on (git HEAD, index and refs, and by
default every tracked file) and print the revision each time it changes.

Examples:
  revstamp watch
  revstamp watch --discover=false --poll 0 ./service`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.bare, "bare", false, "Never append the local-modification marker")
	cmd.Flags().BoolVar(&opts.discover, "discover", opts.discover, "Watch every tracked file in addition to git metadata")
	cmd.Flags().StringVar(&opts.gitTool, "git", git.DefaultTool, "git executable to run")
	cmd.Flags().DurationVar(&opts.pollInterval, "poll", opts.pollInterval, "Also recompute on this interval (0 disables polling)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *watchOptions) error {
	dir, err := cliutil.TargetDir(args)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := newRevisionWatcher(dir, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return watchAndReport(ctx, w, opts.pollInterval)
}
