// Package cli provides the command-line interface for rekindle.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rekindle-bot/rekindle/internal/git"
	"github.com/rekindle-bot/rekindle/internal/loop"
	"github.com/rekindle-bot/rekindle/internal/schedule"
	"github.com/rekindle-bot/rekindle/internal/swap"
)

// OnceFlags holds flags specific to the once command.
type OnceFlags struct {
	// RepoPath overrides the configured repository path.
	RepoPath string
	// Pull makes the iteration pull before committing, as the loop does
	// after a failed push.
	Pull bool
}

// AddOnceCommand adds the once command to the root command.
func AddOnceCommand(root *cobra.Command) {
	flags := &OnceFlags{}

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single keep-alive iteration and exit",
		Long: `Once performs exactly one iteration (reset, change, commit, push) for the
label active right now, then exits. Useful for verifying the repository,
credentials, and schedule before leaving the loop unattended.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.RepoPath, "repo", "", "path to the pushed repository (overrides config)")
	cmd.Flags().BoolVar(&flags.Pull, "pull", false, "pull the remote branch before committing")

	root.AddCommand(cmd)
}

// runOnce performs one orchestrated iteration and reports the outcome.
func runOnce(ctx context.Context, out io.Writer, flags *OnceFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := loadRunConfig(ctx, &RunFlags{RepoPath: flags.RepoPath})
	if err != nil {
		return err
	}

	runner, err := git.NewRunner(ctx, cfg.Repo.Path,
		git.WithRemote(cfg.Repo.Remote),
		git.WithBranch(cfg.Repo.Branch),
	)
	if err != nil {
		return err
	}

	labels, err := schedule.NewWeekly(cfg.Schedule.Anchor, cfg.Schedule.Prefix, cfg.Schedule.First, cfg.Schedule.Weeks)
	if err != nil {
		return err
	}
	label, err := labels.Current()
	if err != nil {
		return err
	}

	swapper := swap.New(cfg.Repo.Path,
		swap.WithExtensions(cfg.Swap.PrimaryExt, cfg.Swap.SecondaryExt),
		swap.WithLogger(logger),
	)

	orchestrator := loop.NewOrchestrator(runner, swapper,
		loop.WithLogger(logger),
		loop.WithPrePushDelay(cfg.Repo.PrePushDelay),
	)

	pushed, err := orchestrator.CauseNewRun(ctx, label, flags.Pull)
	if err != nil {
		return err
	}

	if pushed {
		_, _ = fmt.Fprintf(out, "pushed a new run of %s\n", label)
	} else {
		_, _ = fmt.Fprintf(out, "nothing to change for %s, no push\n", label)
	}
	return nil
}
