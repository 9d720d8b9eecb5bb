// Package cli provides the command-line interface for rekindle.
package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rekindle-bot/rekindle/internal/backoff"
	"github.com/rekindle-bot/rekindle/internal/config"
	"github.com/rekindle-bot/rekindle/internal/errors"
	"github.com/rekindle-bot/rekindle/internal/git"
	"github.com/rekindle-bot/rekindle/internal/loop"
	"github.com/rekindle-bot/rekindle/internal/metrics"
	"github.com/rekindle-bot/rekindle/internal/schedule"
	"github.com/rekindle-bot/rekindle/internal/swap"
)

// metricsShutdownTimeout bounds how long shutdown waits for the metrics
// server to drain.
const metricsShutdownTimeout = 5 * time.Second

// RunFlags holds flags specific to the run command.
type RunFlags struct {
	// RepoPath overrides the configured repository path.
	RepoPath string
	// MetricsAddr overrides the configured metrics listen address.
	MetricsAddr string
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command) {
	flags := &RunFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the keep-alive push loop until interrupted",
		Long: `Run starts the control loop: every iteration resets the repository,
makes a trivial change for the current run label, commits, and pushes.
The loop keeps going until interrupted, until the label schedule runs out,
or until too many consecutive unexpected errors.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoop(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.RepoPath, "repo", "", "path to the pushed repository (overrides config)")
	cmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "address for the Prometheus /metrics endpoint (overrides config)")

	root.AddCommand(cmd)
}

// runLoop wires the components together and drives the loop until a terminal
// condition. An operator interrupt is a clean exit; everything else surfaces
// as an error.
func runLoop(ctx context.Context, flags *RunFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := loadRunConfig(ctx, flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prometheus.Registry
	if cfg.Metrics.ListenAddr != "" {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	swapper := swap.New(cfg.Repo.Path,
		swap.WithExtensions(cfg.Swap.PrimaryExt, cfg.Swap.SecondaryExt),
		swap.WithLogger(logger),
	)

	waiter := backoff.New(backoff.Config{
		SuccessInterval: cfg.Backoff.SuccessInterval,
		ErrorInterval:   cfg.Backoff.ErrorInterval,
		SkippedInterval: cfg.Backoff.SkippedInterval,
		MaxErrorRetries: cfg.Backoff.MaxErrorRetries,
	}, backoff.WithLogger(logger), backoff.WithRecorder(recorder))

	orchestrator := loop.NewOrchestrator(runner, swapper,
		loop.WithLogger(logger),
		loop.WithPrePushDelay(cfg.Repo.PrePushDelay),
	)

	controlLoop := loop.NewLoop(orchestrator, runner, labels, waiter,
		loop.WithLoopLogger(logger),
		loop.WithLoopRecorder(recorder),
	)

	logger.Info().
		Str("repo", cfg.Repo.Path).
		Str("remote", cfg.Repo.Remote).
		Str("branch", cfg.Repo.Branch).
		Msg("starting keep-alive loop")

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Metrics.ListenAddr != "" {
		serveMetrics(gctx, g, logger, cfg.Metrics.ListenAddr, registry)
	}
	g.Go(func() error {
		return controlLoop.Run(gctx)
	})

	err = g.Wait()
	if stderrors.Is(err, context.Canceled) {
		logger.Info().Msg("interrupted, shutting down")
		return nil
	}
	return err
}

// loadRunConfig loads the layered configuration with the run command's flag
// overrides applied, and insists on a repository path.
func loadRunConfig(ctx context.Context, flags *RunFlags) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(ctx, &config.Config{
		Repo:    config.RepoConfig{Path: flags.RepoPath},
		Metrics: config.MetricsConfig{ListenAddr: flags.MetricsAddr},
	})
	if err != nil {
		return nil, err
	}

	if cfg.Repo.Path == "" {
		return nil, errors.Wrap(errors.ErrRepoPathMissing,
			"set repo.path in the config, REPO_PATH in the environment, or pass --repo")
	}
	return cfg, nil
}

// serveMetrics runs the Prometheus endpoint alongside the loop and shuts it
// down when the group context ends.
func serveMetrics(ctx context.Context, g *errgroup.Group, logger zerolog.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(registry))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "metrics server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
