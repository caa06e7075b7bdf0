package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-builder/internal/health"
	"github.com/yourusername/parlay-builder/internal/metrics"
	"github.com/yourusername/parlay-builder/internal/scheduler"
	"github.com/yourusername/parlay-builder/internal/service"
)

const defaultRebuildCron = "*/15 * * * *"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild tickets on a schedule and serve health and metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source := newSlateSource()
		defer source.Close()
		svc := service.NewBuildService(cfg, log)

		var healthServer *health.Server
		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
			healthServer = health.NewServer(health.Config{
				ServiceName: cfg.App.Name,
				Version:     Version,
				Commit:      GitCommit,
				Port:        strconv.Itoa(cfg.Metrics.Port),
				Logger:      log,
				Metrics:     metrics.Handler(),
				MetricsPath: cfg.Metrics.Path,
			})
			if err := healthServer.Start(ctx); err != nil {
				return fmt.Errorf("failed to start health server: %w", err)
			}
		}

		rebuild := func(jobCtx context.Context) error {
			result, err := runBuild(jobCtx, svc, source)
			if err != nil {
				return err
			}
			if healthServer != nil {
				healthServer.MarkBuilt(result.RunID.String(), result.CompletedAt)
			}
			return nil
		}

		// First build runs immediately so readiness does not wait for the first tick.
		if err := rebuild(ctx); err != nil {
			log.WithError(err).Error("Initial build failed")
		}

		expr := cfg.Schedule.RebuildCron
		if expr == "" {
			expr = defaultRebuildCron
		}
		breaker := scheduler.NewCircuitBreaker(scheduler.CircuitBreakerConfig{
			MaxFailureCount:   cfg.Schedule.MaxFailures,
			FailureTimeWindow: cfg.Schedule.FailureWindow(),
			CooldownPeriod:    cfg.Schedule.Cooldown(),
		}, log)
		sched := scheduler.NewScheduler(log, cfg.SlateTimeout()*2).WithCircuitBreaker(breaker)
		if _, err := sched.ScheduleRebuild(expr, "rebuild", rebuild); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		log.WithField("cron", expr).Info("Watching slate")
		<-ctx.Done()
		log.Info("Shutting down")
		return nil
	},
}
