package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-builder/internal/report"
	"github.com/yourusername/parlay-builder/internal/service"
	"github.com/yourusername/parlay-builder/internal/slate"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Score the slate and write ticket tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source := newSlateSource()
		defer source.Close()

		svc := service.NewBuildService(cfg, log)
		result, err := runBuild(ctx, svc, source)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.ConsoleSummary(result.RunID.String(), result.Slate, result.Moonshot, result.Spray))
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the slate and write legs_scored.csv only",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := newSlateSource()
		defer source.Close()

		data, err := source.Load(cmd.Context(), cfg.Slate.Path)
		if err != nil {
			return err
		}
		scored, err := service.NewBuildService(cfg, log).Score(data)
		if err != nil {
			return err
		}
		for _, rowErr := range scored.Rejected {
			log.WithField("leg_id", rowErr.LegID).WithError(rowErr.Err).Warn("Row rejected")
		}

		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path := filepath.Join(cfg.Output.Dir, report.LegsFile)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := report.WriteLegs(f, scored.Legs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scored %d legs (%d skipped, %d rejected) -> %s\n",
			len(scored.Legs), scored.Skipped, len(scored.Rejected), path)
		return nil
	},
}

// runBuild loads the slate, runs a build and writes output tables for fresh results
func runBuild(ctx context.Context, svc *service.BuildService, source *slate.Source) (*service.Result, error) {
	data, err := source.Load(ctx, cfg.Slate.Path)
	if err != nil {
		return nil, err
	}
	result, err := svc.Run(ctx, data)
	if err != nil {
		return nil, err
	}
	if result.Cached {
		return result, nil
	}

	paths, err := report.WriteFiles(cfg.Output.Dir, result.Slate.Legs, result.Moonshot, result.Spray)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"run_id": result.RunID.String(),
		"files":  paths,
	}).Info("Output tables written")
	return result, nil
}
