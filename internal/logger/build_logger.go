// Package logger provides build-run logging.
package logger

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-builder/internal/models"
)

// BuildLogger provides dedicated logging for ticket build runs.
type BuildLogger struct {
	*logrus.Entry
}

// NewBuildLogger creates a new build logger.
func NewBuildLogger(baseLogger *logrus.Logger) *BuildLogger {
	return &BuildLogger{
		Entry: baseLogger.WithField("component", "builder"),
	}
}

// WithRun returns a logger tagged with a run id.
func (bl *BuildLogger) WithRun(runID string) *BuildLogger {
	return &BuildLogger{Entry: bl.WithField("run_id", runID)}
}

// LogSlateScored logs the outcome of scoring a slate.
func (bl *BuildLogger) LogSlateScored(slate models.Slate) {
	bl.WithFields(logrus.Fields{
		"legs_scored":   len(slate.Legs),
		"legs_skipped":  slate.Skipped,
		"legs_rejected": len(slate.Rejected),
	}).Info("Slate scored")
}

// LogRowRejected logs a slate row that failed scoring.
func (bl *BuildLogger) LogRowRejected(rowErr models.RowError) {
	bl.WithFields(logrus.Fields{
		"row":    rowErr.Index,
		"leg_id": rowErr.LegID,
	}).WithError(rowErr.Err).Warn("Slate row rejected")
}

// LogBuilderResult logs the tickets produced by one builder.
func (bl *BuildLogger) LogBuilderResult(builderName string, params map[string]interface{}, poolSize, tickets int, reason error) {
	entry := bl.WithFields(logrus.Fields{
		"builder":    builderName,
		"parameters": params,
		"pool_size":  poolSize,
		"tickets":    tickets,
	})
	if reason != nil {
		entry.WithField("reason", reason.Error()).Info("Builder produced no tickets")
		return
	}
	entry.Info("Builder completed")
}

// LogBuildCompleted logs the end of a build run.
func (bl *BuildLogger) LogBuildCompleted(moonshotTickets, sprayTickets int, cached bool, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"moonshot_tickets": moonshotTickets,
		"spray_tickets":    sprayTickets,
		"cached":           cached,
		"duration_ms":      durationMs,
	}).Info("Build run completed")
}
