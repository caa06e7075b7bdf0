// Package service orchestrates slate scoring and ticket building runs.
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/parlay-builder/internal/builder"
	"github.com/yourusername/parlay-builder/internal/config"
	"github.com/yourusername/parlay-builder/internal/logger"
	"github.com/yourusername/parlay-builder/internal/metrics"
	"github.com/yourusername/parlay-builder/internal/models"
	"github.com/yourusername/parlay-builder/internal/scoring"
	"github.com/yourusername/parlay-builder/internal/slate"
	"github.com/yourusername/parlay-builder/internal/tone"
)

// Result is the output of one build run
type Result struct {
	RunID       uuid.UUID             `json:"run_id"`
	InputHash   string                `json:"input_hash"`
	Slate       models.Slate          `json:"slate"`
	Moonshot    []models.ScoredTicket `json:"moonshot"`
	Spray       []models.ScoredTicket `json:"spray"`
	Cached      bool                  `json:"cached"`
	CompletedAt time.Time             `json:"completed_at"`
	Duration    time.Duration         `json:"duration"`
}

// BuildService scores a slate and runs both ticket builders
type BuildService struct {
	moonshot *builder.Moonshot
	spray    *builder.Spray
	cache    *ResultCache
	logger   *logger.BuildLogger
}

// NewBuildService creates a build service from configuration
func NewBuildService(cfg *config.Config, log *logrus.Logger) *BuildService {
	if log == nil {
		log = logrus.New()
	}
	return &BuildService{
		moonshot: builder.NewMoonshot(cfg.Moonshot.TargetGrossPerUnit, cfg.Filters.MinEdgeRatio, cfg.Moonshot.MaxLegs),
		spray: builder.NewSpray(cfg.Spray.BandLow(), cfg.Spray.BandHigh(), cfg.Filters.MinEdgeRatio,
			cfg.Spray.MaxLegs, cfg.Spray.MaxTickets),
		cache:  NewResultCache(cfg.CacheTTL(), cfg.Cache.MaxSize),
		logger: logger.NewBuildLogger(log),
	}
}

// Parameters returns the combined builder parameters
func (s *BuildService) Parameters() map[string]interface{} {
	return map[string]interface{}{
		s.moonshot.Name(): s.moonshot.Parameters(),
		s.spray.Name():    s.spray.Parameters(),
	}
}

// Cache exposes the result cache
func (s *BuildService) Cache() *ResultCache {
	return s.cache
}

// Run parses, scores and builds tickets for raw slate CSV data.
// Identical input returns the cached result with Cached set.
func (s *BuildService) Run(ctx context.Context, slateData []byte) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := HashInput(slateData, s.Parameters())
	if cached, ok := s.cache.Get(key); ok {
		hit := *cached
		hit.Cached = true
		s.logger.WithRun(hit.RunID.String()).LogBuildCompleted(len(hit.Moonshot), len(hit.Spray), true, msSince(start))
		metrics.RecordBuildRun("cached", time.Since(start).Seconds(), time.Now().Unix())
		return &hit, nil
	}

	raws, err := slate.Read(bytes.NewReader(slateData))
	if err != nil {
		metrics.RecordBuildRun("failure", time.Since(start).Seconds(), time.Now().Unix())
		return nil, fmt.Errorf("failed to read slate: %w", err)
	}

	result, err := s.build(uuid.New(), raws)
	if err != nil {
		metrics.RecordBuildRun("failure", time.Since(start).Seconds(), time.Now().Unix())
		return nil, err
	}
	result.InputHash = key
	result.CompletedAt = time.Now().UTC()
	result.Duration = time.Since(start)

	s.cache.Set(key, result)
	s.logger.WithRun(result.RunID.String()).LogBuildCompleted(len(result.Moonshot), len(result.Spray), false, msSince(start))
	metrics.RecordBuildRun("success", result.Duration.Seconds(), result.CompletedAt.Unix())
	return result, nil
}

// Score parses and scores a slate without building tickets
func (s *BuildService) Score(slateData []byte) (models.Slate, error) {
	raws, err := slate.Read(bytes.NewReader(slateData))
	if err != nil {
		return models.Slate{}, fmt.Errorf("failed to read slate: %w", err)
	}
	return scoring.ScoreSlate(raws), nil
}

func (s *BuildService) build(runID uuid.UUID, raws []models.RawLeg) (*Result, error) {
	runLogger := s.logger.WithRun(runID.String())

	scored := scoring.ScoreSlate(raws)
	runLogger.LogSlateScored(scored)
	for _, rowErr := range scored.Rejected {
		runLogger.LogRowRejected(rowErr)
	}
	metrics.RecordLegs(len(scored.Legs), scored.Skipped, len(scored.Rejected))

	moonshotTickets := s.moonshot.Build(scored.Legs)
	diag := s.moonshot.Diagnose(scored.Legs, moonshotTickets)
	runLogger.LogBuilderResult(s.moonshot.Name(), s.moonshot.Parameters(), diag.PoolSize, diag.Tickets, diag.Reason)

	sprayTickets := s.spray.Build(scored.Legs)
	diag = s.spray.Diagnose(scored.Legs, sprayTickets)
	runLogger.LogBuilderResult(s.spray.Name(), s.spray.Parameters(), diag.PoolSize, diag.Tickets, diag.Reason)

	moonshot, err := evaluateAll(s.moonshot.Name(), moonshotTickets)
	if err != nil {
		return nil, err
	}
	spray, err := evaluateAll(s.spray.Name(), sprayTickets)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:    runID,
		Slate:    scored,
		Moonshot: moonshot,
		Spray:    spray,
	}, nil
}

// evaluateAll prices each ticket, labels it and assigns T1..Tn ids
func evaluateAll(builderName string, tickets []models.Ticket) ([]models.ScoredTicket, error) {
	out := make([]models.ScoredTicket, 0, len(tickets))
	positive := 0
	for i, ticket := range tickets {
		eval, err := scoring.EvaluateTicket(ticket)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s ticket %d: %w", builderName, i+1, err)
		}
		label := tone.Classify(eval)
		if eval.IsPositiveEV() {
			positive++
		}
		metrics.RecordTicket(builderName, eval.EV)
		out = append(out, models.ScoredTicket{
			ID:         fmt.Sprintf("T%d", i+1),
			Builder:    builderName,
			Ticket:     ticket,
			Evaluation: eval,
			Tone:       string(label.Tone),
			Summary:    label.Summary,
		})
	}
	metrics.UpdatePositiveEVTickets(builderName, positive)
	return out, nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
