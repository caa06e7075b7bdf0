package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-builder/internal/config"
	"github.com/yourusername/parlay-builder/internal/models"
	"github.com/yourusername/parlay-builder/internal/report"
)

const referenceSlate = `leg_id,sport,game,market,selection,decimal_odds,model_prob
L1,NBA,BOS@NYK,ML,BOS,2.0,0.55
L2,NBA,LAL@GSW,Spread,GSW -3.5,1.8,0.60
L3,NFL,KC@BUF,Total,Over 47.5,3.0,0.40
L4,NHL,TOR@MTL,ML,MTL,2.4,
L5,MLB,NYY@BOS,ML,NYY,-1.5,0.5
`

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "parlay-builder", Environment: "development", LogLevel: "info"},
		Filters:  config.FiltersConfig{MinEdgeRatio: 1.0},
		Moonshot: config.MoonshotConfig{TargetGrossPerUnit: 5.0, MaxLegs: 3},
		Spray:    config.SprayConfig{PayoutBand: []float64{3.5, 6.5}, MaxLegs: 2, MaxTickets: 5},
		Cache:    config.CacheConfig{TTLSeconds: 60, MaxSize: 8},
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func legIDs(st models.ScoredTicket) []string {
	ids := make([]string, 0, st.Ticket.Len())
	for _, leg := range st.Ticket.Legs {
		ids = append(ids, leg.LegID)
	}
	return ids
}

func TestBuildServiceRun(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())

	result, err := svc.Run(context.Background(), []byte(referenceSlate))
	require.NoError(t, err)

	assert.Len(t, result.Slate.Legs, 3)
	assert.Equal(t, 1, result.Slate.Skipped)
	require.Len(t, result.Slate.Rejected, 1)
	assert.Equal(t, "L5", result.Slate.Rejected[0].LegID)
	assert.False(t, result.Cached)
	assert.NotEmpty(t, result.InputHash)

	require.Len(t, result.Moonshot, 2)
	assert.Equal(t, "T1", result.Moonshot[0].ID)
	assert.Equal(t, []string{"L3", "L1"}, legIDs(result.Moonshot[0]))
	assert.InDelta(t, 6.0, result.Moonshot[0].Evaluation.DStar, 1e-9)
	assert.InDelta(t, 0.22, result.Moonshot[0].Evaluation.PStar, 1e-9)
	assert.Equal(t, "high-confidence multi-leg", result.Moonshot[0].Tone)

	// Spray seeds in efficiency order L3, L1, L2; each pairs with the best in-band partner.
	require.Len(t, result.Spray, 3)
	assert.Equal(t, []string{"L3", "L1"}, legIDs(result.Spray[0]))
	assert.Equal(t, []string{"L1", "L3"}, legIDs(result.Spray[1]))
	assert.Equal(t, []string{"L2", "L3"}, legIDs(result.Spray[2]))
	for _, st := range result.Spray {
		assert.GreaterOrEqual(t, st.Evaluation.DStar, 3.5)
		assert.LessOrEqual(t, st.Evaluation.DStar, 6.5)
		assert.Equal(t, "spray", st.Builder)
	}
}

func TestBuildServiceCachesIdenticalInput(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())

	first, err := svc.Run(context.Background(), []byte(referenceSlate))
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), []byte(referenceSlate))
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.False(t, first.Cached)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, first.Moonshot, second.Moonshot)

	hits, misses, _ := svc.Cache().Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestBuildServiceEmptySlate(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())

	result, err := svc.Run(context.Background(), []byte("leg_id,sport,game,market,selection,decimal_odds,model_prob\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Moonshot)
	assert.Empty(t, result.Spray)
}

func TestBuildServiceMalformedSlate(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())

	_, err := svc.Run(context.Background(), []byte("leg_id,price\nL1,2.0\n"))
	assert.Error(t, err)
}

func TestBuildServiceCancelledContext(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, []byte(referenceSlate))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildServiceScore(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())

	scored, err := svc.Score([]byte(referenceSlate))
	require.NoError(t, err)
	assert.Len(t, scored.Legs, 3)
	assert.InDelta(t, 1.2, scored.Legs[2].EdgeRatio, 1e-12)
}

const slateHeader = "leg_id,sport,game,market,selection,decimal_odds,model_prob\n"

func TestBuildServiceRepeatedLegID(t *testing.T) {
	svc := NewBuildService(testConfig(), quietLogger())
	data := slateHeader +
		"A,NFL,KC@BUF,ML,a,3.0,0.4\n" +
		"A,NFL,KC@BUF,ML,a,3.0,0.4\n"

	result, err := svc.Run(context.Background(), []byte(data))
	require.NoError(t, err)

	require.Len(t, result.Slate.Legs, 1)
	require.Len(t, result.Slate.Rejected, 1)
	assert.ErrorIs(t, result.Slate.Rejected[0], models.ErrDuplicateLegID)
	for _, st := range append(result.Moonshot, result.Spray...) {
		_, err := models.NewTicket(st.Ticket.Legs...)
		assert.NoError(t, err, "ticket %s", st.ID)
	}
	assert.Empty(t, result.Moonshot)
}

func TestBuildServiceOverflowingPriceWritesReport(t *testing.T) {
	cfg := testConfig()
	cfg.Moonshot.TargetGrossPerUnit = 1e300
	svc := NewBuildService(cfg, quietLogger())
	data := slateHeader +
		"A,NFL,KC@BUF,ML,a,1e200,0.5\n" +
		"B,NBA,BOS@NYK,ML,b,1e200,0.5\n"

	result, err := svc.Run(context.Background(), []byte(data))
	require.NoError(t, err)
	require.Len(t, result.Moonshot, 1)

	var buf bytes.Buffer
	require.NotPanics(t, func() { require.NoError(t, report.WriteTickets(&buf, result.Moonshot)) })
	assert.Contains(t, buf.String(), "+Inf")
}
