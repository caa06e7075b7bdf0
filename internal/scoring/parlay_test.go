package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-builder/internal/models"
)

func scoredLegs(t *testing.T) []models.Leg {
	t.Helper()
	var legs []models.Leg
	for _, r := range []models.RawLeg{raw("L1", 2.0, 0.55), raw("L2", 1.8, 0.60), raw("L3", 3.0, 0.40)} {
		leg, err := Score(r)
		require.NoError(t, err)
		legs = append(legs, leg)
	}
	return legs
}

func TestEvaluate(t *testing.T) {
	legs := scoredLegs(t)

	ev, err := Evaluate(legs)
	require.NoError(t, err)
	assert.InDelta(t, 10.8, ev.DStar, 1e-9)
	assert.InDelta(t, 0.132, ev.PStar, 1e-9)
	assert.InDelta(t, 0.132*10.8-1, ev.EV, 1e-9)
	assert.True(t, ev.IsPositiveEV())
}

func TestEvaluateOrderIndependent(t *testing.T) {
	legs := scoredLegs(t)
	forward, err := Evaluate(legs)
	require.NoError(t, err)

	reversed := []models.Leg{legs[2], legs[0], legs[1]}
	permuted, err := Evaluate(reversed)
	require.NoError(t, err)

	assert.InDelta(t, forward.DStar, permuted.DStar, 1e-12)
	assert.InDelta(t, forward.PStar, permuted.PStar, 1e-12)
	assert.InDelta(t, forward.EV, permuted.EV, 1e-12)
}

func TestEvaluateSingleLeg(t *testing.T) {
	legs := scoredLegs(t)
	ev, err := Evaluate(legs[:1])
	require.NoError(t, err)
	assert.Equal(t, 2.0, ev.DStar)
	assert.Equal(t, 0.55, ev.PStar)
	assert.InDelta(t, 0.1, ev.EV, 1e-12)
}

func TestEvaluateEmpty(t *testing.T) {
	_, err := Evaluate(nil)
	assert.ErrorIs(t, err, models.ErrEmptyTicket)

	_, err = EvaluateTicket(models.Ticket{})
	assert.ErrorIs(t, err, models.ErrEmptyTicket)
}
