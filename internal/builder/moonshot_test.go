package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-builder/internal/models"
)

func TestMoonshotReferenceSlate(t *testing.T) {
	legs := referencePool(t)
	m := NewMoonshot(5.0, 1.0, 3)

	tickets := m.Build(legs)

	// L3 has the highest efficiency, so every variant is built around it.
	require.Len(t, tickets, 2)
	assert.Equal(t, []string{"L3", "L1"}, legIDs(tickets[0]))
	assert.Equal(t, []string{"L3", "L2"}, legIDs(tickets[1]))
	for _, ticket := range tickets {
		assert.GreaterOrEqual(t, ticket.Price(), 5.0)
		assert.LessOrEqual(t, ticket.Len(), 3)
		assertUniqueLegs(t, ticket)
	}
}

func TestMoonshotNeedsAllLegs(t *testing.T) {
	legs := referencePool(t)
	m := NewMoonshot(10.0, 1.0, 3)

	tickets := m.Build(legs)

	require.Len(t, tickets, 1)
	assert.Equal(t, []string{"L3", "L1", "L2"}, legIDs(tickets[0]))
	assert.InDelta(t, 10.8, tickets[0].Price(), 1e-9)
}

func TestMoonshotMaxLegsStopsCandidate(t *testing.T) {
	legs := referencePool(t)
	m := NewMoonshot(10.0, 1.0, 2)

	assert.Empty(t, m.Build(legs))
}

func TestMoonshotCapsAtThreeDesigns(t *testing.T) {
	legs := scoredPool(t,
		legSpec{D: 3.0, PHat: 0.40},
		legSpec{D: 3.0, PHat: 0.40},
		legSpec{D: 3.0, PHat: 0.40},
		legSpec{D: 3.0, PHat: 0.40},
		legSpec{D: 3.0, PHat: 0.40},
		legSpec{D: 3.0, PHat: 0.40},
	)
	m := NewMoonshot(8.0, 1.0, 4)

	tickets := m.Build(legs)

	require.Len(t, tickets, MoonshotMaxDesigns)
	// Equal efficiencies keep slate order, and pruning drops the first of the tie.
	assert.Equal(t, []string{"L1", "L2"}, legIDs(tickets[0]))
	assert.Equal(t, []string{"L2", "L3"}, legIDs(tickets[1]))
	assert.Equal(t, []string{"L3", "L4"}, legIDs(tickets[2]))
}

func TestMoonshotFiltersByEdgeRatio(t *testing.T) {
	legs := scoredPool(t,
		legSpec{D: 4.0, PHat: 0.20},
		legSpec{D: 2.5, PHat: 0.45},
		legSpec{D: 2.2, PHat: 0.50},
	)
	m := NewMoonshot(5.0, 1.05, 3)

	tickets := m.Build(legs)

	require.Len(t, tickets, 1)
	assert.NotContains(t, legIDs(tickets[0]), "L1")
}

func TestMoonshotDegenerateLegSortsLast(t *testing.T) {
	legs := scoredPool(t,
		legSpec{D: 1.0, PHat: 1.0},
		legSpec{D: 2.0, PHat: 0.55},
		legSpec{D: 3.0, PHat: 0.40},
	)
	m := NewMoonshot(5.5, 1.0, 3)

	tickets := m.Build(legs)

	require.Len(t, tickets, 1)
	assert.Equal(t, []string{"L3", "L2"}, legIDs(tickets[0]))
}

func TestMoonshotEmittedTicketsAreIndependent(t *testing.T) {
	legs := referencePool(t)
	m := NewMoonshot(5.0, 1.0, 3)

	tickets := m.Build(legs)
	require.Len(t, tickets, 2)

	tickets[0].Legs[0].LegID = "mutated"

	assert.Equal(t, []string{"L3", "L2"}, legIDs(tickets[1]))
}

func TestMoonshotDeterministic(t *testing.T) {
	legs := referencePool(t)
	m := NewMoonshot(5.0, 1.0, 3)
	assert.Equal(t, m.Build(legs), m.Build(legs))
}

func TestMoonshotEmptyInputs(t *testing.T) {
	m := NewMoonshot(5.0, 1.0, 3)

	tickets := m.Build(nil)
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
	assert.ErrorIs(t, m.Diagnose(nil, tickets).Reason, models.ErrEmptyPool)

	strict := NewMoonshot(5.0, 2.0, 3)
	legs := referencePool(t)
	assert.Empty(t, strict.Build(legs))
	assert.ErrorIs(t, strict.Diagnose(legs, nil).Reason, models.ErrEmptyPool)

	unreachable := NewMoonshot(1000, 1.0, 3)
	assert.ErrorIs(t, unreachable.Diagnose(legs, unreachable.Build(legs)).Reason, models.ErrConstraintUnreachable)
}

func TestMoonshotParameters(t *testing.T) {
	m := NewMoonshot(5.0, 1.0, 3)
	assert.Equal(t, "moonshot", m.Name())
	assert.Equal(t, 5.0, m.Parameters()["target_gross_per_unit"])
	var _ Builder = m
}

func TestMoonshotSkipsRepeatedLegID(t *testing.T) {
	legs := scoredPool(t, legSpec{D: 3.0, PHat: 0.4}, legSpec{D: 3.0, PHat: 0.4}, legSpec{D: 2.0, PHat: 0.55})
	legs[1].LegID = legs[0].LegID

	tickets := NewMoonshot(5, 1.0, 3).Build(legs)

	require.Len(t, tickets, 1)
	assert.Equal(t, []string{"L1", "L3"}, legIDs(tickets[0]))
	for _, ticket := range tickets {
		assertUniqueLegs(t, ticket)
	}
}
