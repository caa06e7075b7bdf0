package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-builder/internal/models"
	"github.com/yourusername/parlay-builder/internal/scoring"
)

type legSpec struct {
	D    float64
	PHat float64
}

func scoredPool(t *testing.T, specs ...legSpec) []models.Leg {
	t.Helper()
	legs := make([]models.Leg, 0, len(specs))
	for i, s := range specs {
		leg, err := scoring.Score(models.RawLeg{
			LegID:        fmt.Sprintf("L%d", i+1),
			Selection:    fmt.Sprintf("pick-%d", i+1),
			DecimalOdds:  s.D,
			ModelProb:    s.PHat,
			HasModelProb: true,
		})
		require.NoError(t, err)
		legs = append(legs, leg)
	}
	return legs
}

func referencePool(t *testing.T) []models.Leg {
	return scoredPool(t,
		legSpec{D: 2.0, PHat: 0.55},
		legSpec{D: 1.8, PHat: 0.60},
		legSpec{D: 3.0, PHat: 0.40},
	)
}

func legIDs(ticket models.Ticket) []string {
	ids := make([]string, 0, ticket.Len())
	for _, leg := range ticket.Legs {
		ids = append(ids, leg.LegID)
	}
	return ids
}

func assertUniqueLegs(t *testing.T, ticket models.Ticket) {
	t.Helper()
	_, err := models.NewTicket(ticket.Legs...)
	require.NoError(t, err)
}
