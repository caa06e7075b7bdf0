package builder

import (
	"math"
	"sort"

	"github.com/yourusername/parlay-builder/internal/models"
)

// EdgeFilter provides the pool selection shared by builders
type EdgeFilter struct {
	MinEdgeRatio float64
}

// Pool returns legs with edge ratio at or above the minimum, in slate order
func (f EdgeFilter) Pool(legs []models.Leg) []models.Leg {
	pool := make([]models.Leg, 0, len(legs))
	for _, leg := range legs {
		if leg.EdgeRatio >= f.MinEdgeRatio {
			pool = append(pool, leg)
		}
	}
	return pool
}

// sortByEfficiencyDesc orders legs most efficient first; degenerate legs go last
// and ties keep their current relative order.
func sortByEfficiencyDesc(legs []models.Leg) {
	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].Efficiency.Compare(legs[j].Efficiency) > 0
	})
}

// sortByEfficiencyAsc orders legs least efficient first, ties stable
func sortByEfficiencyAsc(legs []models.Leg) {
	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].Efficiency.Compare(legs[j].Efficiency) < 0
	})
}

// sortByEfficiencyThenProbDesc orders by (efficiency, p_hat) descending
func sortByEfficiencyThenProbDesc(legs []models.Leg) {
	sort.SliceStable(legs, func(i, j int) bool {
		if c := legs[i].Efficiency.Compare(legs[j].Efficiency); c != 0 {
			return c > 0
		}
		return legs[i].PHat > legs[j].PHat
	})
}

func sumLogPrice(legs []models.Leg) float64 {
	sum := 0.0
	for _, leg := range legs {
		sum += math.Log(leg.D)
	}
	return sum
}

func combinedPrice(legs []models.Leg, extra models.Leg) float64 {
	price := extra.D
	for _, leg := range legs {
		price *= leg.D
	}
	return price
}

func containsLeg(legs []models.Leg, legID string) bool {
	for _, leg := range legs {
		if leg.LegID == legID {
			return true
		}
	}
	return false
}
