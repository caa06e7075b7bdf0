package builder

import (
	"math"

	"github.com/yourusername/parlay-builder/internal/models"
)

// MoonshotMaxDesigns caps the number of moonshot tickets returned
const MoonshotMaxDesigns = 3

// Moonshot greedily stacks the most efficient legs until the combined price
// reaches TargetPrice, then drops the weakest leg and keeps walking to
// produce variants around the same core.
type Moonshot struct {
	EdgeFilter
	TargetPrice float64
	MaxLegs     int
}

// NewMoonshot creates a moonshot builder
func NewMoonshot(targetPrice, minEdgeRatio float64, maxLegs int) *Moonshot {
	return &Moonshot{
		EdgeFilter:  EdgeFilter{MinEdgeRatio: minEdgeRatio},
		TargetPrice: targetPrice,
		MaxLegs:     maxLegs,
	}
}

// Name returns builder name
func (m *Moonshot) Name() string {
	return "moonshot"
}

// Parameters returns builder parameters for logging and cache keys
func (m *Moonshot) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"target_gross_per_unit": m.TargetPrice,
		"min_edge_ratio":        m.MinEdgeRatio,
		"max_legs":              m.MaxLegs,
	}
}

// Build returns up to MoonshotMaxDesigns tickets in emission order
func (m *Moonshot) Build(legs []models.Leg) []models.Ticket {
	pool := m.Pool(legs)
	sortByEfficiencyDesc(pool)

	tickets := make([]models.Ticket, 0, MoonshotMaxDesigns)
	target := math.Log(m.TargetPrice)
	working := make([]models.Leg, 0, m.capacity())
	sumLog := 0.0

	for _, leg := range pool {
		if containsLeg(working, leg.LegID) {
			continue
		}
		if len(working) >= m.MaxLegs {
			break
		}
		working = append(working, leg)
		sumLog = sumLogPrice(working)
		if sumLog < target {
			continue
		}

		tickets = append(tickets, models.Ticket{Legs: append([]models.Leg(nil), working...)})
		if len(tickets) == MoonshotMaxDesigns {
			break
		}

		sortByEfficiencyAsc(working)
		working = working[1:]
		sumLog = sumLogPrice(working)
	}
	return tickets
}

// Diagnose explains the outcome of Build for the same legs
func (m *Moonshot) Diagnose(legs []models.Leg, tickets []models.Ticket) Diagnosis {
	d := Diagnosis{PoolSize: len(m.Pool(legs)), Tickets: len(tickets)}
	switch {
	case d.PoolSize == 0:
		d.Reason = models.ErrEmptyPool
	case d.Tickets == 0:
		d.Reason = models.ErrConstraintUnreachable
	}
	return d
}

func (m *Moonshot) capacity() int {
	if m.MaxLegs < 0 {
		return 0
	}
	return m.MaxLegs
}
