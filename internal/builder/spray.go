package builder

import "github.com/yourusername/parlay-builder/internal/models"

// Spray grows one ticket per seed leg until its combined price lands in
// [BandLow, BandHigh], producing a portfolio of differently seeded parlays.
// A seed is never emitted alone, so MaxLegs = 1 yields no tickets even when a
// single leg is already in band.
type Spray struct {
	EdgeFilter
	BandLow    float64
	BandHigh   float64
	MaxLegs    int
	MaxTickets int
}

// NewSpray creates a spray builder
func NewSpray(bandLow, bandHigh, minEdgeRatio float64, maxLegs, maxTickets int) *Spray {
	return &Spray{
		EdgeFilter: EdgeFilter{MinEdgeRatio: minEdgeRatio},
		BandLow:    bandLow,
		BandHigh:   bandHigh,
		MaxLegs:    maxLegs,
		MaxTickets: maxTickets,
	}
}

// Name returns builder name
func (s *Spray) Name() string {
	return "spray"
}

// Parameters returns builder parameters for logging and cache keys
func (s *Spray) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"payout_band":    []float64{s.BandLow, s.BandHigh},
		"min_edge_ratio": s.MinEdgeRatio,
		"max_legs":       s.MaxLegs,
		"max_tickets":    s.MaxTickets,
	}
}

// Build returns up to MaxTickets in-band tickets, at most one per seed.
// A seed is never emitted alone: a ticket is only emitted right after a leg
// is added to it.
func (s *Spray) Build(legs []models.Leg) []models.Ticket {
	pool := s.Pool(legs)
	sortByEfficiencyThenProbDesc(pool)

	tickets := make([]models.Ticket, 0)
	if s.MaxTickets <= 0 {
		return tickets
	}

	for _, seed := range pool {
		if ticket, ok := s.grow(seed, pool); ok {
			tickets = append(tickets, ticket)
		}
		if len(tickets) >= s.MaxTickets {
			break
		}
	}
	return tickets
}

func (s *Spray) grow(seed models.Leg, pool []models.Leg) (models.Ticket, bool) {
	current := []models.Leg{seed}
	for _, candidate := range pool {
		if containsLeg(current, candidate.LegID) {
			continue
		}
		if len(current) >= s.MaxLegs {
			break
		}
		price := combinedPrice(current, candidate)
		if price > s.BandHigh {
			continue
		}
		current = append(current, candidate)
		if price >= s.BandLow {
			return models.Ticket{Legs: append([]models.Leg(nil), current...)}, true
		}
	}
	return models.Ticket{}, false
}

// Diagnose explains the outcome of Build for the same legs
func (s *Spray) Diagnose(legs []models.Leg, tickets []models.Ticket) Diagnosis {
	d := Diagnosis{PoolSize: len(s.Pool(legs)), Tickets: len(tickets)}
	switch {
	case d.PoolSize == 0:
		d.Reason = models.ErrEmptyPool
	case d.Tickets == 0:
		d.Reason = models.ErrConstraintUnreachable
	}
	return d
}
