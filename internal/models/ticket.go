package models

import "fmt"

// Ticket is one parlay: an ordered list of legs with unique identifiers
type Ticket struct {
	Legs []Leg `json:"legs"`
}

// NewTicket builds a ticket from legs, rejecting duplicates
func NewTicket(legs ...Leg) (Ticket, error) {
	seen := make(map[string]struct{}, len(legs))
	for _, leg := range legs {
		if _, ok := seen[leg.LegID]; ok {
			return Ticket{}, fmt.Errorf("%w: %s", ErrDuplicateLeg, leg.LegID)
		}
		seen[leg.LegID] = struct{}{}
	}
	return Ticket{Legs: append([]Leg(nil), legs...)}, nil
}

// Len returns the number of legs
func (t Ticket) Len() int {
	return len(t.Legs)
}

// Contains reports whether a leg with the given id is already on the ticket
func (t Ticket) Contains(legID string) bool {
	for _, leg := range t.Legs {
		if leg.LegID == legID {
			return true
		}
	}
	return false
}

// Price returns the combined decimal price
func (t Ticket) Price() float64 {
	price := 1.0
	for _, leg := range t.Legs {
		price *= leg.D
	}
	return price
}

// HitProbability returns the combined model probability assuming independent legs
func (t Ticket) HitProbability() float64 {
	p := 1.0
	for _, leg := range t.Legs {
		p *= leg.PHat
	}
	return p
}

// Clone returns a copy that shares no backing array with t
func (t Ticket) Clone() Ticket {
	return Ticket{Legs: append([]Leg(nil), t.Legs...)}
}

// Evaluation is the combined outcome of a ticket per unit stake
type Evaluation struct {
	DStar float64 `json:"d_star"`
	PStar float64 `json:"p_star"`
	EV    float64 `json:"ev_per_unit"`
}

// IsPositiveEV checks if the ticket has positive expected value
func (e Evaluation) IsPositiveEV() bool {
	return e.EV > 0
}

// ScoredTicket is a built ticket with its evaluation and tone summary, ready for output
type ScoredTicket struct {
	ID         string     `json:"ticket_id"`
	Builder    string     `json:"builder"`
	Ticket     Ticket     `json:"ticket"`
	Evaluation Evaluation `json:"evaluation"`
	Tone       string     `json:"tone"`
	Summary    string     `json:"summary"`
}
