package scoring

import "github.com/yourusername/parlay-builder/internal/models"

// Evaluate returns combined price, hit probability and EV per unit stake.
// Legs are treated as independent.
func Evaluate(legs []models.Leg) (models.Evaluation, error) {
	if len(legs) == 0 {
		return models.Evaluation{}, models.ErrEmptyTicket
	}
	dStar, pStar := 1.0, 1.0
	for _, leg := range legs {
		dStar *= leg.D
		pStar *= leg.PHat
	}
	return models.Evaluation{
		DStar: dStar,
		PStar: pStar,
		EV:    pStar*dStar - 1.0,
	}, nil
}

// EvaluateTicket evaluates the legs of a ticket
func EvaluateTicket(t models.Ticket) (models.Evaluation, error) {
	return Evaluate(t.Legs)
}
