// Package scoring derives leg edge metrics and evaluates parlays.
package scoring

import (
	"fmt"
	"math"

	"github.com/yourusername/parlay-builder/internal/models"
)

// EdgeRatioFloor guards ln(0) when the edge ratio is non-positive or underflows
const EdgeRatioFloor = 1e-12

// Score derives implied probability, edge ratio and efficiency for one row
func Score(raw models.RawLeg) (models.Leg, error) {
	if raw.ParseErr != nil {
		return models.Leg{}, raw.ParseErr
	}
	if !raw.HasModelProb {
		return models.Leg{}, models.ErrMissingProbability
	}
	d := raw.DecimalOdds
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return models.Leg{}, fmt.Errorf("%w: %v", models.ErrInvalidPrice, d)
	}
	pHat := raw.ModelProb
	if math.IsNaN(pHat) || pHat < 0 || pHat > 1 {
		return models.Leg{}, fmt.Errorf("%w: %v", models.ErrInvalidProbability, pHat)
	}

	r := pHat * d
	return models.Leg{
		LegID:      raw.LegID,
		Sport:      raw.Sport,
		Game:       raw.Game,
		Market:     raw.Market,
		Selection:  raw.Selection,
		D:          d,
		PHat:       pHat,
		PBook:      ImpliedProbability(d),
		EdgeRatio:  r,
		Efficiency: efficiency(r, d),
	}, nil
}

// ImpliedProbability returns the book probability 1/D
func ImpliedProbability(d float64) float64 {
	return 1.0 / d
}

func efficiency(r, d float64) models.Efficiency {
	if d <= 1 {
		return models.DegenerateEfficiencyValue()
	}
	return models.ValidEfficiency(math.Log(math.Max(r, EdgeRatioFloor)) / math.Log(d))
}

// ScoreSlate scores every row carrying a model probability.
// Rows without one are counted as skipped; rows that fail scoring are
// reported in Rejected and do not stop the run. A repeated leg id is rejected;
// the first scored row with that id wins.
func ScoreSlate(raws []models.RawLeg) models.Slate {
	slate := models.Slate{Legs: make([]models.Leg, 0, len(raws))}
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		if !raw.HasModelProb {
			slate.Skipped++
			continue
		}
		leg, err := Score(raw)
		if err == nil {
			if _, dup := seen[leg.LegID]; dup {
				err = fmt.Errorf("%w: %s", models.ErrDuplicateLegID, leg.LegID)
			}
		}
		if err != nil {
			slate.Rejected = append(slate.Rejected, models.RowError{Index: i, LegID: raw.LegID, Err: err})
			continue
		}
		seen[leg.LegID] = struct{}{}
		slate.Legs = append(slate.Legs, leg)
	}
	return slate
}
