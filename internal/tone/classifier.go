// Package tone labels a parlay outcome for human-readable reports.
package tone

import (
	"fmt"

	"github.com/yourusername/parlay-builder/internal/models"
)

// Tone is a descriptive label for a ticket outcome
type Tone string

const (
	ToneHighConfidence Tone = "high-confidence multi-leg"
	TonePositiveEV     Tone = "positive-ev longshot"
	ToneNegativeEV     Tone = "negative-ev configuration"
)

// HighConfidenceHitProb is the minimum hit probability for a high-confidence label
const HighConfidenceHitProb = 0.05

// Result holds the label and its one-line summary
type Result struct {
	Tone    Tone   `json:"tone"`
	Summary string `json:"summary"`
}

// Classify labels an evaluated ticket
func Classify(e models.Evaluation) Result {
	t := ToneNegativeEV
	switch {
	case e.EV > 0 && e.PStar >= HighConfidenceHitProb:
		t = ToneHighConfidence
	case e.EV > 0:
		t = TonePositiveEV
	}
	return Result{
		Tone:    t,
		Summary: fmt.Sprintf("%s; hit prob %s, gross decimal %s, EV/1u %s.", t,
			models.FormatFixed(e.PStar, 3), models.FormatFixed(e.DStar, 1), models.FormatFixed(e.EV, 2)),
	}
}
