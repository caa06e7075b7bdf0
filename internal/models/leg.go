package models

import "fmt"

// DegenerateEfficiency is reported for legs whose decimal price is at or below 1
const DegenerateEfficiency = -1e9

// RawLeg is one slate row before scoring
type RawLeg struct {
	LegID        string  `json:"leg_id" validate:"required"`
	Sport        string  `json:"sport"`
	Game         string  `json:"game"`
	Market       string  `json:"market"` // ML/Spread/Total
	Selection    string  `json:"selection"`
	DecimalOdds  float64 `json:"decimal_odds"`
	ModelProb    float64 `json:"model_prob"`
	HasModelProb bool    `json:"has_model_prob"`
	// ParseErr carries a malformed numeric cell so the scorer can report the row
	ParseErr error `json:"-"`
}

// Efficiency is the log-edge per log-price of a leg.
// Degenerate marks a price at or below 1 where the ratio is undefined.
type Efficiency struct {
	Value      float64 `json:"value"`
	Degenerate bool    `json:"degenerate"`
}

// ValidEfficiency wraps a computed efficiency value
func ValidEfficiency(v float64) Efficiency {
	return Efficiency{Value: v}
}

// DegenerateEfficiencyValue returns the never-select efficiency tag
func DegenerateEfficiencyValue() Efficiency {
	return Efficiency{Degenerate: true}
}

// Float returns the numeric efficiency, using DegenerateEfficiency for degenerate legs
func (e Efficiency) Float() float64 {
	if e.Degenerate {
		return DegenerateEfficiency
	}
	return e.Value
}

// Compare orders efficiencies ascending with degenerate values before every valid one.
// It returns -1, 0 or 1.
func (e Efficiency) Compare(other Efficiency) int {
	switch {
	case e.Degenerate && other.Degenerate:
		return 0
	case e.Degenerate:
		return -1
	case other.Degenerate:
		return 1
	case e.Value < other.Value:
		return -1
	case e.Value > other.Value:
		return 1
	default:
		return 0
	}
}

// Leg is a scored proposition. Derived fields are only ever set by the scorer.
type Leg struct {
	LegID      string     `json:"leg_id"`
	Sport      string     `json:"sport"`
	Game       string     `json:"game"`
	Market     string     `json:"market"`
	Selection  string     `json:"selection"`
	D          float64    `json:"decimal_odds"`
	PHat       float64    `json:"model_prob"`
	PBook      float64    `json:"implied_prob"`
	EdgeRatio  float64    `json:"edge_ratio"`
	Efficiency Efficiency `json:"efficiency"`
}

// HasEdge reports whether the model thinks the book underprices the leg
func (l Leg) HasEdge() bool {
	return l.EdgeRatio > 1
}

// RowError records a slate row that could not be scored
type RowError struct {
	Index int    `json:"index"`
	LegID string `json:"leg_id"`
	Err   error  `json:"-"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Index, e.LegID, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Slate is the scored universe for one build run
type Slate struct {
	Legs     []Leg      `json:"legs"`
	Skipped  int        `json:"skipped"`
	Rejected []RowError `json:"rejected,omitempty"`
}
