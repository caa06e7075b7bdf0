// Package builder assembles multi-leg tickets from a scored slate.
package builder

import "github.com/yourusername/parlay-builder/internal/models"

// Builder defines the interface for ticket construction strategies
type Builder interface {
	Name() string
	Build(legs []models.Leg) []models.Ticket
	Parameters() map[string]interface{}
}

// Diagnosis explains an empty or short build result. It is informational only.
type Diagnosis struct {
	PoolSize int   `json:"pool_size"`
	Tickets  int   `json:"tickets"`
	Reason   error `json:"-"`
}
