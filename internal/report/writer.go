// Package report writes scored legs and tickets as flat CSV tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/parlay-builder/internal/models"
)

// Output file names written by WriteFiles
const (
	LegsFile     = "legs_scored.csv"
	MoonshotFile = "tickets_moonshot.csv"
	SprayFile    = "tickets_spray.csv"
)

var (
	legsHeader    = []string{"leg_id", "sport", "game", "market", "selection", "D", "p_hat", "p_bk", "r", "e"}
	ticketsHeader = []string{"ticket_id", "legs", "D_star", "p_star", "EV_per1", "tapspeak"}
)

// Fixed formats v for the output tables; see models.FormatFixed
func Fixed(v float64, places int32) string {
	return models.FormatFixed(v, places)
}

// WriteLegs writes the scored legs table
func WriteLegs(w io.Writer, legs []models.Leg) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(legsHeader); err != nil {
		return err
	}
	for _, leg := range legs {
		row := []string{
			leg.LegID,
			leg.Sport,
			leg.Game,
			leg.Market,
			leg.Selection,
			Fixed(leg.D, 2),
			Fixed(leg.PHat, 3),
			Fixed(leg.PBook, 3),
			Fixed(leg.EdgeRatio, 3),
			Fixed(leg.Efficiency.Float(), 3),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LegSummary renders a ticket's legs as "id:selection@price" joined by pipes
func LegSummary(t models.Ticket) string {
	parts := make([]string, 0, t.Len())
	for _, leg := range t.Legs {
		parts = append(parts, fmt.Sprintf("%s:%s@%s", leg.LegID, leg.Selection, Fixed(leg.D, 2)))
	}
	return strings.Join(parts, " | ")
}

// WriteTickets writes one row per evaluated ticket
func WriteTickets(w io.Writer, tickets []models.ScoredTicket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ticketsHeader); err != nil {
		return err
	}
	for _, st := range tickets {
		row := []string{
			st.ID,
			LegSummary(st.Ticket),
			Fixed(st.Evaluation.DStar, 2),
			Fixed(st.Evaluation.PStar, 4),
			Fixed(st.Evaluation.EV, 2),
			st.Summary,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes the three output tables into dir
func WriteFiles(dir string, legs []models.Leg, moonshot, spray []models.ScoredTicket) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, 3)
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write(LegsFile, func(w io.Writer) error { return WriteLegs(w, legs) }); err != nil {
		return written, err
	}
	if err := write(MoonshotFile, func(w io.Writer) error { return WriteTickets(w, moonshot) }); err != nil {
		return written, err
	}
	if err := write(SprayFile, func(w io.Writer) error { return WriteTickets(w, spray) }); err != nil {
		return written, err
	}
	return written, nil
}
