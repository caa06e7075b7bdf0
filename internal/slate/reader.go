// Package slate reads proposition slates into raw leg records.
package slate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yourusername/parlay-builder/internal/models"
)

// Column names of the slate CSV
const (
	ColLegID       = "leg_id"
	ColSport       = "sport"
	ColGame        = "game"
	ColMarket      = "market"
	ColSelection   = "selection"
	ColDecimalOdds = "decimal_odds"
	ColModelProb   = "model_prob"
)

var requiredColumns = []string{ColLegID, ColSport, ColGame, ColMarket, ColSelection, ColDecimalOdds, ColModelProb}

// ErrMissingColumn is returned when the header lacks a required column
var ErrMissingColumn = errors.New("slate header missing column")

// Read parses a slate CSV. Column order is taken from the header.
// Unparseable numeric cells are attached to the row as ParseErr rather than
// failing the whole read.
func Read(r io.Reader) ([]models.RawLeg, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []models.RawLeg{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slate header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []models.RawLeg
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read slate row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, parseRow(record, index))
	}
	if rows == nil {
		rows = []models.RawLeg{}
	}
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func parseRow(record []string, index map[string]int) models.RawLeg {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	raw := models.RawLeg{
		LegID:     cell(ColLegID),
		Sport:     cell(ColSport),
		Game:      cell(ColGame),
		Market:    cell(ColMarket),
		Selection: cell(ColSelection),
	}

	odds, err := strconv.ParseFloat(cell(ColDecimalOdds), 64)
	if err != nil {
		raw.ParseErr = fmt.Errorf("%w: decimal_odds %q", models.ErrInvalidPrice, cell(ColDecimalOdds))
	}
	raw.DecimalOdds = odds

	if prob := cell(ColModelProb); prob != "" {
		p, err := strconv.ParseFloat(prob, 64)
		if err != nil && raw.ParseErr == nil {
			raw.ParseErr = fmt.Errorf("%w: model_prob %q", models.ErrInvalidProbability, prob)
		}
		raw.ModelProb = p
		raw.HasModelProb = true
	}
	return raw
}
