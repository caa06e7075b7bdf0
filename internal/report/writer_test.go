package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/parlay-builder/internal/models"
)

func sampleLegs() []models.Leg {
	return []models.Leg{
		{LegID: "L1", Sport: "NBA", Game: "BOS@NYK", Market: "ML", Selection: "BOS", D: 2.0, PHat: 0.55, PBook: 0.5, EdgeRatio: 1.1, Efficiency: models.ValidEfficiency(0.137503523749935)},
		{LegID: "L2", Sport: "NHL", Game: "TOR@MTL", Market: "ML", Selection: "MTL", D: 1.0, PHat: 0.9, PBook: 1.0, EdgeRatio: 0.9, Efficiency: models.DegenerateEfficiencyValue()},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "2.00", Fixed(2, 2))
	assert.Equal(t, "0.133", Fixed(0.1325, 3))
	assert.Equal(t, "-1000000000.000", Fixed(models.DegenerateEfficiency, 3))
}

func TestFixedNonFinite(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, "+Inf", Fixed(math.Inf(1), 2))
		assert.Equal(t, "NaN", Fixed(math.NaN(), 4))
	})
}

func TestWriteLegs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLegs(&buf, sampleLegs()))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, legsHeader, records[0])
	assert.Equal(t, []string{"L1", "NBA", "BOS@NYK", "ML", "BOS", "2.00", "0.550", "0.500", "1.100", "0.138"}, records[1])
	assert.Equal(t, "-1000000000.000", records[2][9])
}

func TestWriteTickets(t *testing.T) {
	legs := sampleLegs()
	tickets := []models.ScoredTicket{{
		ID:         "T1",
		Ticket:     models.Ticket{Legs: legs[:1]},
		Evaluation: models.Evaluation{DStar: 10.8, PStar: 0.132, EV: 0.4256},
		Summary:    "high-confidence multi-leg; hit prob 0.132, gross decimal 10.8, EV/1u 0.43.",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteTickets(&buf, tickets))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, ticketsHeader, records[0])
	assert.Equal(t, []string{"T1", "L1:BOS@2.00", "10.80", "0.1320", "0.43", tickets[0].Summary}, records[1])
}

func TestLegSummary(t *testing.T) {
	legs := sampleLegs()
	got := LegSummary(models.Ticket{Legs: legs})
	assert.Equal(t, "L1:BOS@2.00 | L2:MTL@1.00", got)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteFiles(dir, sampleLegs(), nil, nil)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	data, err := os.ReadFile(filepath.Join(dir, MoonshotFile))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(ticketsHeader, ",")+"\n", string(data))
}

func TestConsoleSummary(t *testing.T) {
	slate := models.Slate{Legs: sampleLegs(), Skipped: 1}
	out := ConsoleSummary("run-1", slate, nil, nil)
	assert.Contains(t, out, "Run ID: run-1")
	assert.Contains(t, out, "Legs Scored: 2 (skipped 1, rejected 0)")
	assert.Contains(t, out, "Moonshot Tickets: 0")
}

func TestWriteTicketsOverflowingPrice(t *testing.T) {
	huge := models.Leg{LegID: "A", Selection: "a", D: 1e200, PHat: 0.5, PBook: 1e-200}
	tickets := []models.ScoredTicket{{
		ID:         "T1",
		Ticket:     models.Ticket{Legs: []models.Leg{huge, huge}},
		Evaluation: models.Evaluation{DStar: math.Inf(1), PStar: 0.25, EV: math.Inf(1)},
	}}

	var buf bytes.Buffer
	require.NotPanics(t, func() { require.NoError(t, WriteTickets(&buf, tickets)) })

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "+Inf", records[1][2])
	assert.Equal(t, "0.2500", records[1][3])
	assert.Equal(t, "+Inf", records[1][4])
}

func TestWriteLegsSubnormalPrice(t *testing.T) {
	tiny := models.Leg{LegID: "A", D: 5e-324, PHat: 0.5, PBook: math.Inf(1), EdgeRatio: 0, Efficiency: models.DegenerateEfficiencyValue()}

	var buf bytes.Buffer
	require.NotPanics(t, func() { require.NoError(t, WriteLegs(&buf, []models.Leg{tiny})) })

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "0.00", records[1][5])
	assert.Equal(t, "+Inf", records[1][7])
}
