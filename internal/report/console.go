package report

import (
	"fmt"
	"strings"

	"github.com/yourusername/parlay-builder/internal/models"
)

// ConsoleSummary formats a build for terminal output
func ConsoleSummary(runID string, slate models.Slate, moonshot, spray []models.ScoredTicket) string {
	var builder strings.Builder
	builder.WriteString("Ticket Build Report\n")
	builder.WriteString("===================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", runID))
	builder.WriteString(fmt.Sprintf("Legs Scored: %d (skipped %d, rejected %d)\n", len(slate.Legs), slate.Skipped, len(slate.Rejected)))
	writeSection(&builder, "Moonshot", moonshot)
	writeSection(&builder, "Spray", spray)
	return builder.String()
}

func writeSection(builder *strings.Builder, title string, tickets []models.ScoredTicket) {
	builder.WriteString(fmt.Sprintf("\n%s Tickets: %d\n", title, len(tickets)))
	for _, st := range tickets {
		builder.WriteString(fmt.Sprintf("  %s  %s\n      %s\n", st.ID, LegSummary(st.Ticket), st.Summary))
	}
}
