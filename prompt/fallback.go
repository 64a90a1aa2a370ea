package prompt

import (
	"strconv"
	"strings"

	"github.com/poiesic/shortlist/core"
)

const fallbackHeading = "### Handpicked Dining Selections\n\n" +
	"| Restaurant Name | Address | Rating (Reviews) | Cost for Two |\n" +
	"| :--- | :--- | :--- | :--- |\n"

// FallbackTable renders candidates as a markdown table. It stands in for the
// generated recommendation when the backend is unavailable and the caller has
// opted into degraded responses. The address falls back to the location.
func FallbackTable(candidates []core.Candidate) string {
	var b strings.Builder
	b.WriteString(fallbackHeading)

	for _, c := range candidates {
		r := c.Restaurant

		address := strings.TrimSpace(r.Address)
		if address == "" {
			address = orNA(strings.TrimSpace(r.Location))
		}
		votes := 0
		if r.Votes != nil {
			votes = *r.Votes
		}
		cost := core.UnknownCost
		if r.HasCost() {
			cost = "₹" + core.FormatAmount(*r.Cost)
		}

		b.WriteString("| **")
		b.WriteString(escapeCell(r.NameKey()))
		b.WriteString("** | ")
		b.WriteString(escapeCell(address))
		b.WriteString(" | ")
		b.WriteString(core.FormatRating(r.Rate))
		b.WriteString("/5.0 (")
		b.WriteString(strconv.Itoa(votes))
		b.WriteString(") | ")
		b.WriteString(cost)
		b.WriteString(" |\n")
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return core.UnknownCost
	}
	return s
}

// escapeCell keeps a pipe inside a value from splitting the table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
