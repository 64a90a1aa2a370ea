// Package prompt assembles the text handed to the generation backend from a
// shortlist of candidates and the user's preferences.
package prompt

import (
	"strconv"
	"strings"

	"github.com/poiesic/shortlist/core"
)

// NoResultsMessage is returned in place of a generated recommendation when no
// candidate survived filtering. The generation backend is not called.
const NoResultsMessage = "<p>No restaurants found matching your criteria. Please relax your filters.</p>"

// anyValue is shown for a preference the user left unset.
const anyValue = "Any"

const preamble = `You are an elite, highly persuasive food critic and AI recommendation assistant for Zomato.
User Preferences:
`

const contextHeader = `
Available Restaurant Context:
`

// outputFormat instructs the backend to reproduce one card per restaurant inside a grid container.
const outputFormat = `
Critically analyze the provided contextual restaurants against the user's preferences.
Instead of outputting Markdown tables, you MUST output raw HTML divs using the EXACT Swiggy classes provided below.
For each recommended restaurant, generate a valid HTML block looking exactly like this format:

<div class="swiggy-card">
    <div class="hero-img">
        <h4 class="hero-title">[Insert Restaurant Name]</h4>
    </div>
    <div class="card-body">
        <div class="meta-data">[Insert Cuisines], [Insert Location]</div>
        <div class="rating-pill">[Insert Rate]/5.0 ([Insert Votes])</div>
        <div class="cost-data">₹[Insert Cost for Two] <span>for two</span></div>
        <div class="offer-banner">FLAT 20% OFF ON ALL ORDERS</div>
    </div>
</div>

Output ONLY the consecutive HTML divs. Wrap them all in a parent ` + "`" + `<div style="display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 24px;">` + "`" + ` container. Do not include markdown wrappers (` + "```" + `html).
`

// Build returns the complete prompt for candidates and prefs. Candidates are
// listed 1-indexed by their descriptions in the order given.
// Callers handle the empty case with NoResultsMessage before calling Build.
func Build(candidates []core.Candidate, prefs *core.Preferences) string {
	if prefs == nil {
		prefs = &core.Preferences{}
	}

	var b strings.Builder
	b.WriteString(preamble)
	writeField(&b, "Location", orAny(strings.TrimSpace(prefs.Place)))
	writeField(&b, "Cuisines", orAny(strings.Join(prefs.Cuisines, ", ")))
	writeField(&b, "Budget", prefs.Budget.Label())
	writeField(&b, "Minimum Rating", ratingLabel(prefs.MinRating))

	b.WriteString(contextHeader)
	for i, c := range candidates {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(c.Description)
		b.WriteByte('\n')
	}

	b.WriteString(outputFormat)
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func orAny(s string) string {
	if s == "" {
		return anyValue
	}
	return s
}

func ratingLabel(r float64) string {
	if r <= 0 {
		return anyValue
	}
	return core.FormatRating(r) + " / 5.0"
}
