// Package plan holds the fixed StudyBuddy subscription tiers and their prices.
package plan

import (
	"fmt"
	"strings"
)

// ID identifies a subscription tier.
type ID string

const (
	Free    ID = "free"
	Medium  ID = "medium"
	Premium ID = "premium"
)

// Currency of every price in the catalog.
const Currency = "kr/mnd"

// prices is an external contract shared with the app; do not change.
var prices = map[ID]int{
	Free:    0,
	Medium:  50,
	Premium: 200,
}

// Feature is one line of a plan's feature list.
type Feature struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// Plan describes a tier as presented on the plan selection screen.
type Plan struct {
	ID       ID        `json:"id"`
	Name     string    `json:"name"`
	Price    int       `json:"price"`
	Currency string    `json:"currency"`
	Badge    string    `json:"badge,omitempty"`
	Tagline  string    `json:"tagline"`
	Features []Feature `json:"features"`
}

const (
	featUnlimited = "Ubegrenset bruk"
	featCards     = "Flashcards"
	featNotes     = "Notater"
	featCalendar  = "Kalender & planlegging"
	featReminders = "Påminnelser for gjenværende oppgaver"
	featSharing   = "Deling & samarbeid"
	featAI        = "AI: noter-oppsummering & generer flashcards"
	featAISummary = "AI: kort oppsummering av notater"
	featAICards   = "AI: genererer flashcards automatisk"
)

func features(included []string, excluded ...string) []Feature {
	out := make([]Feature, 0, len(included)+len(excluded))
	for _, n := range included {
		out = append(out, Feature{Name: n, Included: true})
	}
	for _, n := range excluded {
		out = append(out, Feature{Name: n})
	}
	return out
}

var catalog = []Plan{
	{
		ID:       Free,
		Name:     "Basic",
		Price:    prices[Free],
		Currency: Currency,
		Tagline:  "Ubegrenset tilgang – kun Flashcards & Notater",
		Features: features([]string{featUnlimited, featCards, featNotes},
			featCalendar, featReminders, featSharing, featAI),
	},
	{
		ID:       Medium,
		Name:     "Medium",
		Price:    prices[Medium],
		Currency: Currency,
		Badge:    "Populær",
		Tagline:  "Strukturer hverdagen med kalender og påminnelser",
		Features: features([]string{featUnlimited, featCards, featNotes, featCalendar, featReminders},
			featSharing, featAI),
	},
	{
		ID:       Premium,
		Name:     "Premium",
		Price:    prices[Premium],
		Currency: Currency,
		Badge:    "Best verdi",
		Tagline:  "Alt + AI, deling og samarbeid for studenter",
		Features: features([]string{featUnlimited, featCards, featNotes, featCalendar, featReminders,
			featSharing, featAISummary, featAICards}),
	},
}

// Parse validates a plan identifier. Matching is case-insensitive.
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prices[id]; !ok {
		return "", fmt.Errorf("unknown plan %q", s)
	}
	return id, nil
}

// Valid reports whether id is one of the known tiers.
func (id ID) Valid() bool {
	_, ok := prices[id]
	return ok
}

// PriceOf returns the monthly price of id, or 0 for an unknown id.
func PriceOf(id ID) int {
	return prices[id]
}

// IsPaid reports whether id requires the payment step.
func IsPaid(id ID) bool {
	return id.Valid() && id != Free
}

// Catalog returns the tiers in display order. The slice is a copy.
func Catalog() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (Plan, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
