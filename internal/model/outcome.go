package model

import "time"

// Status is the terminal state of one record's resolution.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusEnriched  Status = "enriched"
	StatusUnmatched Status = "unmatched"
	StatusErrored   Status = "errored"
)

// Notes entries written for each terminal status.
const (
	NoteEnriched = "enriched"
	NoteNoMatch  = "no_match"
	NoteError    = "error"
)

// AllStatuses returns every terminal status in display order.
func AllStatuses() []Status {
	return []Status{StatusEnriched, StatusUnmatched, StatusErrored, StatusSkipped}
}

// SearchCandidate is a result URL with its domain preference weight.
type SearchCandidate struct {
	URL    string `json:"url"`
	Weight int    `json:"weight"`
}

// ValidationResult is the outcome of an accepted candidate page.
type ValidationResult struct {
	CanonicalURL string  `json:"canonical_url"`
	ReviewURL    string  `json:"review_url"`
	ProductScore float64 `json:"product_score"`
	BrandScore   float64 `json:"brand_score"`
}

// Outcome summarizes how a single record was resolved.
type Outcome struct {
	Status     Status            `json:"status"`
	Queries    []string          `json:"queries,omitempty"`
	Candidates int               `json:"candidates"`
	Tried      int               `json:"tried"`
	Match      *ValidationResult `json:"match,omitempty"`
	Error      string            `json:"error,omitempty"`
	Duration   time.Duration     `json:"duration"`
}
