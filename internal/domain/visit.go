// Package domain contains the core data types for the Thursday Pints tracker.
// This package has zero external dependencies and is imported by every other
// internal package (tally, source, repo, service, handler).
package domain

// Visit is one logged outing to a brewery, as stored in data.json.
// The log is newest-first by convention but callers must not rely on it.
// Optional fields are omitted from JSON rather than written as null. Field
// order is the key order add-visit has always written.
type Visit struct {
	Date        string `json:"date"` // "2006-01-02" civil date
	BreweryName string `json:"breweryName"`
	IsClosed    bool   `json:"isClosed,omitempty"`
	// NextBrewery is only meaningful on the most recent record. It is either
	// a brewery name or free text when no brewery has been chosen yet.
	NextBrewery string `json:"nextBrewery,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// TourEntry is one row of the chronological tour log.
// BreweryVisitCount is the total number of visits to that brewery across
// the whole log, not just up to this row.
type TourEntry struct {
	Visit             Visit `json:"visit"`
	BreweryVisitCount int   `json:"breweryVisitCount"`
}

// Summary holds the headline counters shown above the lists.
type Summary struct {
	TotalBreweries int `json:"totalBreweries"`
	TotalVisits    int `json:"totalVisits"`
}

// NextOuting describes where the group goes next.
// Brewery is nil when Suggestion does not name a known brewery, in which case
// IsFreeText is true and Suggestion should be shown verbatim.
type NextOuting struct {
	Date       string        `json:"date"`
	Suggestion string        `json:"suggestion"`
	Brewery    *BreweryStats `json:"brewery,omitempty"`
	IsFreeText bool          `json:"isFreeText"`
}

// VisitInput is the request to append or update the visit for a date.
// Fields are trimmed before validation.
type VisitInput struct {
	Date        string `json:"date" validate:"required,civildate"`
	BreweryName string `json:"breweryName" validate:"required,max=200"`
	NextBrewery string `json:"nextBrewery" validate:"required,max=2000"`
	Notes       string `json:"notes" validate:"max=2000"`
}
