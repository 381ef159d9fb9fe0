package tally

import (
	"slices"
	"strings"

	"github.com/pkordes/thursday-pints/backend/internal/calendar"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// TourLog returns the well-formed visits newest first, each annotated with
// the total number of visits to its brewery. Visits on the same date keep
// their log order.
func TourLog(visits []domain.Visit) []domain.TourEntry {
	counts := make(map[string]int)
	kept := make([]domain.Visit, 0, len(visits))
	for _, v := range visits {
		if !WellFormed(v) {
			continue
		}
		counts[v.BreweryName]++
		kept = append(kept, v)
	}

	slices.SortStableFunc(kept, func(a, b domain.Visit) int {
		return calendar.Compare(b.Date, a.Date)
	})

	out := make([]domain.TourEntry, len(kept))
	for i, v := range kept {
		out[i] = domain.TourEntry{Visit: v, BreweryVisitCount: counts[v.BreweryName]}
	}
	return out
}

// Summarize computes the headline counters.
// stats should be the aggregated (not merged) stats so directory-only
// breweries are not counted as toured.
func Summarize(visits []domain.Visit, stats []domain.BreweryStats) domain.Summary {
	total := 0
	for _, v := range visits {
		if WellFormed(v) {
			total++
		}
	}
	return domain.Summary{TotalBreweries: len(stats), TotalVisits: total}
}

// NextOuting reads the planned destination from the newest visit.
//
// The suggestion matches a brewery when it equals a brewery name ignoring
// case and surrounding whitespace; anything else is free text (typically a
// limerick hinting at the destination). The outing date is seven days after
// the newest visit. ok is false when the newest visit carries no suggestion.
func NextOuting(visits []domain.Visit, stats []domain.BreweryStats) (next domain.NextOuting, ok bool) {
	latest, found := newest(visits)
	if !found || strings.TrimSpace(latest.NextBrewery) == "" {
		return domain.NextOuting{}, false
	}

	next = domain.NextOuting{Suggestion: latest.NextBrewery, IsFreeText: true}
	if date, err := calendar.WeekAfter(latest.Date); err == nil {
		next.Date = date
	}

	want := strings.TrimSpace(latest.NextBrewery)
	for _, s := range stats {
		if strings.EqualFold(s.Name, want) {
			match := s
			next.Brewery = &match
			next.IsFreeText = false
			break
		}
	}
	return next, true
}

// newest returns the well-formed visit with the latest date.
// On equal dates the earlier record in the log wins, matching the
// newest-first convention of data.json.
func newest(visits []domain.Visit) (domain.Visit, bool) {
	var (
		best  domain.Visit
		found bool
	)
	for _, v := range visits {
		if !WellFormed(v) {
			continue
		}
		if !found || calendar.Compare(v.Date, best.Date) > 0 {
			best, found = v, true
		}
	}
	return best, found
}
