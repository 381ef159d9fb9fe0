// Package tally turns the raw visit log and the brewery directory into the
// derived views the tracker displays: per-brewery stats, the merged brewery
// list, rankings, the tour log, the next outing and the map viewport.
//
// Every function here is pure. Inputs are never mutated and results are
// recomputed from scratch on each call.
package tally

import (
	"strings"

	"github.com/pkordes/thursday-pints/backend/internal/calendar"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// WellFormed reports whether a visit can take part in aggregation.
// A visit needs a non-blank brewery name and a non-empty date. A date that
// is present but unparseable is still well formed; it just sorts oldest.
func WellFormed(v domain.Visit) bool {
	return strings.TrimSpace(v.BreweryName) != "" && v.Date != ""
}

// Aggregate reduces visits to one BreweryStats per distinct brewery name.
//
// Names are matched exactly, with no case or whitespace folding. Malformed
// records (see WellFormed) are skipped, never fatal. The result lists
// breweries in order of first appearance and is never nil.
func Aggregate(visits []domain.Visit) []domain.BreweryStats {
	index := make(map[string]int, len(visits))
	out := make([]domain.BreweryStats, 0, len(visits))

	for _, v := range visits {
		if !WellFormed(v) {
			continue
		}

		i, seen := index[v.BreweryName]
		if !seen {
			index[v.BreweryName] = len(out)
			out = append(out, domain.BreweryStats{
				Name:          v.BreweryName,
				VisitCount:    1,
				LastVisitDate: v.Date,
				IsClosed:      v.IsClosed,
			})
			continue
		}

		s := &out[i]
		s.VisitCount++
		s.IsClosed = s.IsClosed || v.IsClosed
		if later(v.Date, s.LastVisitDate) {
			s.LastVisitDate = v.Date
		}
	}

	return out
}

// later reports whether date a should replace b as a brewery's last visit.
// Equal valid dates keep b. Two malformed dates fall back to a lexical
// comparison so the winner does not depend on input order.
func later(a, b string) bool {
	if c := calendar.Compare(a, b); c != 0 {
		return c > 0
	}
	return a > b
}
