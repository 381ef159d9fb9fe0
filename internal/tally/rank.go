package tally

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkordes/thursday-pints/backend/internal/calendar"
	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// DefaultRankSize is the number of breweries shown in the top and bottom lists.
const DefaultRankSize = 10

// Ranked is satisfied by domain.BreweryStats and domain.Brewery.
type Ranked interface {
	Stats() domain.BreweryStats
}

// ByLastVisit returns a copy sorted by most recent visit first.
// Never-visited breweries (LastVisitDate "") and malformed dates sort last.
func ByLastVisit[T Ranked](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return calendar.Compare(b.Stats().LastVisitDate, a.Stats().LastVisitDate)
	})
	return out
}

// ByPopularity returns a copy sorted by visit count descending, then by name.
func ByPopularity[T Ranked](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		sa, sb := a.Stats(), b.Stats()
		if c := cmp.Compare(sb.VisitCount, sa.VisitCount); c != 0 {
			return c
		}
		return strings.Compare(sa.Name, sb.Name)
	})
	return out
}

// Top returns the n most visited breweries. n <= 0 means DefaultRankSize.
func Top[T Ranked](items []T, n int) []T {
	return head(ByPopularity(items), n)
}

// Bottom returns the n least visited breweries that are still open.
// n <= 0 means DefaultRankSize.
func Bottom[T Ranked](items []T, n int) []T {
	open := make([]T, 0, len(items))
	for _, it := range items {
		if !it.Stats().IsClosed {
			open = append(open, it)
		}
	}
	slices.SortStableFunc(open, func(a, b T) int {
		sa, sb := a.Stats(), b.Stats()
		if c := cmp.Compare(sa.VisitCount, sb.VisitCount); c != 0 {
			return c
		}
		return strings.Compare(sa.Name, sb.Name)
	})
	return head(open, n)
}

func head[T any](items []T, n int) []T {
	if n <= 0 {
		n = DefaultRankSize
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
