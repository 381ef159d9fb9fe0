package tally

import "github.com/pkordes/thursday-pints/backend/internal/domain"

// Merge reconciles aggregated stats with the brewery directory.
//
// An empty directory returns stats unchanged, so a directory that has not
// loaded yet never hides visited breweries. Otherwise the result holds one
// entry per distinct name across both inputs: directory entries first, in
// directory order, followed by visited breweries the directory does not know.
// Directory-only breweries get a zero-visit entry with an empty
// LastVisitDate, closed when the directory status is "Closed".
//
// Merge only decides inclusion. Matched stats keep their own IsClosed flag;
// Locate folds the directory status in.
func Merge(stats []domain.BreweryStats, directory []domain.BreweryLocation) []domain.BreweryStats {
	if len(directory) == 0 {
		return stats
	}

	byName := make(map[string]domain.BreweryStats, len(stats))
	for _, s := range stats {
		if _, dup := byName[s.Name]; !dup {
			byName[s.Name] = s
		}
	}

	out := make([]domain.BreweryStats, 0, len(directory)+len(stats))
	emitted := make(map[string]bool, len(directory)+len(stats))

	for _, entry := range directory {
		// Nameless directory rows cannot be matched to anything.
		if entry.Name == "" || emitted[entry.Name] {
			continue
		}
		emitted[entry.Name] = true

		if s, ok := byName[entry.Name]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, domain.BreweryStats{
			Name:          entry.Name,
			VisitCount:    0,
			LastVisitDate: "",
			IsClosed:      entry.Closed(),
		})
	}

	for _, s := range stats {
		if emitted[s.Name] {
			continue
		}
		emitted[s.Name] = true
		out = append(out, s)
	}

	return out
}

// Locate attaches directory details to merged stats.
// IsClosed becomes true when either the visits or the directory say so.
// Breweries missing from the directory are returned without coordinates.
func Locate(merged []domain.BreweryStats, directory []domain.BreweryLocation) []domain.Brewery {
	byName := make(map[string]domain.BreweryLocation, len(directory))
	for _, entry := range directory {
		if _, dup := byName[entry.Name]; !dup {
			byName[entry.Name] = entry
		}
	}

	out := make([]domain.Brewery, 0, len(merged))
	for _, s := range merged {
		b := domain.Brewery{BreweryStats: s}
		if loc, ok := byName[s.Name]; ok {
			b.Address = loc.Address
			b.Status = loc.Status
			b.Lat = copyFloat(loc.Latitude)
			b.Lng = copyFloat(loc.Longitude)
			b.IsClosed = b.IsClosed || loc.Closed()
		}
		out = append(out, b)
	}
	return out
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
