package domain

// StatusClosed is the directory status marking a brewery as permanently closed.
// The comparison is case-sensitive: "closed" or "CLOSED" do not match.
const StatusClosed = "Closed"

// StatusOpen is the directory status of an operating brewery.
const StatusOpen = "Open"

// BreweryLocation is one entry of the brewery directory (breweries.json).
// The directory is the authoritative list of known breweries, visited or not.
// Latitude and Longitude are nil when the entry has no coordinates.
type BreweryLocation struct {
	Name      string   `json:"brewery_name"`
	Address   string   `json:"brewery_address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    string   `json:"status"`
}

// Closed reports whether the directory marks this brewery as closed.
func (b BreweryLocation) Closed() bool {
	return b.Status == StatusClosed
}

// BreweryStats is the per-brewery aggregate derived from the visit log.
// It is recomputed on every load and never persisted.
// LastVisitDate is "" for a brewery that has never been visited.
type BreweryStats struct {
	Name          string `json:"name"`
	VisitCount    int    `json:"visitCount"`
	LastVisitDate string `json:"lastVisitDate"`
	IsClosed      bool   `json:"isClosed"`
}

// Stats returns the aggregate itself. It is promoted to Brewery so ranking
// helpers can sort either type.
func (s BreweryStats) Stats() BreweryStats {
	return s
}

// Brewery is a BreweryStats record enriched with directory details.
// Entries without both coordinates are still listed but cannot be mapped.
type Brewery struct {
	BreweryStats
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
	Status  string   `json:"status,omitempty"` // directory status, "" when unknown
}

// Mappable reports whether both coordinates are known.
func (b Brewery) Mappable() bool {
	return b.Lat != nil && b.Lng != nil
}

// Dashboard is the full derived view produced by a single data load.
type Dashboard struct {
	Visits    []Visit        `json:"visits"`
	Stats     []BreweryStats `json:"stats"`
	Breweries []Brewery      `json:"breweries"`
	Summary   Summary        `json:"summary"`
	Next      *NextOuting    `json:"next,omitempty"`
	// Skipped is the number of malformed visit records left out of the stats.
	Skipped int `json:"skipped"`
}
