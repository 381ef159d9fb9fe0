package domain

// ExportRow is a single row in the brewery export.
// It is a flat, denormalized view: one row per brewery in the merged list,
// with directory fields left empty for breweries the directory does not know.
type ExportRow struct {
	Name          string
	Address       string
	Status        string // "Open", "Closed", or "" when not in the directory
	VisitCount    int
	LastVisitDate string // "" when never visited
	IsClosed      bool

	// Coordinates are nil when the directory has none.
	Latitude  *float64
	Longitude *float64
}
