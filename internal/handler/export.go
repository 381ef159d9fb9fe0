package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"name", "address", "status", "visit_count", "last_visit_date",
	"is_closed", "latitude", "longitude",
}

// ExportRow is the JSON shape of one export row.
// Empty directory fields and missing coordinates are omitted.
type ExportRow struct {
	Name          string   `json:"name"`
	Address       *string  `json:"address,omitempty"`
	Status        *string  `json:"status,omitempty"`
	VisitCount    int      `json:"visitCount"`
	LastVisitDate *string  `json:"lastVisitDate,omitempty"`
	IsClosed      bool     `json:"isClosed"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// GetExport handles GET /export.
// It returns one row per brewery in the merged list.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := bindQuery(r, "format", &format); err != nil {
		requestError(w, err.Error())
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		requestError(w, "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response shape.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow{
			Name:          r.Name,
			Address:       optional(r.Address),
			Status:        optional(r.Status),
			VisitCount:    r.VisitCount,
			LastVisitDate: optional(r.LastVisitDate),
			IsClosed:      r.IsClosed,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
		})
	}
	return out
}

// writeCSV encodes rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="breweries.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Nil coordinates are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.Name,
		r.Address,
		r.Status,
		strconv.Itoa(r.VisitCount),
		r.LastVisitDate,
		strconv.FormatBool(r.IsClosed),
		formatOptionalFloat(r.Latitude),
		formatOptionalFloat(r.Longitude),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// formatOptionalFloat returns the shortest decimal form of f, or "" if f is nil.
func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
