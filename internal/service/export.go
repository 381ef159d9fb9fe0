package service

import (
	"context"
	"fmt"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// dashboardLoader is the slice of DashboardService the export needs.
type dashboardLoader interface {
	Load(ctx context.Context) (domain.Dashboard, error)
}

// ExportService assembles a flat per-brewery export of the merged list.
type ExportService struct {
	dashboard dashboardLoader
}

// NewExportService constructs an ExportService on top of a dashboard loader.
func NewExportService(dashboard dashboardLoader) *ExportService {
	return &ExportService{dashboard: dashboard}
}

// Export returns one ExportRow per brewery in merged order.
// Breweries the directory does not know have empty address and status.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	d, err := s.dashboard.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(d.Breweries))
	for _, b := range d.Breweries {
		rows = append(rows, domain.ExportRow{
			Name:          b.Name,
			Address:       b.Address,
			Status:        b.Status,
			VisitCount:    b.VisitCount,
			LastVisitDate: b.LastVisitDate,
			IsClosed:      b.IsClosed,
			Latitude:      b.Lat,
			Longitude:     b.Lng,
		})
	}
	return rows, nil
}
