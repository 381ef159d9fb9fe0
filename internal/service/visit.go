package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/repo"
	"github.com/pkordes/thursday-pints/backend/internal/validate"
)

// NoResponse is the placeholder the sign-up form writes when nobody left a
// note. It is never stored.
const NoResponse = "No response"

// VisitService implements the append/update operation on the visit log.
type VisitService struct {
	log repo.VisitLog
}

// NewVisitService constructs a VisitService backed by the provided VisitLog.
func NewVisitService(log repo.VisitLog) *VisitService {
	return &VisitService{log: log}
}

// Record validates in and stores it as the visit for its date: an existing
// visit on that date is updated in place, otherwise a new one is added at the
// head of the log. created reports which of the two happened.
func (s *VisitService) Record(ctx context.Context, in domain.VisitInput) (v domain.Visit, created bool, err error) {
	in.Date = strings.TrimSpace(in.Date)
	in.BreweryName = strings.TrimSpace(in.BreweryName)
	in.NextBrewery = strings.TrimSpace(in.NextBrewery)
	in.Notes = strings.TrimSpace(in.Notes)

	if err := validate.Struct(in); err != nil {
		return domain.Visit{}, false, fmt.Errorf("service.VisitService.Record: %w", err)
	}
	if strings.EqualFold(in.Notes, NoResponse) {
		in.Notes = ""
	}

	v, created, err = s.log.UpsertByDate(ctx, domain.Visit{
		Date:        in.Date,
		BreweryName: in.BreweryName,
		NextBrewery: in.NextBrewery,
		Notes:       in.Notes,
	})
	if err != nil {
		return domain.Visit{}, false, fmt.Errorf("service.VisitService.Record: %w", err)
	}
	return v, created, nil
}
