package service

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/schedule"
	"github.com/carson-networks/cashflow-server/internal/storage/actual"
)

// ActualService handles actual transaction read logic.
type ActualService struct {
	repo Repository
}

// NewActualService creates a new ActualService.
func NewActualService(repo Repository) *ActualService {
	return &ActualService{repo: repo}
}

// ListActuals returns recorded actuals inside the inclusive date range.
// Empty bounds are open; a single date queries with both bounds equal.
func (s *ActualService) ListActuals(ctx context.Context, startDate, endDate string) ([]engine.ActualTransaction, error) {
	if startDate != "" {
		if _, err := schedule.ParseDate(startDate); err != nil {
			return nil, err
		}
	}
	if endDate != "" {
		if _, err := schedule.ParseDate(endDate); err != nil {
			return nil, err
		}
	}

	return s.repo.ListActuals(ctx, &actual.ActualFilter{
		StartDate: startDate,
		EndDate:   endDate,
	})
}
