package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/storage/actual"
)

func TestListActuals_PassesRangeFilter(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListActuals", mock.Anything, &actual.ActualFilter{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
	}).Return([]engine.ActualTransaction{
		{Date: "2025-01-15", TemplateID: "rent", Amount: decimal.RequireFromString("-910.50")},
	}, nil)

	svc := NewActualService(repo)
	actuals, err := svc.ListActuals(context.Background(), "2025-01-01", "2025-01-31")

	assert.NoError(t, err)
	assert.Len(t, actuals, 1)
	assert.Equal(t, "rent", actuals[0].TemplateID)
	repo.AssertExpectations(t)
}

func TestListActuals_OpenBounds(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListActuals", mock.Anything, &actual.ActualFilter{}).
		Return(([]engine.ActualTransaction)(nil), nil)

	svc := NewActualService(repo)
	actuals, err := svc.ListActuals(context.Background(), "", "")

	assert.NoError(t, err)
	assert.Empty(t, actuals)
	repo.AssertExpectations(t)
}

func TestListActuals_RejectsBadDate(t *testing.T) {
	repo := new(mockRepository)

	svc := NewActualService(repo)
	_, err := svc.ListActuals(context.Background(), "01/15/2025", "")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListActuals")
}
