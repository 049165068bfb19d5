package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/service"
)

type mockForecastComparer struct {
	mock.Mock
}

func (m *mockForecastComparer) Compare(ctx context.Context, req service.ForecastRequest) (*service.CompareResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.CompareResult)
	return result, args.Error(1)
}

func newCompareTestAPI(t *testing.T, svc forecastComparer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCompareForecastHandler(svc).Register(api)
	return api
}

func TestHTTP_CompareForecast_Success(t *testing.T) {
	mockSvc := new(mockForecastComparer)
	mockSvc.On("Compare", mock.Anything, mock.Anything).Return(&service.CompareResult{
		Snapshots: sampleSnapshots(),
		EndingBalances: []engine.BalancePoint{
			{
				Date: "2025-01-01",
				Balances: map[string]decimal.Decimal{
					"base":   decimal.RequireFromString("2600"),
					"hustle": decimal.RequireFromString("3000"),
				},
			},
		},
		MaxDivergence: engine.Divergence{
			Date:       "2025-01-01",
			Difference: decimal.RequireFromString("400"),
			Balances: map[string]decimal.Decimal{
				"base":   decimal.RequireFromString("2600"),
				"hustle": decimal.RequireFromString("3000"),
			},
		},
		Summaries: map[string]engine.ScenarioSummary{
			"base": {
				TotalIncome:     decimal.RequireFromString("2500"),
				TotalExpenses:   decimal.RequireFromString("900"),
				NetChange:       decimal.RequireFromString("1600"),
				ProjectedIncome: decimal.RequireFromString("2500"),
				ActualExpenses:  decimal.RequireFromString("900"),
				StartingBalance: decimal.RequireFromString("1000"),
				EndingBalance:   decimal.RequireFromString("2600"),
			},
		},
	}, nil)

	resp := newCompareTestAPI(t, mockSvc).Post("/v1/forecast/compare", RunForecastBody{
		ScenarioIDs: []string{"base", "hustle"},
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-31",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body CompareForecastResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Len(t, body.EndingBalances, 1)
	assert.Equal(t, "2025-01-01", body.EndingBalances[0].Date)
	assert.Equal(t, "2600", body.EndingBalances[0].Balances["base"])
	assert.Equal(t, "3000", body.EndingBalances[0].Balances["hustle"])

	assert.Equal(t, "400", body.MaxDivergence.Difference)
	assert.Equal(t, "2025-01-01", body.MaxDivergence.Date)

	summary := body.Summaries["base"]
	assert.Equal(t, "1600", summary.NetChange)
	assert.Equal(t, "2500", summary.ProjectedIncome)
	assert.Equal(t, "900", summary.ActualExpenses)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CompareForecast_ServiceError(t *testing.T) {
	mockSvc := new(mockForecastComparer)
	mockSvc.On("Compare", mock.Anything, mock.Anything).
		Return((*service.CompareResult)(nil), errors.New("database unavailable"))

	resp := newCompareTestAPI(t, mockSvc).Post("/v1/forecast/compare", RunForecastBody{
		ScenarioIDs: []string{"base"},
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-31",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
