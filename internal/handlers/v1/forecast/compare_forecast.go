package forecast

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/service"
)

// BalancePoint is the API model for one aligned comparison date.
type BalancePoint struct {
	Date     string            `json:"date" doc:"Period date, YYYY-MM-DD"`
	Balances map[string]string `json:"balances" doc:"Decimal ending balance per scenario id, absent when a scenario has no snapshot on this date"`
}

// Divergence is the API model for the point of maximum spread.
type Divergence struct {
	Date       string            `json:"date" doc:"Date of the widest spread, empty when fewer than two points exist"`
	Difference string            `json:"difference" doc:"Decimal spread between highest and lowest balance"`
	Balances   map[string]string `json:"balances" doc:"Decimal ending balance per scenario id at that date"`
}

// ScenarioSummary is the API model for one scenario's run totals.
type ScenarioSummary struct {
	TotalIncome       string `json:"totalIncome" doc:"Decimal income total"`
	TotalExpenses     string `json:"totalExpenses" doc:"Decimal absolute expense total"`
	NetChange         string `json:"netChange" doc:"Decimal income minus expenses"`
	ActualIncome      string `json:"actualIncome" doc:"Decimal income from recorded actuals"`
	ActualExpenses    string `json:"actualExpenses" doc:"Decimal expenses from recorded actuals"`
	ProjectedIncome   string `json:"projectedIncome" doc:"Decimal income from projections"`
	ProjectedExpenses string `json:"projectedExpenses" doc:"Decimal expenses from projections"`
	StartingBalance   string `json:"startingBalance" doc:"Decimal balance before the first period"`
	EndingBalance     string `json:"endingBalance" doc:"Decimal balance after the last period"`
}

// CompareForecastResponseBody is the response body for comparing forecasts.
type CompareForecastResponseBody struct {
	Snapshots      map[string][]PeriodSnapshot `json:"snapshots" doc:"Snapshot series keyed by scenario id"`
	EndingBalances []BalancePoint              `json:"endingBalances" doc:"Ending balances aligned on the union of period dates"`
	MaxDivergence  Divergence                  `json:"maxDivergence" doc:"Date where the scenarios spread apart the most"`
	Summaries      map[string]ScenarioSummary  `json:"summaries" doc:"Run totals keyed by scenario id"`
}

// CompareForecastOutput is the Huma output for comparing forecasts.
type CompareForecastOutput struct {
	Body CompareForecastResponseBody
}

// forecastComparer is the interface for comparing forecasts.
type forecastComparer interface {
	Compare(ctx context.Context, req service.ForecastRequest) (*service.CompareResult, error)
}

// CompareForecastHandler handles POST /v1/forecast/compare.
type CompareForecastHandler struct {
	ForecastService forecastComparer
}

// NewCompareForecastHandler creates a new CompareForecastHandler.
func NewCompareForecastHandler(svc forecastComparer) *CompareForecastHandler {
	return &CompareForecastHandler{ForecastService: svc}
}

// Register registers the compare forecast endpoint with the Huma API.
func (h *CompareForecastHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "compare-forecast",
		Method:      http.MethodPost,
		Path:        "/v1/forecast/compare",
		Summary:     "Compare forecasts",
		Description: "Runs the requested scenarios and returns aligned balances, the maximum divergence and per-scenario summaries.",
		Tags:        []string{"Forecast"},
	}, h.handle)
}

func (h *CompareForecastHandler) handle(ctx context.Context, input *RunForecastInput) (*CompareForecastOutput, error) {
	logData := logging.GetLogData(ctx)
	req, err := parseForecastRequest(input.Body)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("compareForecastMs")
	}
	result, err := h.ForecastService.Compare(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, forecastError(err)
	}

	if logData != nil {
		logData.AddData("scenarioCount", len(result.Snapshots))
		logData.AddData("comparisonDateCount", len(result.EndingBalances))
	}

	resp := CompareForecastResponseBody{
		Snapshots:      snapshotsFromEngine(result.Snapshots),
		EndingBalances: make([]BalancePoint, len(result.EndingBalances)),
		MaxDivergence:  divergenceFromEngine(result.MaxDivergence),
		Summaries:      make(map[string]ScenarioSummary, len(result.Summaries)),
	}
	for i, point := range result.EndingBalances {
		resp.EndingBalances[i] = balancePointFromEngine(point)
	}
	for scenarioID, summary := range result.Summaries {
		resp.Summaries[scenarioID] = summaryFromEngine(summary)
	}

	return &CompareForecastOutput{Body: resp}, nil
}

func balancePointFromEngine(point engine.BalancePoint) BalancePoint {
	converted := BalancePoint{
		Date:     point.Date,
		Balances: make(map[string]string, len(point.Balances)),
	}
	for scenarioID, balance := range point.Balances {
		converted.Balances[scenarioID] = balance.String()
	}
	return converted
}

func divergenceFromEngine(d engine.Divergence) Divergence {
	converted := Divergence{
		Date:       d.Date,
		Difference: d.Difference.String(),
		Balances:   make(map[string]string, len(d.Balances)),
	}
	for scenarioID, balance := range d.Balances {
		converted.Balances[scenarioID] = balance.String()
	}
	return converted
}

func summaryFromEngine(s engine.ScenarioSummary) ScenarioSummary {
	return ScenarioSummary{
		TotalIncome:       s.TotalIncome.String(),
		TotalExpenses:     s.TotalExpenses.String(),
		NetChange:         s.NetChange.String(),
		ActualIncome:      s.ActualIncome.String(),
		ActualExpenses:    s.ActualExpenses.String(),
		ProjectedIncome:   s.ProjectedIncome.String(),
		ProjectedExpenses: s.ProjectedExpenses.String(),
		StartingBalance:   s.StartingBalance.String(),
		EndingBalance:     s.EndingBalance.String(),
	}
}
