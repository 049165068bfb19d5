package forecast

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/formula"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/service"
)

// RunForecastBody is the request body for running a forecast.
type RunForecastBody struct {
	ScenarioIDs     []string `json:"scenarioIDs" required:"true" minItems:"1" doc:"Stored scenario ids to project"`
	StartDate       string   `json:"startDate" required:"true" doc:"Inclusive window start, YYYY-MM-DD"`
	EndDate         string   `json:"endDate" required:"true" doc:"Inclusive window end, YYYY-MM-DD"`
	StartingBalance string   `json:"startingBalance" doc:"Decimal opening balance, defaults to 0"`
}

// RunForecastInput is the Huma input for running a forecast.
type RunForecastInput struct {
	Body RunForecastBody
}

// RunForecastResponseBody is the response body for running a forecast.
type RunForecastResponseBody struct {
	Snapshots map[string][]PeriodSnapshot `json:"snapshots" doc:"Snapshot series keyed by scenario id"`
}

// RunForecastOutput is the Huma output for running a forecast.
type RunForecastOutput struct {
	Body RunForecastResponseBody
}

// forecaster is the interface for running forecasts.
type forecaster interface {
	Run(ctx context.Context, req service.ForecastRequest) (*service.ForecastResult, error)
}

// RunForecastHandler handles POST /v1/forecast.
type RunForecastHandler struct {
	ForecastService forecaster
}

// NewRunForecastHandler creates a new RunForecastHandler.
func NewRunForecastHandler(svc forecaster) *RunForecastHandler {
	return &RunForecastHandler{ForecastService: svc}
}

// Register registers the run forecast endpoint with the Huma API.
func (h *RunForecastHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-forecast",
		Method:      http.MethodPost,
		Path:        "/v1/forecast",
		Summary:     "Run forecast",
		Description: "Projects the requested scenarios over the window and returns their balance snapshots.",
		Tags:        []string{"Forecast"},
	}, h.handle)
}

// parseForecastRequest converts the API body into a service request.
func parseForecastRequest(body RunForecastBody) (service.ForecastRequest, error) {
	startingBalance := decimal.Zero
	if body.StartingBalance != "" {
		parsed, err := decimal.NewFromString(body.StartingBalance)
		if err != nil {
			return service.ForecastRequest{}, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
		}
		startingBalance = parsed
	}

	return service.ForecastRequest{
		ScenarioIDs:     body.ScenarioIDs,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		StartingBalance: startingBalance,
	}, nil
}

// forecastError maps service failures onto HTTP statuses. Formula failures
// are the client's data, not a server fault.
func forecastError(err error) error {
	if errors.Is(err, service.ErrScenarioNotFound) {
		return huma.NewError(http.StatusNotFound, "scenario not found", err)
	}
	var evalErr *formula.EvalError
	if errors.As(err, &evalErr) {
		return huma.NewError(http.StatusUnprocessableEntity, "formula evaluation failed", err)
	}
	return huma.NewError(http.StatusInternalServerError, "failed to run forecast", err)
}

func (h *RunForecastHandler) handle(ctx context.Context, input *RunForecastInput) (*RunForecastOutput, error) {
	logData := logging.GetLogData(ctx)
	req, err := parseForecastRequest(input.Body)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("runForecastMs")
	}
	result, err := h.ForecastService.Run(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, forecastError(err)
	}

	if logData != nil {
		logData.AddData("scenarioCount", len(result.Snapshots))
	}

	return &RunForecastOutput{
		Body: RunForecastResponseBody{
			Snapshots: snapshotsFromEngine(result.Snapshots),
		},
	}, nil
}
