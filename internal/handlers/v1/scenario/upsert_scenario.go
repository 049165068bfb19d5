package scenario

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// UpsertScenarioInput is the Huma input for storing a scenario.
type UpsertScenarioInput struct {
	Body Scenario
}

// UpsertScenarioOutput is the Huma output for storing a scenario.
type UpsertScenarioOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpsertScenarioHandler handles POST /v1/scenario.
type UpsertScenarioHandler struct {
	Operator actionProcessor
}

// NewUpsertScenarioHandler creates a new UpsertScenarioHandler.
func NewUpsertScenarioHandler(op actionProcessor) *UpsertScenarioHandler {
	return &UpsertScenarioHandler{Operator: op}
}

// Register registers the upsert scenario endpoint with the Huma API.
func (h *UpsertScenarioHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-scenario",
		Method:      http.MethodPost,
		Path:        "/v1/scenario",
		Summary:     "Store scenario",
		Description: "Stores a scenario, replacing any stored scenario with the same id.",
		Tags:        []string{"Scenarios"},
	}, h.handle)
}

func (h *UpsertScenarioHandler) handle(ctx context.Context, input *UpsertScenarioInput) (*UpsertScenarioOutput, error) {
	sc := scenarioToEngine(input.Body)
	if err := sc.Validate(); err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid scenario", err)
	}

	action := &actions.UpsertScenario{Scenario: sc}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to store scenario", err)
	}

	return &UpsertScenarioOutput{Status: http.StatusCreated}, nil
}
