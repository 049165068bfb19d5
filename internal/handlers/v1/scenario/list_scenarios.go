package scenario

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/logging"
)

// ListScenariosResponseBody is the response body for listing scenarios.
type ListScenariosResponseBody struct {
	Scenarios []Scenario `json:"scenarios" doc:"Stored scenarios ordered by name"`
}

// ListScenariosOutput is the Huma output for listing scenarios.
type ListScenariosOutput struct {
	Body ListScenariosResponseBody
}

// scenarioLister is the interface for listing scenarios.
type scenarioLister interface {
	ListScenarios(ctx context.Context) ([]engine.Scenario, error)
}

// ListScenariosHandler handles GET /v1/scenarios.
type ListScenariosHandler struct {
	ScenarioService scenarioLister
}

// NewListScenariosHandler creates a new ListScenariosHandler.
func NewListScenariosHandler(svc scenarioLister) *ListScenariosHandler {
	return &ListScenariosHandler{ScenarioService: svc}
}

// Register registers the list scenarios endpoint with the Huma API.
func (h *ListScenariosHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-scenarios",
		Method:      http.MethodGet,
		Path:        "/v1/scenarios",
		Summary:     "List scenarios",
		Description: "Returns every stored scenario.",
		Tags:        []string{"Scenarios"},
	}, h.handle)
}

func (h *ListScenariosHandler) handle(ctx context.Context, _ *struct{}) (*ListScenariosOutput, error) {
	logData := logging.GetLogData(ctx)

	scenarios, err := h.ScenarioService.ListScenarios(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list scenarios", err)
	}

	if logData != nil {
		logData.AddData("scenarioCount", len(scenarios))
	}

	resp := ListScenariosResponseBody{
		Scenarios: make([]Scenario, len(scenarios)),
	}
	for i, sc := range scenarios {
		resp.Scenarios[i] = scenarioFromEngine(sc)
	}

	return &ListScenariosOutput{Body: resp}, nil
}
