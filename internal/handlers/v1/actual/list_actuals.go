package actual

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// ListActualsInput is the Huma input for listing actuals.
type ListActualsInput struct {
	StartDate string `query:"startDate" doc:"Inclusive range start, YYYY-MM-DD; open when absent"`
	EndDate   string `query:"endDate" doc:"Inclusive range end, YYYY-MM-DD; open when absent"`
}

// ListActualsResponseBody is the response body for listing actuals.
type ListActualsResponseBody struct {
	Actuals []Actual `json:"actuals" doc:"Recorded actuals inside the range, ordered by date"`
}

// ListActualsOutput is the Huma output for listing actuals.
type ListActualsOutput struct {
	Body ListActualsResponseBody
}

// actualLister is the interface for listing actuals.
type actualLister interface {
	ListActuals(ctx context.Context, startDate, endDate string) ([]engine.ActualTransaction, error)
}

// ListActualsHandler handles GET /v1/actuals.
type ListActualsHandler struct {
	ActualService actualLister
}

// NewListActualsHandler creates a new ListActualsHandler.
func NewListActualsHandler(svc actualLister) *ListActualsHandler {
	return &ListActualsHandler{ActualService: svc}
}

// Register registers the list actuals endpoint with the Huma API.
func (h *ListActualsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-actuals",
		Method:      http.MethodGet,
		Path:        "/v1/actuals",
		Summary:     "List actuals",
		Description: "Returns recorded actuals inside an inclusive date range.",
		Tags:        []string{"Actuals"},
	}, h.handle)
}

func (h *ListActualsHandler) handle(ctx context.Context, input *ListActualsInput) (*ListActualsOutput, error) {
	logData := logging.GetLogData(ctx)

	if input.StartDate != "" {
		if _, err := schedule.ParseDate(input.StartDate); err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
	}
	if input.EndDate != "" {
		if _, err := schedule.ParseDate(input.EndDate); err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
	}

	actuals, err := h.ActualService.ListActuals(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list actuals", err)
	}

	if logData != nil {
		logData.AddData("actualCount", len(actuals))
	}

	resp := ListActualsResponseBody{
		Actuals: make([]Actual, len(actuals)),
	}
	for i, act := range actuals {
		resp.Actuals[i] = Actual{
			Date:       act.Date,
			TemplateID: act.TemplateID,
			Amount:     act.Amount.String(),
			Notes:      act.Notes,
		}
	}

	return &ListActualsOutput{Body: resp}, nil
}
