package actual

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/operator/actions"
	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// DeleteActualInput is the Huma input for deleting an actual.
type DeleteActualInput struct {
	Date       string `query:"date" required:"true" doc:"Occurrence date, YYYY-MM-DD"`
	TemplateID string `query:"templateID" required:"true" doc:"Template the actual locks in"`
}

// DeleteActualOutput is the Huma output for deleting an actual.
type DeleteActualOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// DeleteActualHandler handles DELETE /v1/actual.
type DeleteActualHandler struct {
	Operator actionProcessor
}

// NewDeleteActualHandler creates a new DeleteActualHandler.
func NewDeleteActualHandler(op actionProcessor) *DeleteActualHandler {
	return &DeleteActualHandler{Operator: op}
}

// Register registers the delete actual endpoint with the Huma API.
func (h *DeleteActualHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-actual",
		Method:      http.MethodDelete,
		Path:        "/v1/actual",
		Summary:     "Delete actual",
		Description: "Removes the recorded actual for one (date, template) pair so the projection applies again.",
		Tags:        []string{"Actuals"},
	}, h.handle)
}

func (h *DeleteActualHandler) handle(ctx context.Context, input *DeleteActualInput) (*DeleteActualOutput, error) {
	if _, err := schedule.ParseDate(input.Date); err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	action := &actions.DeleteActual{
		Date:       input.Date,
		TemplateID: input.TemplateID,
	}
	if err := h.Operator.Process(ctx, action); err != nil {
		if errors.Is(err, actions.ErrActualNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "actual not found", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to delete actual", err)
	}

	return &DeleteActualOutput{Status: http.StatusOK}, nil
}
