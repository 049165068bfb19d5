package actual

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// RecordActualBody is the request body for recording an actual.
type RecordActualBody struct {
	Date       string `json:"date" required:"true" doc:"Occurrence date, YYYY-MM-DD"`
	TemplateID string `json:"templateID" required:"true" doc:"Template this actual locks in"`
	Amount     string `json:"amount" required:"true" doc:"Signed decimal amount, stored verbatim"`
	Notes      string `json:"notes" doc:"Free-form notes"`
}

// RecordActualInput is the Huma input for recording an actual.
type RecordActualInput struct {
	Body RecordActualBody
}

// RecordActualOutput is the Huma output for recording an actual.
type RecordActualOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// RecordActualHandler handles POST /v1/actual.
type RecordActualHandler struct {
	Operator actionProcessor
}

// NewRecordActualHandler creates a new RecordActualHandler.
func NewRecordActualHandler(op actionProcessor) *RecordActualHandler {
	return &RecordActualHandler{Operator: op}
}

// Register registers the record actual endpoint with the Huma API.
func (h *RecordActualHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "record-actual",
		Method:      http.MethodPost,
		Path:        "/v1/actual",
		Summary:     "Record actual",
		Description: "Records a locked-in amount for one (date, template) pair, replacing any earlier record for the same pair.",
		Tags:        []string{"Actuals"},
	}, h.handle)
}

// parseRecordActualInput parses and validates the API input.
func parseRecordActualInput(input *RecordActualInput) (engine.ActualTransaction, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return engine.ActualTransaction{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	act := engine.ActualTransaction{
		Date:       input.Body.Date,
		TemplateID: input.Body.TemplateID,
		Amount:     amount,
		Notes:      input.Body.Notes,
	}
	if err := act.Validate(); err != nil {
		return engine.ActualTransaction{}, huma.NewError(http.StatusBadRequest, "invalid actual", err)
	}
	return act, nil
}

func (h *RecordActualHandler) handle(ctx context.Context, input *RecordActualInput) (*RecordActualOutput, error) {
	act, err := parseRecordActualInput(input)
	if err != nil {
		return nil, err
	}

	action := &actions.UpsertActual{Actual: act}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to record actual", err)
	}

	return &RecordActualOutput{Status: http.StatusCreated}, nil
}
