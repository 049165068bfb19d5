package template

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// UpsertTemplateInput is the Huma input for storing a template.
type UpsertTemplateInput struct {
	Body Template
}

// UpsertTemplateOutput is the Huma output for storing a template.
type UpsertTemplateOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// UpsertTemplateHandler handles POST /v1/template.
type UpsertTemplateHandler struct {
	Operator actionProcessor
}

// NewUpsertTemplateHandler creates a new UpsertTemplateHandler.
func NewUpsertTemplateHandler(op actionProcessor) *UpsertTemplateHandler {
	return &UpsertTemplateHandler{Operator: op}
}

// Register registers the upsert template endpoint with the Huma API.
func (h *UpsertTemplateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-template",
		Method:      http.MethodPost,
		Path:        "/v1/template",
		Summary:     "Store template",
		Description: "Stores a transaction template, replacing any stored template with the same id.",
		Tags:        []string{"Templates"},
	}, h.handle)
}

func (h *UpsertTemplateHandler) handle(ctx context.Context, input *UpsertTemplateInput) (*UpsertTemplateOutput, error) {
	tpl, err := templateToEngine(input.Body)
	if err != nil {
		return nil, err
	}

	action := &actions.UpsertTemplate{Template: tpl}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to store template", err)
	}

	return &UpsertTemplateOutput{Status: http.StatusCreated}, nil
}
