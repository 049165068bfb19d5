package template

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/logging"
)

// ListTemplatesResponseBody is the response body for listing templates.
type ListTemplatesResponseBody struct {
	Templates []Template `json:"templates" doc:"Stored templates ordered by name"`
}

// ListTemplatesOutput is the Huma output for listing templates.
type ListTemplatesOutput struct {
	Body ListTemplatesResponseBody
}

// templateLister is the interface for listing templates.
type templateLister interface {
	ListTemplates(ctx context.Context) ([]engine.TransactionTemplate, error)
}

// ListTemplatesHandler handles GET /v1/templates.
type ListTemplatesHandler struct {
	TemplateService templateLister
}

// NewListTemplatesHandler creates a new ListTemplatesHandler.
func NewListTemplatesHandler(svc templateLister) *ListTemplatesHandler {
	return &ListTemplatesHandler{TemplateService: svc}
}

// Register registers the list templates endpoint with the Huma API.
func (h *ListTemplatesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-templates",
		Method:      http.MethodGet,
		Path:        "/v1/templates",
		Summary:     "List templates",
		Description: "Returns every stored transaction template.",
		Tags:        []string{"Templates"},
	}, h.handle)
}

func (h *ListTemplatesHandler) handle(ctx context.Context, _ *struct{}) (*ListTemplatesOutput, error) {
	logData := logging.GetLogData(ctx)

	templates, err := h.TemplateService.ListTemplates(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list templates", err)
	}

	if logData != nil {
		logData.AddData("templateCount", len(templates))
	}

	resp := ListTemplatesResponseBody{
		Templates: make([]Template, len(templates)),
	}
	for i, tpl := range templates {
		resp.Templates[i] = templateFromEngine(tpl)
	}

	return &ListTemplatesOutput{Body: resp}, nil
}
