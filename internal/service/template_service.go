package service

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

// TemplateService handles template read logic.
type TemplateService struct {
	repo Repository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(repo Repository) *TemplateService {
	return &TemplateService{repo: repo}
}

// ListTemplates returns every stored template.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]engine.TransactionTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

// GetTemplate returns the template with the given id, or nil when absent.
func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*engine.TransactionTemplate, error) {
	return s.repo.FindTemplate(ctx, id)
}
