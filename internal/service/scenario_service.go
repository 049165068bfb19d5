package service

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

// ScenarioService handles scenario read logic.
type ScenarioService struct {
	repo Repository
}

// NewScenarioService creates a new ScenarioService.
func NewScenarioService(repo Repository) *ScenarioService {
	return &ScenarioService{repo: repo}
}

// ListScenarios returns every stored scenario.
func (s *ScenarioService) ListScenarios(ctx context.Context) ([]engine.Scenario, error) {
	return s.repo.ListScenarios(ctx)
}

// GetScenario returns the scenario with the given id, or nil when absent.
func (s *ScenarioService) GetScenario(ctx context.Context, id string) (*engine.Scenario, error) {
	return s.repo.FindScenario(ctx, id)
}
