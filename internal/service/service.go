package service

import (
	"github.com/carson-networks/cashflow-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Forecast *ForecastService
	Template *TemplateService
	Scenario *ScenarioService
	Actual   *ActualService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	repo := NewStorageRepository(store)
	return &Service{
		Forecast: NewForecastService(repo),
		Template: NewTemplateService(repo),
		Scenario: NewScenarioService(repo),
		Actual:   NewActualService(repo),
	}
}
