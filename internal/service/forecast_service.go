package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/storage/actual"
)

// ErrScenarioNotFound is returned when a requested scenario id has no
// stored scenario.
var ErrScenarioNotFound = errors.New("scenario not found")

// ForecastService runs projections over the stored templates, scenarios
// and actuals.
type ForecastService struct {
	repo Repository
}

// NewForecastService creates a new ForecastService.
func NewForecastService(repo Repository) *ForecastService {
	return &ForecastService{repo: repo}
}

// Run projects every requested scenario over the window.
func (s *ForecastService) Run(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	calc, scenarios, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshots, err := calc.CalculateMultipleScenarios(scenarios, req.StartDate, req.EndDate, req.StartingBalance)
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("scenarioCount", len(scenarios))
	}

	return &ForecastResult{Snapshots: snapshots}, nil
}

// Compare runs every requested scenario and derives the aligned ending
// balances, the point of maximum divergence and per-scenario summaries.
func (s *ForecastService) Compare(ctx context.Context, req ForecastRequest) (*CompareResult, error) {
	result, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	return &CompareResult{
		Snapshots:      result.Snapshots,
		EndingBalances: engine.CompareEndingBalances(result.Snapshots),
		MaxDivergence:  engine.FindMaxDivergence(result.Snapshots),
		Summaries:      engine.CalculateSummaries(result.Snapshots),
	}, nil
}

// prepare loads the stored world and resolves the requested scenario ids.
func (s *ForecastService) prepare(ctx context.Context, req ForecastRequest) (*engine.Calculator, []engine.Scenario, error) {
	if len(req.ScenarioIDs) == 0 {
		return nil, nil, errors.New("at least one scenario id is required")
	}

	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, nil, err
	}

	actuals, err := s.repo.ListActuals(ctx, &actual.ActualFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, nil, err
	}

	calc, err := engine.NewCalculator(templates, actuals)
	if err != nil {
		return nil, nil, err
	}

	scenarios := make([]engine.Scenario, 0, len(req.ScenarioIDs))
	for _, id := range req.ScenarioIDs {
		sc, err := s.repo.FindScenario(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if sc == nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrScenarioNotFound, id)
		}
		scenarios = append(scenarios, *sc)
	}

	return calc, scenarios, nil
}
