package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

// ForecastRequest selects stored scenarios and a projection window.
type ForecastRequest struct {
	ScenarioIDs     []string
	StartDate       string
	EndDate         string
	StartingBalance decimal.Decimal
}

// ForecastResult holds one snapshot series per requested scenario.
type ForecastResult struct {
	Snapshots map[string][]engine.PeriodSnapshot
}

// CompareResult is a multi-scenario run plus the derived comparison
// artifacts.
type CompareResult struct {
	Snapshots      map[string][]engine.PeriodSnapshot
	EndingBalances []engine.BalancePoint
	MaxDivergence  engine.Divergence
	Summaries      map[string]engine.ScenarioSummary
}
