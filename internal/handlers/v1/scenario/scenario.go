package scenario

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// Scenario is the API model for a what-if scenario.
type Scenario struct {
	ID                  string         `json:"id" required:"true" doc:"Stable scenario id"`
	Name                string         `json:"name" required:"true" doc:"Display name"`
	EnabledTransactions []string       `json:"enabledTransactions,omitempty" doc:"Template ids participating in this scenario"`
	Config              map[string]any `json:"config,omitempty" doc:"CONFIG values available to formulas"`
}

// actionProcessor routes a write through the operator queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

func scenarioToEngine(body Scenario) engine.Scenario {
	return engine.Scenario{
		ID:                  body.ID,
		Name:                body.Name,
		EnabledTransactions: body.EnabledTransactions,
		Config:              body.Config,
	}
}

func scenarioFromEngine(sc engine.Scenario) Scenario {
	return Scenario{
		ID:                  sc.ID,
		Name:                sc.Name,
		EnabledTransactions: sc.EnabledTransactions,
		Config:              sc.Config,
	}
}
