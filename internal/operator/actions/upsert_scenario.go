package actions

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

// UpsertScenario stores a scenario, replacing any stored scenario with the
// same id.
type UpsertScenario struct {
	Scenario engine.Scenario

	IAction
}

func (a *UpsertScenario) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := a.Scenario.Validate(); err != nil {
		return err
	}
	return writer.Scenario.Upsert(ctx, a.Scenario)
}
