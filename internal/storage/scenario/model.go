package scenario

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

// scenarioRow is the scenarios table row. The enabled_transactions and
// config columns hold JSON documents.
type scenarioRow struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	EnabledTransactions []byte    `db:"enabled_transactions"`
	Config              []byte    `db:"config"`
	CreatedAt           time.Time `db:"created_at"`
}

func rowToScenario(row scenarioRow) (engine.Scenario, error) {
	sc := engine.Scenario{
		ID:   row.ID,
		Name: row.Name,
	}
	if len(row.EnabledTransactions) > 0 {
		if err := json.Unmarshal(row.EnabledTransactions, &sc.EnabledTransactions); err != nil {
			return sc, fmt.Errorf("scenario %v enabled_transactions: %w", row.ID, err)
		}
	}
	if len(row.Config) > 0 {
		if err := json.Unmarshal(row.Config, &sc.Config); err != nil {
			return sc, fmt.Errorf("scenario %v config: %w", row.ID, err)
		}
	}
	return sc, nil
}

func scenarioToRow(sc engine.Scenario) (scenarioRow, error) {
	row := scenarioRow{
		ID:   sc.ID,
		Name: sc.Name,
	}

	enabled, err := json.Marshal(sc.EnabledTransactions)
	if err != nil {
		return row, fmt.Errorf("scenario %v enabled_transactions: %w", sc.ID, err)
	}
	row.EnabledTransactions = enabled

	config, err := json.Marshal(sc.Config)
	if err != nil {
		return row, fmt.Errorf("scenario %v config: %w", sc.ID, err)
	}
	row.Config = config

	return row, nil
}
