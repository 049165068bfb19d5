package forecast

import (
	"github.com/carson-networks/cashflow-server/internal/engine"
)

// TransactionInstance is the API model for one resolved occurrence inside a
// period.
type TransactionInstance struct {
	TemplateID string   `json:"templateID" doc:"Template id this occurrence came from"`
	Name       string   `json:"name" doc:"Template display name"`
	Type       string   `json:"type" doc:"income or expense"`
	Amount     string   `json:"amount" doc:"Signed decimal amount"`
	IsActual   bool     `json:"isActual" doc:"True when a recorded actual replaced the projection"`
	Notes      string   `json:"notes,omitempty" doc:"Notes carried from the recorded actual"`
	Category   string   `json:"category,omitempty" doc:"Template category"`
	Tags       []string `json:"tags,omitempty" doc:"Template tags"`
}

// PeriodSnapshot is the API model for one scenario's balance state on one
// period date.
type PeriodSnapshot struct {
	ScenarioID      string                `json:"scenarioID" doc:"Scenario this snapshot belongs to"`
	Date            string                `json:"date" doc:"Period date, YYYY-MM-DD"`
	StartingBalance string                `json:"startingBalance" doc:"Decimal balance before this period"`
	Transactions    []TransactionInstance `json:"transactions" doc:"Occurrences in this period"`
	EndingBalance   string                `json:"endingBalance" doc:"Decimal balance after this period"`
	TotalIncome     string                `json:"totalIncome" doc:"Decimal income total for this period"`
	TotalExpenses   string                `json:"totalExpenses" doc:"Decimal absolute expense total for this period"`
	NetChange       string                `json:"netChange" doc:"Decimal income minus expenses"`
}

func snapshotFromEngine(s engine.PeriodSnapshot) PeriodSnapshot {
	converted := PeriodSnapshot{
		ScenarioID:      s.ScenarioID,
		Date:            s.Date,
		StartingBalance: s.StartingBalance.String(),
		Transactions:    make([]TransactionInstance, len(s.Transactions)),
		EndingBalance:   s.EndingBalance.String(),
		TotalIncome:     s.TotalIncome().String(),
		TotalExpenses:   s.TotalExpenses().String(),
		NetChange:       s.NetChange().String(),
	}
	for i, tx := range s.Transactions {
		converted.Transactions[i] = TransactionInstance{
			TemplateID: tx.TemplateID,
			Name:       tx.Name,
			Type:       string(tx.Type),
			Amount:     tx.Amount.String(),
			IsActual:   tx.IsActual,
			Notes:      tx.Notes,
			Category:   tx.Category,
			Tags:       tx.Tags,
		}
	}
	return converted
}

func snapshotsFromEngine(results map[string][]engine.PeriodSnapshot) map[string][]PeriodSnapshot {
	converted := make(map[string][]PeriodSnapshot, len(results))
	for scenarioID, snapshots := range results {
		series := make([]PeriodSnapshot, len(snapshots))
		for i, s := range snapshots {
			series[i] = snapshotFromEngine(s)
		}
		converted[scenarioID] = series
	}
	return converted
}
