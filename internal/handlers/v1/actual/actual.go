package actual

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// Actual is the API response model for a recorded actual transaction.
type Actual struct {
	Date       string `json:"date" doc:"Occurrence date, YYYY-MM-DD"`
	TemplateID string `json:"templateID" doc:"Template this actual locks in"`
	Amount     string `json:"amount" doc:"Signed decimal amount, stored verbatim"`
	Notes      string `json:"notes,omitempty" doc:"Free-form notes"`
}

// actionProcessor routes a write through the operator queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
