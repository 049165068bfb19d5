package actual

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

// actualRow is the actuals table row. The (date, template_id) pair is
// unique; id is a surrogate key.
type actualRow struct {
	ID         uuid.UUID       `db:"id"`
	Date       string          `db:"date"`
	TemplateID string          `db:"template_id"`
	Amount     decimal.Decimal `db:"amount"`
	Notes      string          `db:"notes"`
	CreatedAt  time.Time       `db:"created_at"`
}

func rowToActual(row actualRow) engine.ActualTransaction {
	return engine.ActualTransaction{
		Date:       row.Date,
		TemplateID: row.TemplateID,
		Amount:     row.Amount,
		Notes:      row.Notes,
	}
}
