package template

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// templateRow is the templates table row. The amount, ends_on and tags
// columns hold JSON documents.
type templateRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Amount    []byte    `db:"amount"`
	Frequency string    `db:"frequency"`
	StartDate string    `db:"start_date"`
	EndDate   string    `db:"end_date"`
	EndsOn    []byte    `db:"ends_on"`
	Category  string    `db:"category"`
	Tags      []byte    `db:"tags"`
	CreatedAt time.Time `db:"created_at"`
}

func rowToTemplate(row templateRow) (engine.TransactionTemplate, error) {
	tpl := engine.TransactionTemplate{
		ID:        row.ID,
		Name:      row.Name,
		Type:      engine.TransactionType(row.Type),
		Frequency: schedule.Frequency(row.Frequency),
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		Category:  row.Category,
	}
	if err := json.Unmarshal(row.Amount, &tpl.Amount); err != nil {
		return tpl, fmt.Errorf("template %v amount: %w", row.ID, err)
	}
	if len(row.EndsOn) > 0 {
		var endsOn engine.DateSpec
		if err := json.Unmarshal(row.EndsOn, &endsOn); err != nil {
			return tpl, fmt.Errorf("template %v ends_on: %w", row.ID, err)
		}
		tpl.EndsOn = &endsOn
	}
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &tpl.Tags); err != nil {
			return tpl, fmt.Errorf("template %v tags: %w", row.ID, err)
		}
	}
	return tpl, nil
}

func templateToRow(tpl engine.TransactionTemplate) (templateRow, error) {
	row := templateRow{
		ID:        tpl.ID,
		Name:      tpl.Name,
		Type:      string(tpl.Type),
		Frequency: string(tpl.Frequency),
		StartDate: tpl.StartDate,
		EndDate:   tpl.EndDate,
		Category:  tpl.Category,
	}

	amount, err := json.Marshal(tpl.Amount)
	if err != nil {
		return row, fmt.Errorf("template %v amount: %w", tpl.ID, err)
	}
	row.Amount = amount

	if tpl.EndsOn != nil {
		endsOn, err := json.Marshal(tpl.EndsOn)
		if err != nil {
			return row, fmt.Errorf("template %v ends_on: %w", tpl.ID, err)
		}
		row.EndsOn = endsOn
	}

	tags, err := json.Marshal(tpl.Tags)
	if err != nil {
		return row, fmt.Errorf("template %v tags: %w", tpl.ID, err)
	}
	row.Tags = tags

	return row, nil
}
