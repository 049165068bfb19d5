package template

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// Formula is the API model for a formula-valued field.
type Formula struct {
	Formula string         `json:"formula" required:"true" doc:"Expression, e.g. base * (1 + CONFIG.Raise)"`
	Context map[string]any `json:"context,omitempty" doc:"Extra variables available during evaluation"`
}

// Template is the API model for a transaction template. Amount and
// AmountFormula are mutually exclusive, as are EndsOn and EndsOnFormula.
type Template struct {
	ID            string   `json:"id" required:"true" doc:"Stable template id"`
	Name          string   `json:"name" required:"true" doc:"Display name"`
	Type          string   `json:"type" required:"true" enum:"income,expense" doc:"income or expense"`
	Amount        string   `json:"amount,omitempty" doc:"Literal decimal amount"`
	AmountFormula *Formula `json:"amountFormula,omitempty" doc:"Formula amount, alternative to amount"`
	Frequency     string   `json:"frequency" required:"true" doc:"once, weekly, bi-weekly, monthly, quarterly or yearly"`
	StartDate     string   `json:"startDate,omitempty" doc:"Inclusive activation start, YYYY-MM-DD"`
	EndDate       string   `json:"endDate,omitempty" doc:"Inclusive activation end, YYYY-MM-DD"`
	EndsOn        string   `json:"endsOn,omitempty" doc:"Last date the template fires, YYYY-MM-DD"`
	EndsOnFormula *Formula `json:"endsOnFormula,omitempty" doc:"Formula ends-on date, alternative to endsOn"`
	Category      string   `json:"category,omitempty" doc:"Free-form category"`
	Tags          []string `json:"tags,omitempty" doc:"Free-form tags"`
}

// actionProcessor routes a write through the operator queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

func formulaToEngine(f *Formula) *engine.Formula {
	if f == nil {
		return nil
	}
	return &engine.Formula{Expr: f.Formula, Context: f.Context}
}

func formulaFromEngine(f *engine.Formula) *Formula {
	if f == nil {
		return nil
	}
	return &Formula{Formula: f.Expr, Context: f.Context}
}

// templateToEngine converts the API model, rejecting malformed amounts.
// Structural rules (exactly one amount side, valid dates) are enforced by
// engine validation afterwards.
func templateToEngine(body Template) (engine.TransactionTemplate, error) {
	tpl := engine.TransactionTemplate{
		ID:        body.ID,
		Name:      body.Name,
		Type:      engine.TransactionType(body.Type),
		Frequency: schedule.Frequency(body.Frequency),
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Category:  body.Category,
		Tags:      body.Tags,
	}

	if body.Amount != "" {
		amount, err := decimal.NewFromString(body.Amount)
		if err != nil {
			return tpl, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		tpl.Amount = engine.LiteralAmount(amount)
	} else if body.AmountFormula != nil {
		tpl.Amount = engine.Amount{Formula: formulaToEngine(body.AmountFormula)}
	}

	if body.EndsOn != "" {
		tpl.EndsOn = &engine.DateSpec{Literal: body.EndsOn}
	} else if body.EndsOnFormula != nil {
		tpl.EndsOn = &engine.DateSpec{Formula: formulaToEngine(body.EndsOnFormula)}
	}

	if err := tpl.Validate(); err != nil {
		return tpl, huma.NewError(http.StatusBadRequest, "invalid template", err)
	}
	return tpl, nil
}

func templateFromEngine(tpl engine.TransactionTemplate) Template {
	body := Template{
		ID:        tpl.ID,
		Name:      tpl.Name,
		Type:      string(tpl.Type),
		Frequency: string(tpl.Frequency),
		StartDate: tpl.StartDate,
		EndDate:   tpl.EndDate,
		Category:  tpl.Category,
		Tags:      tpl.Tags,
	}
	if tpl.Amount.Literal != nil {
		body.Amount = tpl.Amount.Literal.String()
	} else {
		body.AmountFormula = formulaFromEngine(tpl.Amount.Formula)
	}
	if tpl.EndsOn != nil {
		if tpl.EndsOn.Literal != "" {
			body.EndsOn = tpl.EndsOn.Literal
		} else {
			body.EndsOnFormula = formulaFromEngine(tpl.EndsOn.Formula)
		}
	}
	return body
}
