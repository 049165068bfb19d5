package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/cashflow-server/internal/formula"
	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// DependencyRule is an optional post-filter applied to the active template
// set for each period date, for cases where one transaction firing should
// suppress another (a house sale removing the mortgage). Injected by the
// caller; the engine carries no ambient rule state.
type DependencyRule func(active []TransactionTemplate, date string) []TransactionTemplate

// Resolver decides, per (template, date), whether a template participates in
// a scenario, whether it fires, and what it is worth. One Resolver serves one
// scenario for the duration of a calculation.
type Resolver struct {
	scenario Scenario
	enabled  map[string]struct{}

	// Templates already warned about, so a grid walk does not repeat the
	// unknown-frequency diagnostic for every date.
	warned map[string]struct{}
}

// NewResolver creates a Resolver for one scenario.
func NewResolver(scenario Scenario) *Resolver {
	enabled := make(map[string]struct{}, len(scenario.EnabledTransactions))
	for _, id := range scenario.EnabledTransactions {
		enabled[id] = struct{}{}
	}
	return &Resolver{
		scenario: scenario,
		enabled:  enabled,
		warned:   make(map[string]struct{}),
	}
}

// Enabled reports whether the scenario's allow-list contains the template.
func (r *Resolver) Enabled(templateID string) bool {
	_, ok := r.enabled[templateID]
	return ok
}

// IsActive reports whether the template's validity window contains date.
// startDate and endDate are inclusive; endsOn is present-through, absent
// the instant after. A once template is only active on its exact start date.
func (r *Resolver) IsActive(tpl *TransactionTemplate, date time.Time) (bool, error) {
	if tpl.StartDate != "" {
		start, err := schedule.ParseDate(tpl.StartDate)
		if err != nil {
			return false, err
		}
		if date.Before(start) {
			return false, nil
		}
	}
	if tpl.EndDate != "" {
		end, err := schedule.ParseDate(tpl.EndDate)
		if err != nil {
			return false, err
		}
		if date.After(end) {
			return false, nil
		}
	}
	if tpl.EndsOn != nil {
		endsOn, err := r.resolveEndsOn(tpl, date)
		if err != nil {
			return false, err
		}
		if date.After(endsOn) {
			return false, nil
		}
	}
	if tpl.Frequency == schedule.FrequencyOnce {
		if tpl.StartDate == "" {
			return false, nil
		}
		start, err := schedule.ParseDate(tpl.StartDate)
		if err != nil {
			return false, err
		}
		return schedule.SameDay(date, start), nil
	}
	return true, nil
}

// Occurs reports whether the template fires on this exact date: active and,
// per its frequency, on schedule. Unknown frequencies never occur; they are
// logged once per template rather than failing the calculation.
func (r *Resolver) Occurs(tpl *TransactionTemplate, date time.Time) (bool, error) {
	active, err := r.IsActive(tpl, date)
	if err != nil || !active {
		return false, err
	}

	if !tpl.Frequency.Known() {
		if _, seen := r.warned[tpl.ID]; !seen {
			r.warned[tpl.ID] = struct{}{}
			logrus.WithFields(logrus.Fields{
				"template":  tpl.ID,
				"frequency": string(tpl.Frequency),
			}).Warn("Resolver.Occurs.unknown frequency, treated as never occurring")
		}
		return false, nil
	}

	anchor := date
	if tpl.StartDate != "" {
		anchor, err = schedule.ParseDate(tpl.StartDate)
		if err != nil {
			return false, err
		}
	} else if tpl.Frequency != schedule.FrequencyMonthly {
		// Anchored frequencies need a start date to count offsets from.
		// Monthly fires on fixed calendar days and needs none.
		return false, nil
	}
	return schedule.FiresOn(tpl.Frequency, anchor, date), nil
}

// ActiveTemplates filters to the templates that are enabled in the scenario
// and fire on date.
func (r *Resolver) ActiveTemplates(templates []TransactionTemplate, date time.Time) ([]TransactionTemplate, error) {
	var active []TransactionTemplate
	for i := range templates {
		tpl := templates[i]
		if !r.Enabled(tpl.ID) {
			continue
		}
		occurs, err := r.Occurs(&tpl, date)
		if err != nil {
			return nil, err
		}
		if occurs {
			active = append(active, tpl)
		}
	}
	return active, nil
}

// Amount resolves the template's projected amount for date. Expense amounts
// are normalized negative when the raw evaluated value is positive; source
// amounts are expected non-negative, so sign follows type, never the
// evaluated sign alone.
func (r *Resolver) Amount(tpl *TransactionTemplate, date time.Time) (decimal.Decimal, error) {
	var amount decimal.Decimal
	switch {
	case tpl.Amount.Literal != nil:
		amount = *tpl.Amount.Literal
	case tpl.Amount.Formula != nil:
		v, err := formula.Eval(tpl.Amount.Formula.Expr, r.scenario.Config, r.formulaContext(tpl.Amount.Formula, date))
		if err != nil {
			return decimal.Zero, fmt.Errorf("template %q amount: %w", tpl.ID, err)
		}
		amount, err = v.Decimal()
		if err != nil {
			return decimal.Zero, fmt.Errorf("template %q amount: %w", tpl.ID, err)
		}
	default:
		// Construction-time validation rules this out; a zero here is the
		// deliberate non-evaluator default for a shapeless amount.
		return decimal.Zero, nil
	}

	if tpl.Type == TypeExpense && amount.IsPositive() {
		return amount.Neg(), nil
	}
	return amount, nil
}

func (r *Resolver) resolveEndsOn(tpl *TransactionTemplate, date time.Time) (time.Time, error) {
	if tpl.EndsOn.Literal != "" {
		return schedule.ParseDate(tpl.EndsOn.Literal)
	}
	v, err := formula.Eval(tpl.EndsOn.Formula.Expr, r.scenario.Config, r.formulaContext(tpl.EndsOn.Formula, date))
	if err != nil {
		return time.Time{}, fmt.Errorf("template %q endsOn: %w", tpl.ID, err)
	}
	s, err := v.Text()
	if err != nil {
		return time.Time{}, fmt.Errorf("template %q endsOn: %w", tpl.ID, err)
	}
	endsOn, err := schedule.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("template %q endsOn: %w", tpl.ID, err)
	}
	return endsOn, nil
}

// formulaContext merges a formula's own extra context under the run-time
// date. The date wins on collision.
func (r *Resolver) formulaContext(f *Formula, date time.Time) map[string]any {
	ctx := make(map[string]any, len(f.Context)+1)
	for k, v := range f.Context {
		ctx[k] = v
	}
	ctx["date"] = schedule.FormatDate(date)
	return ctx
}
