// Package engine is the cashflow projection core. It turns transaction
// templates, scenario configuration and locked-in actuals into ordered
// balance snapshots, and compares scenario runs against each other.
//
// The engine is a pure computation library: it owns no persistence and no
// transport. All dates are YYYY-MM-DD strings on the boundary and noon-UTC
// time.Time values internally. All money is decimal.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// TransactionType classifies a template as money in or money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Formula is an expression plus optional extra context variables that are
// made available alongside the run-time context when it is evaluated.
type Formula struct {
	Expr    string
	Context map[string]any
}

// Amount is the number-or-formula variant for a template's amount. Exactly
// one side is set.
type Amount struct {
	Literal *decimal.Decimal
	Formula *Formula
}

// LiteralAmount builds a literal Amount.
func LiteralAmount(d decimal.Decimal) Amount {
	return Amount{Literal: &d}
}

// FormulaAmount builds a formula Amount with no extra context.
func FormulaAmount(expr string) Amount {
	return Amount{Formula: &Formula{Expr: expr}}
}

func (a Amount) validate() error {
	if (a.Literal == nil) == (a.Formula == nil) {
		return fmt.Errorf("amount must be exactly one of literal or formula")
	}
	if a.Formula != nil && a.Formula.Expr == "" {
		return fmt.Errorf("amount formula must not be empty")
	}
	return nil
}

// DateSpec is the date-or-formula variant used by a template's endsOn bound.
// Exactly one side is set.
type DateSpec struct {
	Literal string
	Formula *Formula
}

func (d DateSpec) validate() error {
	if (d.Literal == "") == (d.Formula == nil) {
		return fmt.Errorf("endsOn must be exactly one of literal date or formula")
	}
	if d.Literal != "" {
		if _, err := schedule.ParseDate(d.Literal); err != nil {
			return fmt.Errorf("endsOn: %w", err)
		}
	}
	return nil
}

// TransactionTemplate is a reusable definition of a recurring or one-time
// income/expense. Category and Tags are opaque to the engine.
type TransactionTemplate struct {
	ID        string
	Name      string
	Type      TransactionType
	Amount    Amount
	Frequency schedule.Frequency
	StartDate string // optional, inclusive anchor
	EndDate   string // optional, inclusive hard bound
	EndsOn    *DateSpec
	Category  string
	Tags      []string
}

// Validate checks field shape. An unknown frequency is not rejected here; it
// is tolerated at calculation time as never-occurring.
func (t *TransactionTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template must have an id")
	}
	if t.Name == "" {
		return fmt.Errorf("template %q must have a name", t.ID)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("template %q: type must be %q or %q", t.ID, TypeIncome, TypeExpense)
	}
	if err := t.Amount.validate(); err != nil {
		return fmt.Errorf("template %q: %w", t.ID, err)
	}
	if t.Frequency == "" {
		return fmt.Errorf("template %q must have a frequency", t.ID)
	}
	if t.StartDate != "" {
		if _, err := schedule.ParseDate(t.StartDate); err != nil {
			return fmt.Errorf("template %q startDate: %w", t.ID, err)
		}
	}
	if t.EndDate != "" {
		if _, err := schedule.ParseDate(t.EndDate); err != nil {
			return fmt.Errorf("template %q endDate: %w", t.ID, err)
		}
	}
	if t.EndsOn != nil {
		if err := t.EndsOn.validate(); err != nil {
			return fmt.Errorf("template %q: %w", t.ID, err)
		}
	}
	return nil
}

// Scenario is a named what-if configuration: an allow-list of participating
// template ids plus the CONFIG values its formulas consume.
type Scenario struct {
	ID                  string
	Name                string
	EnabledTransactions []string
	Config              map[string]any
}

func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario must have an id")
	}
	if s.Name == "" {
		return fmt.Errorf("scenario %q must have a name", s.ID)
	}
	return nil
}

// IsTransactionEnabled reports whether a template participates in this
// scenario. Ids that reference no existing template are simply inert.
func (s *Scenario) IsTransactionEnabled(templateID string) bool {
	for _, id := range s.EnabledTransactions {
		if id == templateID {
			return true
		}
	}
	return false
}

// ConfigValue returns a CONFIG value, or def when absent.
func (s *Scenario) ConfigValue(key string, def any) any {
	if v, ok := s.Config[key]; ok {
		return v
	}
	return def
}

// ActualTransaction is a historical, locked-in amount that overrides the
// projection for one (date, template) pair.
type ActualTransaction struct {
	Date       string
	TemplateID string
	Amount     decimal.Decimal
	Notes      string
}

func (a *ActualTransaction) Validate() error {
	if a.TemplateID == "" {
		return fmt.Errorf("actual transaction must have a template_id")
	}
	if _, err := schedule.ParseDate(a.Date); err != nil {
		return fmt.Errorf("actual transaction for template %q: %w", a.TemplateID, err)
	}
	return nil
}

// TransactionInstance is the resolved occurrence of one template on one date
// within one scenario. Instances are created fresh per period and never
// mutated afterwards.
type TransactionInstance struct {
	TemplateID string
	Name       string
	Type       TransactionType
	Amount     decimal.Decimal
	IsActual   bool
	Notes      string
	Category   string
	Tags       []string
}

// PeriodSnapshot is the computed balance state for one scenario on one date.
// EndingBalance is always StartingBalance plus the sum of the instance
// amounts. Snapshots are immutable once produced.
type PeriodSnapshot struct {
	ScenarioID      string
	Date            string
	StartingBalance decimal.Decimal
	Transactions    []TransactionInstance
	EndingBalance   decimal.Decimal
}

// TotalIncome sums the income instances in this period.
func (s *PeriodSnapshot) TotalIncome() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.Transactions {
		if tx.Type == TypeIncome {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// TotalExpenses sums the absolute expense amounts in this period.
func (s *PeriodSnapshot) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.Transactions {
		if tx.Type == TypeExpense {
			total = total.Add(tx.Amount.Abs())
		}
	}
	return total
}

// NetChange is income minus expenses for this period.
func (s *PeriodSnapshot) NetChange() decimal.Decimal {
	return s.TotalIncome().Sub(s.TotalExpenses())
}
