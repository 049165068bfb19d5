// Package plan loads a cashflow plan document from YAML: templates,
// scenarios and actuals in one file, for offline runs and seeding.
package plan

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// Document is the top-level YAML structure.
type Document struct {
	Templates []Template `yaml:"templates"`
	Scenarios []Scenario `yaml:"scenarios"`
	Actuals   []Actual   `yaml:"actuals"`
}

// FormulaDoc is a formula-valued field in the plan file.
type FormulaDoc struct {
	Formula string         `yaml:"formula"`
	Context map[string]any `yaml:"context"`
}

// Template mirrors one templates entry. Amount and AmountFormula are
// mutually exclusive, as are EndsOn and EndsOnFormula.
type Template struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Type          string      `yaml:"type"`
	Amount        any         `yaml:"amount"`
	AmountFormula *FormulaDoc `yaml:"amount_formula"`
	Frequency     string      `yaml:"frequency"`
	StartDate     string      `yaml:"start_date"`
	EndDate       string      `yaml:"end_date"`
	EndsOn        string      `yaml:"ends_on"`
	EndsOnFormula *FormulaDoc `yaml:"ends_on_formula"`
	Category      string      `yaml:"category"`
	Tags          []string    `yaml:"tags"`
}

// Scenario mirrors one scenarios entry.
type Scenario struct {
	ID                  string         `yaml:"id"`
	Name                string         `yaml:"name"`
	EnabledTransactions []string       `yaml:"enabled_transactions"`
	Config              map[string]any `yaml:"config"`
}

// Actual mirrors one actuals entry.
type Actual struct {
	Date       string `yaml:"date"`
	TemplateID string `yaml:"template_id"`
	Amount     any    `yaml:"amount"`
	Notes      string `yaml:"notes"`
}

// Plan is a parsed and validated plan document.
type Plan struct {
	Templates []engine.TransactionTemplate
	Scenarios []engine.Scenario
	Actuals   []engine.ActualTransaction
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

// Parse parses plan YAML and validates every entry.
func Parse(data []byte) (*Plan, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse plan YAML (check syntax, indentation, and field names): %w", err)
	}

	result := &Plan{
		Templates: make([]engine.TransactionTemplate, 0, len(doc.Templates)),
		Scenarios: make([]engine.Scenario, 0, len(doc.Scenarios)),
		Actuals:   make([]engine.ActualTransaction, 0, len(doc.Actuals)),
	}

	for i, entry := range doc.Templates {
		tpl, err := templateToEngine(entry)
		if err != nil {
			return nil, fmt.Errorf("template %d (%s): %w", i, entry.ID, err)
		}
		if err := tpl.Validate(); err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		result.Templates = append(result.Templates, tpl)
	}

	for i, entry := range doc.Scenarios {
		sc := engine.Scenario{
			ID:                  entry.ID,
			Name:                entry.Name,
			EnabledTransactions: entry.EnabledTransactions,
			Config:              entry.Config,
		}
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		result.Scenarios = append(result.Scenarios, sc)
	}

	for i, entry := range doc.Actuals {
		amount, err := decimalFromAny(entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("actual %d (%s): %w", i, entry.TemplateID, err)
		}
		act := engine.ActualTransaction{
			Date:       entry.Date,
			TemplateID: entry.TemplateID,
			Amount:     amount,
			Notes:      entry.Notes,
		}
		if err := act.Validate(); err != nil {
			return nil, fmt.Errorf("actual %d: %w", i, err)
		}
		result.Actuals = append(result.Actuals, act)
	}

	return result, nil
}

func templateToEngine(entry Template) (engine.TransactionTemplate, error) {
	tpl := engine.TransactionTemplate{
		ID:        entry.ID,
		Name:      entry.Name,
		Type:      engine.TransactionType(entry.Type),
		Frequency: schedule.Frequency(entry.Frequency),
		StartDate: entry.StartDate,
		EndDate:   entry.EndDate,
		Category:  entry.Category,
		Tags:      entry.Tags,
	}

	if entry.Amount != nil && entry.AmountFormula != nil {
		return tpl, fmt.Errorf("amount and amount_formula are mutually exclusive")
	}
	if entry.Amount != nil {
		amount, err := decimalFromAny(entry.Amount)
		if err != nil {
			return tpl, err
		}
		tpl.Amount = engine.LiteralAmount(amount)
	} else if entry.AmountFormula != nil {
		tpl.Amount = engine.Amount{Formula: &engine.Formula{
			Expr:    entry.AmountFormula.Formula,
			Context: entry.AmountFormula.Context,
		}}
	}

	if entry.EndsOn != "" && entry.EndsOnFormula != nil {
		return tpl, fmt.Errorf("ends_on and ends_on_formula are mutually exclusive")
	}
	if entry.EndsOn != "" {
		tpl.EndsOn = &engine.DateSpec{Literal: entry.EndsOn}
	} else if entry.EndsOnFormula != nil {
		tpl.EndsOn = &engine.DateSpec{Formula: &engine.Formula{
			Expr:    entry.EndsOnFormula.Formula,
			Context: entry.EndsOnFormula.Context,
		}}
	}

	return tpl, nil
}

// decimalFromAny accepts the scalar forms YAML produces for amounts.
func decimalFromAny(v any) (decimal.Decimal, error) {
	switch value := v.(type) {
	case int:
		return decimal.NewFromInt(int64(value)), nil
	case int64:
		return decimal.NewFromInt(value), nil
	case float64:
		return decimal.NewFromFloat(value), nil
	case string:
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", value, err)
		}
		return parsed, nil
	case nil:
		return decimal.Decimal{}, fmt.Errorf("amount is required")
	default:
		return decimal.Decimal{}, fmt.Errorf("invalid amount type %T", v)
	}
}
