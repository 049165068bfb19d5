package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// actualKey identifies the one actual that can override a projection:
// a (date, template) pair.
type actualKey struct {
	date       string
	templateID string
}

// Calculator projects balances for scenarios over a date window. It holds
// the template set and the actuals index; scenario runs are pure functions
// over that state and share nothing with each other.
//
// The actuals index is the only mutable state. Callers must not AddActual or
// RemoveActual concurrently with an in-flight calculation.
type Calculator struct {
	templates []TransactionTemplate
	actuals   []ActualTransaction
	index     map[actualKey]ActualTransaction

	dependency DependencyRule
}

// NewCalculator validates the inputs and builds the actuals index. A later
// actual for the same (date, template) pair replaces the earlier one.
func NewCalculator(templates []TransactionTemplate, actuals []ActualTransaction) (*Calculator, error) {
	c := &Calculator{}
	if err := c.SetTemplates(templates); err != nil {
		return nil, err
	}
	c.index = make(map[actualKey]ActualTransaction, len(actuals))
	for i := range actuals {
		if err := actuals[i].Validate(); err != nil {
			return nil, err
		}
		c.actuals = append(c.actuals, actuals[i])
		c.index[actualKey{actuals[i].Date, actuals[i].TemplateID}] = actuals[i]
	}
	return c, nil
}

// SetDependencyRule installs an optional per-date post-filter over the
// active template set.
func (c *Calculator) SetDependencyRule(rule DependencyRule) {
	c.dependency = rule
}

// SetTemplates validates and replaces the template set. Template ids must be
// unique.
func (c *Calculator) SetTemplates(templates []TransactionTemplate) error {
	seen := make(map[string]struct{}, len(templates))
	for i := range templates {
		if err := templates[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[templates[i].ID]; dup {
			return fmt.Errorf("duplicate template id %q", templates[i].ID)
		}
		seen[templates[i].ID] = struct{}{}
	}
	c.templates = append([]TransactionTemplate(nil), templates...)
	return nil
}

// Templates returns a copy of the template set.
func (c *Calculator) Templates() []TransactionTemplate {
	return append([]TransactionTemplate(nil), c.templates...)
}

// Template returns the template with the given id, or nil.
func (c *Calculator) Template(id string) *TransactionTemplate {
	for i := range c.templates {
		if c.templates[i].ID == id {
			tpl := c.templates[i]
			return &tpl
		}
	}
	return nil
}

// CalculateScenario produces the ordered period snapshots for one scenario
// over [startDate, endDate]. The first period starts from initialBalance;
// every later period starts from the previous period's ending balance.
func (c *Calculator) CalculateScenario(scenario Scenario, startDate, endDate string, initialBalance decimal.Decimal) ([]PeriodSnapshot, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	start, err := schedule.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(scenario)
	dates, err := c.periodDates(start, end)
	if err != nil {
		return nil, err
	}

	snapshots := make([]PeriodSnapshot, 0, len(dates))
	balance := initialBalance
	for _, date := range dates {
		snapshot, err := c.calculatePeriod(scenario, resolver, date, balance)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
		balance = snapshot.EndingBalance
	}
	return snapshots, nil
}

// CalculateMultipleScenarios runs each scenario over the same window and
// initial balance. Runs are independent; a failure in one aborts the whole
// call so a partial map is never returned.
func (c *Calculator) CalculateMultipleScenarios(scenarios []Scenario, startDate, endDate string, initialBalance decimal.Decimal) (map[string][]PeriodSnapshot, error) {
	results := make(map[string][]PeriodSnapshot, len(scenarios))
	for _, scenario := range scenarios {
		snapshots, err := c.CalculateScenario(scenario, startDate, endDate, initialBalance)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.ID, err)
		}
		results[scenario.ID] = snapshots
	}
	return results, nil
}

// AddActual records or replaces an actual. The list and the index are
// updated together; snapshots already produced are unaffected.
func (c *Calculator) AddActual(actual ActualTransaction) error {
	if err := actual.Validate(); err != nil {
		return err
	}
	key := actualKey{actual.Date, actual.TemplateID}
	if _, exists := c.index[key]; exists {
		c.removeFromList(actual.Date, actual.TemplateID)
	}
	c.actuals = append(c.actuals, actual)
	c.index[key] = actual
	return nil
}

// RemoveActual deletes the actual for (date, templateID). It reports whether
// one was present.
func (c *Calculator) RemoveActual(date, templateID string) bool {
	key := actualKey{date, templateID}
	if _, exists := c.index[key]; !exists {
		return false
	}
	delete(c.index, key)
	c.removeFromList(date, templateID)
	return true
}

// ActualsForDate returns the actuals recorded on one date.
func (c *Calculator) ActualsForDate(date string) []ActualTransaction {
	var out []ActualTransaction
	for _, a := range c.actuals {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// ActualsForRange returns the actuals within [startDate, endDate] inclusive.
func (c *Calculator) ActualsForRange(startDate, endDate string) ([]ActualTransaction, error) {
	start, err := schedule.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	var out []ActualTransaction
	for _, a := range c.actuals {
		d, err := schedule.ParseDate(a.Date)
		if err != nil {
			return nil, err
		}
		if schedule.InRange(d, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *Calculator) removeFromList(date, templateID string) {
	kept := c.actuals[:0]
	for _, a := range c.actuals {
		if !(a.Date == date && a.TemplateID == templateID) {
			kept = append(kept, a)
		}
	}
	c.actuals = kept
}

// periodDates builds the period grid: the sorted, deduplicated union of
// every template's own schedule within the window. The scenario allow-list
// is deliberately ignored here so the grid is identical across scenarios
// run over the same template set.
func (c *Calculator) periodDates(start, end time.Time) ([]time.Time, error) {
	seen := make(map[string]struct{})
	var dates []time.Time

	for i := range c.templates {
		tpl := &c.templates[i]

		anchor := start
		if tpl.StartDate != "" {
			var err error
			anchor, err = schedule.ParseDate(tpl.StartDate)
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", tpl.ID, err)
			}
		}
		localEnd := end
		if tpl.EndDate != "" {
			tplEnd, err := schedule.ParseDate(tpl.EndDate)
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", tpl.ID, err)
			}
			if tplEnd.Before(localEnd) {
				localEnd = tplEnd
			}
		}

		for _, d := range schedule.Dates(tpl.Frequency, anchor, localEnd) {
			key := schedule.FormatDate(d)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			dates = append(dates, d)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (c *Calculator) calculatePeriod(scenario Scenario, resolver *Resolver, date time.Time, startingBalance decimal.Decimal) (PeriodSnapshot, error) {
	dateStr := schedule.FormatDate(date)

	active, err := resolver.ActiveTemplates(c.templates, date)
	if err != nil {
		return PeriodSnapshot{}, err
	}
	if c.dependency != nil {
		active = c.dependency(active, dateStr)
	}

	transactions := make([]TransactionInstance, 0, len(active))
	balance := startingBalance

	for i := range active {
		tpl := &active[i]
		instance := TransactionInstance{
			TemplateID: tpl.ID,
			Name:       tpl.Name,
			Type:       tpl.Type,
			Category:   tpl.Category,
			Tags:       tpl.Tags,
		}

		if actual, ok := c.index[actualKey{dateStr, tpl.ID}]; ok {
			// Locked-in history wins verbatim, sign included.
			instance.Amount = actual.Amount
			instance.IsActual = true
			instance.Notes = actual.Notes
		} else {
			amount, err := resolver.Amount(tpl, date)
			if err != nil {
				return PeriodSnapshot{}, err
			}
			instance.Amount = amount
		}

		transactions = append(transactions, instance)
		balance = balance.Add(instance.Amount)
	}

	return PeriodSnapshot{
		ScenarioID:      scenario.ID,
		Date:            dateStr,
		StartingBalance: startingBalance,
		Transactions:    transactions,
		EndingBalance:   balance,
	}, nil
}
