package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/cashflow-server/internal/schedule"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := schedule.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestResolver_Enabled(t *testing.T) {
	r := NewResolver(scenarioWith("salary", "rent"))
	assert.True(t, r.Enabled("salary"))
	assert.False(t, r.Enabled("mortgage"))
}

func TestIsActive_Window(t *testing.T) {
	tpl := salaryTemplate()
	tpl.StartDate = "2025-02-01"
	tpl.EndDate = "2025-04-30"
	r := NewResolver(scenarioWith("salary"))

	for date, want := range map[string]bool{
		"2025-01-31": false,
		"2025-02-01": true,
		"2025-04-30": true, // endDate is inclusive
		"2025-05-01": false,
	} {
		active, err := r.IsActive(&tpl, mustDate(t, date))
		require.NoError(t, err)
		assert.Equal(t, want, active, date)
	}
}

func TestIsActive_EndsOnExclusiveAfter(t *testing.T) {
	tpl := rentTemplate()
	tpl.EndsOn = &DateSpec{Literal: "2025-03-01"}
	r := NewResolver(scenarioWith("rent"))

	active, err := r.IsActive(&tpl, mustDate(t, "2025-03-01"))
	require.NoError(t, err)
	assert.True(t, active, "present through endsOn")

	active, err = r.IsActive(&tpl, mustDate(t, "2025-03-02"))
	require.NoError(t, err)
	assert.False(t, active, "absent the instant after")
}

func TestIsActive_OncePinnedToStartDate(t *testing.T) {
	tpl := TransactionTemplate{
		ID: "bonus", Name: "Bonus", Type: TypeIncome,
		Amount:    LiteralAmount(dec("100")),
		Frequency: schedule.FrequencyOnce,
		StartDate: "2025-06-15",
	}
	r := NewResolver(scenarioWith("bonus"))

	active, err := r.IsActive(&tpl, mustDate(t, "2025-06-15"))
	require.NoError(t, err)
	assert.True(t, active)

	active, err = r.IsActive(&tpl, mustDate(t, "2025-06-16"))
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActive_OnceWithoutStartDate(t *testing.T) {
	tpl := TransactionTemplate{
		ID: "bonus", Name: "Bonus", Type: TypeIncome,
		Amount:    LiteralAmount(dec("100")),
		Frequency: schedule.FrequencyOnce,
	}
	r := NewResolver(scenarioWith("bonus"))

	active, err := r.IsActive(&tpl, mustDate(t, "2025-06-15"))
	require.NoError(t, err)
	assert.False(t, active)
}

func TestOccurs_EndsOnFormulaGetsDateContext(t *testing.T) {
	// The endsOn formula sees the current date as a context variable, so a
	// date-dependent bound is expressible.
	tpl := rentTemplate()
	tpl.EndsOn = &DateSpec{Formula: &Formula{Expr: "conditionalByDate(date, '2025-02-01', '2025-12-31', '2025-02-15')"}}
	r := NewResolver(scenarioWith("rent"))

	occurs, err := r.Occurs(&tpl, mustDate(t, "2025-01-15"))
	require.NoError(t, err)
	assert.True(t, occurs)

	occurs, err = r.Occurs(&tpl, mustDate(t, "2025-03-01"))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccurs_EndsOnFormulaError(t *testing.T) {
	tpl := rentTemplate()
	tpl.EndsOn = &DateSpec{Formula: &Formula{Expr: "CONFIG.Missing_Date"}}
	r := NewResolver(scenarioWith("rent"))

	_, err := r.Occurs(&tpl, mustDate(t, "2025-01-15"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing_Date")
}

func TestOccurs_WeeklyNeedsStartDate(t *testing.T) {
	tpl := salaryTemplate()
	tpl.Frequency = schedule.FrequencyWeekly
	tpl.StartDate = ""
	r := NewResolver(scenarioWith("salary"))

	occurs, err := r.Occurs(&tpl, mustDate(t, "2025-01-08"))
	require.NoError(t, err)
	assert.False(t, occurs)
}

func TestOccurs_MonthlyNeedsNoStartDate(t *testing.T) {
	tpl := rentTemplate()
	tpl.StartDate = ""
	r := NewResolver(scenarioWith("rent"))

	occurs, err := r.Occurs(&tpl, mustDate(t, "2025-04-15"))
	require.NoError(t, err)
	assert.True(t, occurs)
}

func TestAmount_FormulaWithExtraContext(t *testing.T) {
	tpl := TransactionTemplate{
		ID: "consulting", Name: "Consulting", Type: TypeIncome,
		Amount: Amount{Formula: &Formula{
			Expr:    "rate * hours",
			Context: map[string]any{"rate": 80, "hours": 10},
		}},
		Frequency: schedule.FrequencyMonthly,
		StartDate: "2025-01-01",
	}
	r := NewResolver(scenarioWith("consulting"))

	amount, err := r.Amount(&tpl, mustDate(t, "2025-01-15"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("800")))
}

func TestAmount_NegativeIncomeKeptVerbatim(t *testing.T) {
	// Sign normalization is type-driven; a negative income (a clawback)
	// passes through untouched.
	tpl := salaryTemplate()
	tpl.Amount = LiteralAmount(dec("-200"))
	r := NewResolver(scenarioWith("salary"))

	amount, err := r.Amount(&tpl, mustDate(t, "2025-01-01"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("-200")))
}

func TestAmount_NegativeExpenseNotDoubleNegated(t *testing.T) {
	tpl := rentTemplate()
	tpl.Amount = LiteralAmount(dec("-900"))
	r := NewResolver(scenarioWith("rent"))

	amount, err := r.Amount(&tpl, mustDate(t, "2025-01-01"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("-900")), "already-negative expense stays as is")
}

func TestScenario_ConfigValue(t *testing.T) {
	s := Scenario{ID: "s", Name: "S", Config: map[string]any{"Rate": 4}}
	assert.Equal(t, 4, s.ConfigValue("Rate", 0))
	assert.Equal(t, 0, s.ConfigValue("Missing", 0))
}
