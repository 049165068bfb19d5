package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/cashflow-server/internal/schedule"
)

// runTwoScenarios runs a baseline scenario and one that adds an extra
// recurring income on top of it.
func runTwoScenarios(t *testing.T) map[string][]PeriodSnapshot {
	t.Helper()
	sideGig := TransactionTemplate{
		ID:        "side_gig",
		Name:      "Side gig",
		Type:      TypeIncome,
		Amount:    LiteralAmount(dec("400")),
		Frequency: schedule.FrequencyBiWeekly,
		StartDate: "2025-01-01",
	}
	calc := newTestCalculator(t, []TransactionTemplate{salaryTemplate(), rentTemplate(), sideGig}, nil)

	base := Scenario{ID: "base", Name: "Base", EnabledTransactions: []string{"salary", "rent"}}
	hustle := Scenario{ID: "hustle", Name: "Hustle", EnabledTransactions: []string{"salary", "rent", "side_gig"}}

	results, err := calc.CalculateMultipleScenarios([]Scenario{base, hustle}, "2025-01-01", "2025-03-31", dec("1000"))
	require.NoError(t, err)
	return results
}

func TestCompareEndingBalances_Aligned(t *testing.T) {
	results := runTwoScenarios(t)
	points := CompareEndingBalances(results)
	require.NotEmpty(t, points)

	require.Equal(t, len(results["base"]), len(points), "aligned runs share the date axis")
	for i, point := range points {
		assert.Equal(t, results["base"][i].Date, point.Date)
		require.Contains(t, point.Balances, "base")
		require.Contains(t, point.Balances, "hustle")
	}

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Date, points[i-1].Date, "points sorted by date")
	}
}

func TestCompareEndingBalances_MisalignedBestEffort(t *testing.T) {
	results := map[string][]PeriodSnapshot{
		"a": {
			{ScenarioID: "a", Date: "2025-01-01", EndingBalance: dec("10")},
			{ScenarioID: "a", Date: "2025-01-15", EndingBalance: dec("20")},
		},
		"b": {
			{ScenarioID: "b", Date: "2025-01-15", EndingBalance: dec("5")},
		},
	}
	points := CompareEndingBalances(results)
	require.Len(t, points, 2)

	assert.NotContains(t, points[0].Balances, "b", "missing point for the scenario lacking that date")
	assert.True(t, points[1].Balances["a"].Equal(dec("20")))
	assert.True(t, points[1].Balances["b"].Equal(dec("5")))
}

func TestFindMaxDivergence(t *testing.T) {
	results := runTwoScenarios(t)
	div := FindMaxDivergence(results)

	assert.True(t, div.Difference.GreaterThan(decimal.Zero))
	assert.NotEmpty(t, div.Date)

	// The gap only widens as the extra income keeps firing, so the max is
	// at the last period.
	last := results["base"][len(results["base"])-1]
	assert.Equal(t, last.Date, div.Date)

	// And the richer scenario dominates at every date.
	for i := range results["base"] {
		assert.True(t,
			results["hustle"][i].EndingBalance.GreaterThanOrEqual(results["base"][i].EndingBalance),
			"hustle must never trail base at %s", results["base"][i].Date)
	}
}

func TestFindMaxDivergence_TieKeepsEarliestDate(t *testing.T) {
	results := map[string][]PeriodSnapshot{
		"a": {
			{Date: "2025-01-01", EndingBalance: dec("0")},
			{Date: "2025-01-15", EndingBalance: dec("0")},
		},
		"b": {
			{Date: "2025-01-01", EndingBalance: dec("100")},
			{Date: "2025-01-15", EndingBalance: dec("100")},
		},
	}
	div := FindMaxDivergence(results)
	assert.Equal(t, "2025-01-01", div.Date)
	assert.True(t, div.Difference.Equal(dec("100")))
}

func TestFindMaxDivergence_SingleScenario(t *testing.T) {
	results := map[string][]PeriodSnapshot{
		"only": {{Date: "2025-01-01", EndingBalance: dec("42")}},
	}
	div := FindMaxDivergence(results)
	assert.Empty(t, div.Date)
	assert.True(t, div.Difference.IsZero())
}

func TestCalculateSummaries(t *testing.T) {
	actual := ActualTransaction{Date: "2025-01-15", TemplateID: "salary", Amount: dec("2600")}
	calc := newTestCalculator(t, []TransactionTemplate{salaryTemplate(), rentTemplate()}, []ActualTransaction{actual})

	scenario := Scenario{ID: "base", Name: "Base", EnabledTransactions: []string{"salary", "rent"}}
	snapshots, err := calc.CalculateScenario(scenario, "2025-01-01", "2025-01-31", dec("1000"))
	require.NoError(t, err)

	summaries := CalculateSummaries(map[string][]PeriodSnapshot{"base": snapshots})
	s, ok := summaries["base"]
	require.True(t, ok)

	// Salary: projected 2500 on the 1st and 29th, actual 2600 on the 15th.
	assert.True(t, s.TotalIncome.Equal(dec("7600")))
	assert.True(t, s.ActualIncome.Equal(dec("2600")))
	assert.True(t, s.ProjectedIncome.Equal(dec("5000")))

	// Rent: 900 on the 1st and 15th, reported as positive totals.
	assert.True(t, s.TotalExpenses.Equal(dec("1800")))
	assert.True(t, s.ActualExpenses.IsZero())
	assert.True(t, s.ProjectedExpenses.Equal(dec("1800")))

	assert.True(t, s.NetChange.Equal(dec("5800")))
	assert.True(t, s.StartingBalance.Equal(dec("1000")))
	assert.True(t, s.EndingBalance.Equal(dec("6800")))
}

func TestCalculateSummaries_EmptyRun(t *testing.T) {
	summaries := CalculateSummaries(map[string][]PeriodSnapshot{"empty": {}})
	s := summaries["empty"]
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.StartingBalance.IsZero())
	assert.True(t, s.EndingBalance.IsZero())
}

func TestPeriodSnapshot_Totals(t *testing.T) {
	snapshot := PeriodSnapshot{
		Transactions: []TransactionInstance{
			{Type: TypeIncome, Amount: dec("2500")},
			{Type: TypeExpense, Amount: dec("-900")},
			{Type: TypeExpense, Amount: dec("-100")},
		},
	}
	assert.True(t, snapshot.TotalIncome().Equal(dec("2500")))
	assert.True(t, snapshot.TotalExpenses().Equal(dec("1000")))
	assert.True(t, snapshot.NetChange().Equal(dec("1500")))
}
