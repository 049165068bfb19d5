package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// The comparison functions are pure aggregations over scenario run results.
// Aligned inputs (identical period-date sequences) are the expected case;
// misaligned inputs get best-effort alignment by date lookup, with missing
// points for scenarios lacking that date.

// BalancePoint maps each scenario id to its ending balance on one date.
type BalancePoint struct {
	Date     string
	Balances map[string]decimal.Decimal
}

// Divergence is the date at which scenarios spread apart the most.
type Divergence struct {
	Date       string
	Difference decimal.Decimal
	Balances   map[string]decimal.Decimal
}

// ScenarioSummary totals one scenario's run, split into actual and projected
// portions.
type ScenarioSummary struct {
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetChange         decimal.Decimal
	ActualIncome      decimal.Decimal
	ActualExpenses    decimal.Decimal
	ProjectedIncome   decimal.Decimal
	ProjectedExpenses decimal.Decimal
	StartingBalance   decimal.Decimal
	EndingBalance     decimal.Decimal
}

// CompareEndingBalances aligns scenario ending balances by date. The date
// axis is the sorted union of all scenarios' period dates, so the output is
// deterministic regardless of map iteration order.
func CompareEndingBalances(results map[string][]PeriodSnapshot) []BalancePoint {
	dates := unionDates(results)

	points := make([]BalancePoint, 0, len(dates))
	for _, date := range dates {
		point := BalancePoint{Date: date, Balances: make(map[string]decimal.Decimal, len(results))}
		for scenarioID, snapshots := range results {
			for i := range snapshots {
				if snapshots[i].Date == date {
					point.Balances[scenarioID] = snapshots[i].EndingBalance
					break
				}
			}
		}
		points = append(points, point)
	}
	return points
}

// FindMaxDivergence returns the date where max(balance) - min(balance)
// across scenarios is largest. Ties keep the earliest date. With fewer than
// two balances at every date the zero Divergence is returned.
func FindMaxDivergence(results map[string][]PeriodSnapshot) Divergence {
	var max Divergence
	for _, point := range CompareEndingBalances(results) {
		if len(point.Balances) < 2 {
			continue
		}
		var lo, hi decimal.Decimal
		first := true
		for _, balance := range point.Balances {
			if first {
				lo, hi = balance, balance
				first = false
				continue
			}
			if balance.LessThan(lo) {
				lo = balance
			}
			if balance.GreaterThan(hi) {
				hi = balance
			}
		}
		diff := hi.Sub(lo)
		if diff.GreaterThan(max.Difference) {
			max = Divergence{Date: point.Date, Difference: diff, Balances: point.Balances}
		}
	}
	return max
}

// CalculateSummaries totals income, expenses and net change per scenario,
// split into actual and projected portions.
func CalculateSummaries(results map[string][]PeriodSnapshot) map[string]ScenarioSummary {
	summaries := make(map[string]ScenarioSummary, len(results))
	for scenarioID, snapshots := range results {
		var s ScenarioSummary
		for i := range snapshots {
			for _, tx := range snapshots[i].Transactions {
				if tx.Type == TypeIncome {
					s.TotalIncome = s.TotalIncome.Add(tx.Amount)
					if tx.IsActual {
						s.ActualIncome = s.ActualIncome.Add(tx.Amount)
					} else {
						s.ProjectedIncome = s.ProjectedIncome.Add(tx.Amount)
					}
				} else {
					abs := tx.Amount.Abs()
					s.TotalExpenses = s.TotalExpenses.Add(abs)
					if tx.IsActual {
						s.ActualExpenses = s.ActualExpenses.Add(abs)
					} else {
						s.ProjectedExpenses = s.ProjectedExpenses.Add(abs)
					}
				}
			}
		}
		s.NetChange = s.TotalIncome.Sub(s.TotalExpenses)
		if len(snapshots) > 0 {
			s.StartingBalance = snapshots[0].StartingBalance
			s.EndingBalance = snapshots[len(snapshots)-1].EndingBalance
		}
		summaries[scenarioID] = s
	}
	return summaries
}

func unionDates(results map[string][]PeriodSnapshot) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, snapshots := range results {
		for i := range snapshots {
			if _, dup := seen[snapshots[i].Date]; dup {
				continue
			}
			seen[snapshots[i].Date] = struct{}{}
			dates = append(dates, snapshots[i].Date)
		}
	}
	sort.Strings(dates)
	return dates
}
