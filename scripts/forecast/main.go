// Command forecast runs cashflow projections offline from a plan file, with
// no server or database involved.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/plan"
)

var (
	header = color.New(color.FgGreen, color.Bold)
	label  = color.New(color.FgBlue)
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
)

func main() {
	app := &cli.App{
		Name:  "forecast",
		Usage: "run cashflow projections from a plan file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "plan",
				Aliases: []string{"p"},
				Value:   "plan.yaml",
				Usage:   "path to the plan YAML file",
			},
			&cli.StringSliceFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "scenario id to run (repeatable, defaults to all)",
			},
			&cli.StringFlag{
				Name:     "start",
				Required: true,
				Usage:    "inclusive window start, YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:     "end",
				Required: true,
				Usage:    "inclusive window end, YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "balance",
				Value: "0",
				Usage: "decimal opening balance",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "dump raw snapshots after the tables",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("forecast")
	}
}

func run(c *cli.Context) error {
	loaded, err := plan.Load(c.String("plan"))
	if err != nil {
		return err
	}

	balance, err := decimal.NewFromString(c.String("balance"))
	if err != nil {
		return fmt.Errorf("invalid balance: %w", err)
	}

	scenarios, err := selectScenarios(loaded.Scenarios, c.StringSlice("scenario"))
	if err != nil {
		return err
	}

	calc, err := engine.NewCalculator(loaded.Templates, loaded.Actuals)
	if err != nil {
		return err
	}

	results, err := calc.CalculateMultipleScenarios(scenarios, c.String("start"), c.String("end"), balance)
	if err != nil {
		return err
	}

	scenarioIDs := make([]string, 0, len(results))
	for id := range results {
		scenarioIDs = append(scenarioIDs, id)
	}
	sort.Strings(scenarioIDs)

	for _, id := range scenarioIDs {
		printScenario(id, results[id])
	}

	if len(results) > 1 {
		printComparison(results)
	}

	if c.Bool("debug") {
		spew.Dump(results)
	}

	return nil
}

func selectScenarios(all []engine.Scenario, ids []string) ([]engine.Scenario, error) {
	if len(ids) == 0 {
		if len(all) == 0 {
			return nil, fmt.Errorf("plan has no scenarios")
		}
		return all, nil
	}

	byID := make(map[string]engine.Scenario, len(all))
	for _, sc := range all {
		byID[sc.ID] = sc
	}

	selected := make([]engine.Scenario, 0, len(ids))
	for _, id := range ids {
		sc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("scenario %q not in plan", id)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}

func printScenario(id string, snapshots []engine.PeriodSnapshot) {
	header.Printf("\nScenario: %s\n", id)
	label.Printf("%-12s %12s %12s %12s %14s\n", "Date", "Income", "Expenses", "Net", "Balance")

	for _, snapshot := range snapshots {
		fmt.Printf("%-12s %12s %12s %12s ",
			snapshot.Date,
			snapshot.TotalIncome().StringFixed(2),
			snapshot.TotalExpenses().StringFixed(2),
			snapshot.NetChange().StringFixed(2),
		)
		printBalance(snapshot.EndingBalance)
	}

	if len(snapshots) > 0 {
		last := snapshots[len(snapshots)-1]
		fmt.Printf("%-12s %38s ", "", "ending balance:")
		printBalance(last.EndingBalance)
	}
}

func printBalance(balance decimal.Decimal) {
	if balance.IsNegative() {
		red.Printf("%14s\n", balance.StringFixed(2))
		return
	}
	green.Printf("%14s\n", balance.StringFixed(2))
}

func printComparison(results map[string][]engine.PeriodSnapshot) {
	header.Printf("\nComparison\n")

	divergence := engine.FindMaxDivergence(results)
	if divergence.Date != "" {
		yellow.Printf("max divergence %s on %s\n", divergence.Difference.StringFixed(2), divergence.Date)
	}

	summaries := engine.CalculateSummaries(results)
	scenarioIDs := make([]string, 0, len(summaries))
	for id := range summaries {
		scenarioIDs = append(scenarioIDs, id)
	}
	sort.Strings(scenarioIDs)

	label.Printf("%-16s %12s %12s %12s %14s\n", "Scenario", "Income", "Expenses", "Net", "Ending")
	for _, id := range scenarioIDs {
		summary := summaries[id]
		fmt.Printf("%-16s %12s %12s %12s ",
			id,
			summary.TotalIncome.StringFixed(2),
			summary.TotalExpenses.StringFixed(2),
			summary.NetChange.StringFixed(2),
		)
		printBalance(summary.EndingBalance)
	}
}
