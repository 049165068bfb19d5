package scenario

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

var columns = []any{"id", "name", "enabled_transactions", "config", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns every stored scenario ordered by name.
func (r *Reader) List(ctx context.Context) ([]engine.Scenario, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("scenarios"),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[scenarioRow]())
	if err != nil {
		return nil, err
	}

	result := make([]engine.Scenario, 0, len(rows))
	for _, row := range rows {
		sc, err := rowToScenario(row)
		if err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, nil
}

// FindByID returns the scenario with the given id, or nil when absent.
func (r *Reader) FindByID(ctx context.Context, id string) (*engine.Scenario, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("scenarios"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[scenarioRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sc, err := rowToScenario(row)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}
