package actual

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/mods"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

var columns = []any{"id", "date", "template_id", "amount", "notes", "created_at"}

// ActualFilter narrows a listing to an inclusive date range. Empty bounds
// are open.
type ActualFilter struct {
	StartDate string
	EndDate   string
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns actuals matching the filter ordered by date. Nil filter
// returns all.
func (r *Reader) List(ctx context.Context, filter *ActualFilter) ([]engine.ActualTransaction, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter != nil {
		var whereMods []mods.Where[*dialect.SelectQuery]
		if filter.StartDate != "" {
			whereMods = append(whereMods, sm.Where(psql.Quote("date").GTE(psql.Arg(filter.StartDate))))
		}
		if filter.EndDate != "" {
			whereMods = append(whereMods, sm.Where(psql.Quote("date").LTE(psql.Arg(filter.EndDate))))
		}
		if len(whereMods) == 1 {
			queryMods = append(queryMods, whereMods[0])
		} else if len(whereMods) > 1 {
			queryMods = append(queryMods, psql.WhereAnd(whereMods...))
		}
	}
	queryMods = append(queryMods,
		sm.Columns(columns...),
		sm.From("actuals"),
		sm.OrderBy("date").Asc(),
		sm.OrderBy("template_id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[actualRow]())
	if err != nil {
		return nil, err
	}

	result := make([]engine.ActualTransaction, len(rows))
	for i, row := range rows {
		result[i] = rowToActual(row)
	}
	return result, nil
}
