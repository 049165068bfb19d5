package template

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

var columns = []any{
	"id", "name", "type", "amount", "frequency",
	"start_date", "end_date", "ends_on", "category", "tags", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns every stored template ordered by name.
func (r *Reader) List(ctx context.Context) ([]engine.TransactionTemplate, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("templates"),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[templateRow]())
	if err != nil {
		return nil, err
	}

	result := make([]engine.TransactionTemplate, 0, len(rows))
	for _, row := range rows {
		tpl, err := rowToTemplate(row)
		if err != nil {
			return nil, err
		}
		result = append(result, tpl)
	}
	return result, nil
}

// FindByID returns the template with the given id, or nil when absent.
func (r *Reader) FindByID(ctx context.Context, id string) (*engine.TransactionTemplate, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("templates"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[templateRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	tpl, err := rowToTemplate(row)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
