package template

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"

	"github.com/carson-networks/cashflow-server/internal/engine"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Upsert replaces any stored template with the same id. The delete and
// insert ride the writer's transaction so the swap is atomic.
func (w *Writer) Upsert(ctx context.Context, tpl engine.TransactionTemplate) error {
	row, err := templateToRow(tpl)
	if err != nil {
		return err
	}

	deleteQuery := psql.Delete(
		dm.From("templates"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(row.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, deleteQuery); err != nil {
		return err
	}

	insertQuery := psql.Insert(
		im.Into("templates",
			"id", "name", "type", "amount", "frequency",
			"start_date", "end_date", "ends_on", "category", "tags"),
		im.Values(psql.Arg(
			row.ID, row.Name, row.Type, row.Amount, row.Frequency,
			row.StartDate, row.EndDate, row.EndsOn, row.Category, row.Tags)),
	)
	_, err = bob.Exec(ctx, w.tx, insertQuery)
	return err
}

// Delete removes a template and reports whether a row existed.
func (w *Writer) Delete(ctx context.Context, id string) (bool, error) {
	query := psql.Delete(
		dm.From("templates"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
