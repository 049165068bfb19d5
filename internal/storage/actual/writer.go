package actual

import (
	"context"

	"github.com/gofrs/uuid/v5"
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

// Upsert records an actual for its (date, template_id) pair, replacing any
// earlier record for the same pair.
func (w *Writer) Upsert(ctx context.Context, act engine.ActualTransaction) error {
	deleteQuery := psql.Delete(
		dm.From("actuals"),
		dm.Where(psql.Quote("date").EQ(psql.Arg(act.Date))),
		dm.Where(psql.Quote("template_id").EQ(psql.Arg(act.TemplateID))),
	)
	if _, err := bob.Exec(ctx, w.tx, deleteQuery); err != nil {
		return err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	insertQuery := psql.Insert(
		im.Into("actuals", "id", "date", "template_id", "amount", "notes"),
		im.Values(psql.Arg(id, act.Date, act.TemplateID, act.Amount, act.Notes)),
	)
	_, err = bob.Exec(ctx, w.tx, insertQuery)
	return err
}

// Delete removes the actual for a (date, template_id) pair and reports
// whether a row existed.
func (w *Writer) Delete(ctx context.Context, date, templateID string) (bool, error) {
	query := psql.Delete(
		dm.From("actuals"),
		dm.Where(psql.Quote("date").EQ(psql.Arg(date))),
		dm.Where(psql.Quote("template_id").EQ(psql.Arg(templateID))),
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
