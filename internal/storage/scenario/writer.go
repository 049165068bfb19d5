package scenario

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

// Upsert replaces any stored scenario with the same id.
func (w *Writer) Upsert(ctx context.Context, sc engine.Scenario) error {
	row, err := scenarioToRow(sc)
	if err != nil {
		return err
	}

	deleteQuery := psql.Delete(
		dm.From("scenarios"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(row.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, deleteQuery); err != nil {
		return err
	}

	insertQuery := psql.Insert(
		im.Into("scenarios", "id", "name", "enabled_transactions", "config"),
		im.Values(psql.Arg(row.ID, row.Name, row.EnabledTransactions, row.Config)),
	)
	_, err = bob.Exec(ctx, w.tx, insertQuery)
	return err
}

// Delete removes a scenario and reports whether a row existed.
func (w *Writer) Delete(ctx context.Context, id string) (bool, error) {
	query := psql.Delete(
		dm.From("scenarios"),
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
