package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/cashflow-server/internal/storage/actual"
	"github.com/carson-networks/cashflow-server/internal/storage/scenario"
	"github.com/carson-networks/cashflow-server/internal/storage/template"
)

type Writer struct {
	tx       bob.Tx
	Template *template.Writer
	Scenario *scenario.Writer
	Actual   *actual.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:       tx,
		Template: template.NewWriter(tx),
		Scenario: scenario.NewWriter(tx),
		Actual:   actual.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
