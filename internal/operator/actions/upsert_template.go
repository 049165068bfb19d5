package actions

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

// UpsertTemplate stores a transaction template, replacing any stored
// template with the same id.
type UpsertTemplate struct {
	Template engine.TransactionTemplate

	IAction
}

func (a *UpsertTemplate) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := a.Template.Validate(); err != nil {
		return err
	}
	return writer.Template.Upsert(ctx, a.Template)
}
