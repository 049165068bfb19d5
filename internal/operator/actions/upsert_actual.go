package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

// UpsertActual records a locked-in amount for one (date, template) pair,
// replacing any earlier record for the same pair. The template must exist.
type UpsertActual struct {
	Actual engine.ActualTransaction

	IAction
}

func (a *UpsertActual) Perform(ctx context.Context, writer *storage.Writer) error {
	tpl, err := writer.Template.FindByID(ctx, a.Actual.TemplateID)
	if err != nil {
		return err
	}
	if tpl == nil {
		return errors.New("template not found")
	}

	return writer.Actual.Upsert(ctx, a.Actual)
}
