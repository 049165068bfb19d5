package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

var ErrActualNotFound = errors.New("actual transaction not found")

// DeleteActual removes the recorded actual for one (date, template) pair.
type DeleteActual struct {
	Date       string
	TemplateID string

	IAction
}

func (a *DeleteActual) Perform(ctx context.Context, writer *storage.Writer) error {
	removed, err := writer.Actual.Delete(ctx, a.Date, a.TemplateID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrActualNotFound
	}
	return nil
}
