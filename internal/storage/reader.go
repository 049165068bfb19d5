package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/cashflow-server/internal/storage/actual"
	"github.com/carson-networks/cashflow-server/internal/storage/scenario"
	"github.com/carson-networks/cashflow-server/internal/storage/template"
)

type Reader struct {
	Templates *template.Reader
	Scenarios *scenario.Reader
	Actuals   *actual.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Templates: template.NewReader(exec),
		Scenarios: scenario.NewReader(exec),
		Actuals:   actual.NewReader(exec),
	}
}
