package service

import (
	"context"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/storage"
	"github.com/carson-networks/cashflow-server/internal/storage/actual"
)

// Repository is the read surface the services run against.
// This abstraction allows swapping the implementation without changing callers.
//
//go:generate mockery --name Repository --output mock_Repository.go
type Repository interface {
	ListTemplates(ctx context.Context) ([]engine.TransactionTemplate, error)
	FindTemplate(ctx context.Context, id string) (*engine.TransactionTemplate, error)
	ListScenarios(ctx context.Context) ([]engine.Scenario, error)
	FindScenario(ctx context.Context, id string) (*engine.Scenario, error)
	ListActuals(ctx context.Context, filter *actual.ActualFilter) ([]engine.ActualTransaction, error)
}

type storageRepository struct {
	storage *storage.Storage
}

// NewStorageRepository returns a Repository backed by the Postgres storage.
func NewStorageRepository(store *storage.Storage) Repository {
	return &storageRepository{storage: store}
}

func (r *storageRepository) ListTemplates(ctx context.Context) ([]engine.TransactionTemplate, error) {
	return r.storage.Read().Templates.List(ctx)
}

func (r *storageRepository) FindTemplate(ctx context.Context, id string) (*engine.TransactionTemplate, error) {
	return r.storage.Read().Templates.FindByID(ctx, id)
}

func (r *storageRepository) ListScenarios(ctx context.Context) ([]engine.Scenario, error) {
	return r.storage.Read().Scenarios.List(ctx)
}

func (r *storageRepository) FindScenario(ctx context.Context, id string) (*engine.Scenario, error) {
	return r.storage.Read().Scenarios.FindByID(ctx, id)
}

func (r *storageRepository) ListActuals(ctx context.Context, filter *actual.ActualFilter) ([]engine.ActualTransaction, error) {
	return r.storage.Read().Actuals.List(ctx, filter)
}
