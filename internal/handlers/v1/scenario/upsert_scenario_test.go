package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func newUpsertTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewUpsertScenarioHandler(op).Register(api)
	return api
}

func TestHTTP_UpsertScenario_Success(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		upsert, ok := a.(*actions.UpsertScenario)
		return ok &&
			upsert.Scenario.ID == "promotion" &&
			upsert.Scenario.Config["Raise"] == 0.1
	})).Return(nil)

	resp := newUpsertTestAPI(t, mockOp).Post("/v1/scenario", Scenario{
		ID:                  "promotion",
		Name:                "Promotion",
		EnabledTransactions: []string{"salary", "rent"},
		Config:              map[string]any{"Raise": 0.1},
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_UpsertScenario_MissingName(t *testing.T) {
	mockOp := new(mockActionProcessor)

	resp := newUpsertTestAPI(t, mockOp).Post("/v1/scenario", map[string]any{
		"id": "promotion",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_UpsertScenario_OperatorError(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.Anything).Return(errors.New("database unavailable"))

	resp := newUpsertTestAPI(t, mockOp).Post("/v1/scenario", Scenario{
		ID:   "promotion",
		Name: "Promotion",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockOp.AssertExpectations(t)
}

// -- list tests --

type mockScenarioLister struct {
	mock.Mock
}

func (m *mockScenarioLister) ListScenarios(ctx context.Context) ([]engine.Scenario, error) {
	args := m.Called(ctx)
	scs, _ := args.Get(0).([]engine.Scenario)
	return scs, args.Error(1)
}

func newListTestAPI(t *testing.T, svc scenarioLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListScenariosHandler(svc).Register(api)
	return api
}

func TestHTTP_ListScenarios_Success(t *testing.T) {
	mockSvc := new(mockScenarioLister)
	mockSvc.On("ListScenarios", mock.Anything).Return([]engine.Scenario{
		{
			ID:                  "base",
			Name:                "Base",
			EnabledTransactions: []string{"salary", "rent"},
		},
	}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/scenarios")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListScenariosResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Scenarios, 1)
	assert.Equal(t, "base", body.Scenarios[0].ID)
	assert.Equal(t, []string{"salary", "rent"}, body.Scenarios[0].EnabledTransactions)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListScenarios_ServiceError(t *testing.T) {
	mockSvc := new(mockScenarioLister)
	mockSvc.On("ListScenarios", mock.Anything).
		Return(([]engine.Scenario)(nil), errors.New("database unavailable"))

	resp := newListTestAPI(t, mockSvc).Get("/v1/scenarios")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
