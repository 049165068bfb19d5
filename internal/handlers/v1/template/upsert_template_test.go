package template

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/engine"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
	"github.com/carson-networks/cashflow-server/internal/schedule"
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
	NewUpsertTemplateHandler(op).Register(api)
	return api
}

// -- templateToEngine unit tests --

func TestTemplateToEngine_LiteralAmount(t *testing.T) {
	tpl, err := templateToEngine(Template{
		ID:        "rent",
		Name:      "Rent",
		Type:      "expense",
		Amount:    "900",
		Frequency: "monthly",
		Category:  "housing",
		Tags:      []string{"fixed"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "rent", tpl.ID)
	assert.Equal(t, engine.TypeExpense, tpl.Type)
	assert.Equal(t, schedule.FrequencyMonthly, tpl.Frequency)
	assert.NotNil(t, tpl.Amount.Literal)
	assert.True(t, tpl.Amount.Literal.Equal(decimal.RequireFromString("900")))
}

func TestTemplateToEngine_FormulaAmountAndEndsOn(t *testing.T) {
	tpl, err := templateToEngine(Template{
		ID:   "salary",
		Name: "Salary",
		Type: "income",
		AmountFormula: &Formula{
			Formula: "base * (1 + CONFIG.Raise)",
			Context: map[string]any{"base": 2500},
		},
		Frequency: "bi-weekly",
		StartDate: "2025-01-01",
		EndsOnFormula: &Formula{
			Formula: "CONFIG.LastDay",
		},
	})

	assert.NoError(t, err)
	assert.Nil(t, tpl.Amount.Literal)
	assert.Equal(t, "base * (1 + CONFIG.Raise)", tpl.Amount.Formula.Expr)
	assert.NotNil(t, tpl.EndsOn)
	assert.Equal(t, "CONFIG.LastDay", tpl.EndsOn.Formula.Expr)
}

func TestTemplateToEngine_MissingAmountRejected(t *testing.T) {
	_, err := templateToEngine(Template{
		ID:        "broken",
		Name:      "Broken",
		Type:      "income",
		Frequency: "monthly",
	})

	assert.Error(t, err)
}

func TestTemplateToEngine_InvalidAmount(t *testing.T) {
	_, err := templateToEngine(Template{
		ID:        "rent",
		Name:      "Rent",
		Type:      "expense",
		Amount:    "lots",
		Frequency: "monthly",
	})

	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_UpsertTemplate_Success(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		upsert, ok := a.(*actions.UpsertTemplate)
		return ok && upsert.Template.ID == "rent"
	})).Return(nil)

	resp := newUpsertTestAPI(t, mockOp).Post("/v1/template", Template{
		ID:        "rent",
		Name:      "Rent",
		Type:      "expense",
		Amount:    "900",
		Frequency: "monthly",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_UpsertTemplate_InvalidBody(t *testing.T) {
	mockOp := new(mockActionProcessor)

	resp := newUpsertTestAPI(t, mockOp).Post("/v1/template", Template{
		ID:        "rent",
		Name:      "Rent",
		Type:      "expense",
		Amount:    "lots",
		Frequency: "monthly",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_UpsertTemplate_OperatorError(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.Anything).Return(errors.New("database unavailable"))

	resp := newUpsertTestAPI(t, mockOp).Post("/v1/template", Template{
		ID:        "rent",
		Name:      "Rent",
		Type:      "expense",
		Amount:    "900",
		Frequency: "monthly",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockOp.AssertExpectations(t)
}

// -- list tests --

type mockTemplateLister struct {
	mock.Mock
}

func (m *mockTemplateLister) ListTemplates(ctx context.Context) ([]engine.TransactionTemplate, error) {
	args := m.Called(ctx)
	tpls, _ := args.Get(0).([]engine.TransactionTemplate)
	return tpls, args.Error(1)
}

func newListTestAPI(t *testing.T, svc templateLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTemplatesHandler(svc).Register(api)
	return api
}

func TestHTTP_ListTemplates_Success(t *testing.T) {
	mockSvc := new(mockTemplateLister)
	mockSvc.On("ListTemplates", mock.Anything).Return([]engine.TransactionTemplate{
		{
			ID:        "salary",
			Name:      "Salary",
			Type:      engine.TypeIncome,
			Amount:    engine.FormulaAmount("2500 * (1 + CONFIG.Raise)"),
			Frequency: schedule.FrequencyBiWeekly,
			StartDate: "2025-01-01",
		},
		{
			ID:        "rent",
			Name:      "Rent",
			Type:      engine.TypeExpense,
			Amount:    engine.LiteralAmount(decimal.RequireFromString("900")),
			Frequency: schedule.FrequencyMonthly,
			EndsOn:    &engine.DateSpec{Literal: "2025-06-01"},
		},
	}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/templates")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTemplatesResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Templates, 2)

	salary := body.Templates[0]
	assert.Empty(t, salary.Amount)
	assert.NotNil(t, salary.AmountFormula)
	assert.Equal(t, "2500 * (1 + CONFIG.Raise)", salary.AmountFormula.Formula)

	rent := body.Templates[1]
	assert.Equal(t, "900", rent.Amount)
	assert.Equal(t, "2025-06-01", rent.EndsOn)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTemplates_ServiceError(t *testing.T) {
	mockSvc := new(mockTemplateLister)
	mockSvc.On("ListTemplates", mock.Anything).
		Return(([]engine.TransactionTemplate)(nil), errors.New("database unavailable"))

	resp := newListTestAPI(t, mockSvc).Get("/v1/templates")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
