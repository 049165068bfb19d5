package actual

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func newRecordTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewRecordActualHandler(op).Register(api)
	return api
}

// -- parseRecordActualInput unit tests --

func TestParseRecordActualInput_Valid(t *testing.T) {
	input := &RecordActualInput{
		Body: RecordActualBody{
			Date:       "2025-01-15",
			TemplateID: "rent",
			Amount:     "-910.50",
			Notes:      "rent went up",
		},
	}

	act, err := parseRecordActualInput(input)
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-15", act.Date)
	assert.Equal(t, "rent", act.TemplateID)
	assert.True(t, act.Amount.Equal(decimal.RequireFromString("-910.50")))
	assert.Equal(t, "rent went up", act.Notes)
}

func TestParseRecordActualInput_InvalidAmount(t *testing.T) {
	input := &RecordActualInput{
		Body: RecordActualBody{
			Date:       "2025-01-15",
			TemplateID: "rent",
			Amount:     "lots",
		},
	}

	_, err := parseRecordActualInput(input)
	assert.Error(t, err)
}

func TestParseRecordActualInput_InvalidDate(t *testing.T) {
	input := &RecordActualInput{
		Body: RecordActualBody{
			Date:       "01/15/2025",
			TemplateID: "rent",
			Amount:     "-900",
		},
	}

	_, err := parseRecordActualInput(input)
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_RecordActual_Success(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		upsert, ok := a.(*actions.UpsertActual)
		return ok &&
			upsert.Actual.Date == "2025-01-15" &&
			upsert.Actual.TemplateID == "rent" &&
			upsert.Actual.Amount.Equal(decimal.RequireFromString("-910.50"))
	})).Return(nil)

	resp := newRecordTestAPI(t, mockOp).Post("/v1/actual", RecordActualBody{
		Date:       "2025-01-15",
		TemplateID: "rent",
		Amount:     "-910.50",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_RecordActual_InvalidAmount(t *testing.T) {
	mockOp := new(mockActionProcessor)

	resp := newRecordTestAPI(t, mockOp).Post("/v1/actual", RecordActualBody{
		Date:       "2025-01-15",
		TemplateID: "rent",
		Amount:     "lots",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_RecordActual_OperatorError(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.Anything).Return(errors.New("template not found"))

	resp := newRecordTestAPI(t, mockOp).Post("/v1/actual", RecordActualBody{
		Date:       "2025-01-15",
		TemplateID: "ghost",
		Amount:     "100",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockOp.AssertExpectations(t)
}

// -- delete tests --

func newDeleteTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewDeleteActualHandler(op).Register(api)
	return api
}

func TestHTTP_DeleteActual_Success(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		del, ok := a.(*actions.DeleteActual)
		return ok && del.Date == "2025-01-15" && del.TemplateID == "rent"
	})).Return(nil)

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/actual?date=2025-01-15&templateID=rent")

	assert.Equal(t, http.StatusOK, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_DeleteActual_NotFound(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.Anything).Return(actions.ErrActualNotFound)

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/actual?date=2025-01-15&templateID=ghost")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_DeleteActual_InvalidDate(t *testing.T) {
	mockOp := new(mockActionProcessor)

	resp := newDeleteTestAPI(t, mockOp).Delete("/v1/actual?date=nope&templateID=rent")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}
