package pb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/optional"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

func Test_UpdateRequest_KeepsAbsentFieldsAbsent(t *testing.T) {
	patch := expense.Patch{AmountLocal: optional.Of(decimal.RequireFromString("120.50"))}

	data, err := jsonCodec{}.Marshal(NewUpdateRequest(7, patch))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"name"`)
	assert.NotContains(t, string(data), `"date"`)

	var req UpdateExpenseRequest
	require.NoError(t, jsonCodec{}.Unmarshal(data, &req))
	got, err := req.ToPatch()
	require.NoError(t, err)

	assert.Equal(t, int64(7), req.ID)
	assert.True(t, got.Name.IsAbsent())
	assert.True(t, got.Date.IsAbsent())
	amount, ok := got.AmountLocal.Get()
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("120.5")))
}

func Test_UpdateRequest_NullSurvivesDecoding(t *testing.T) {
	var req UpdateExpenseRequest
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{"id":3,"name":null,"date":"2024-02-29"}`), &req))

	got, err := req.ToPatch()
	require.NoError(t, err)
	assert.True(t, got.Name.IsNull())
	date, ok := got.Date.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), date)
}

func Test_ToDraft_RejectsMalformedDate(t *testing.T) {
	req := &CreateExpenseRequest{Name: "coffee", Date: "29.02.2024", AmountUAH: decimal.NewFromInt(50)}

	_, err := req.ToDraft()

	assert.True(t, customerr.IsValidation(err))
}

func Test_ListRequest_OpenBounds(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	req := NewListRequest(expense.Range{From: from})
	assert.Equal(t, "2024-01-01", req.StartDate)
	assert.Empty(t, req.EndDate)

	r, err := req.ToRange()
	require.NoError(t, err)
	assert.Equal(t, from, r.From)
	assert.True(t, r.To.IsZero())
}

func Test_Expense_RoundTrip(t *testing.T) {
	rec := expense.Expense{
		ID:              1,
		Name:            "taxi",
		Date:            time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		AmountLocal:     decimal.RequireFromString("200"),
		AmountReference: decimal.RequireFromString("4.82"),
	}

	got, err := FromExpense(rec).ToEntity()

	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
