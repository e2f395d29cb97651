package events

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"max.ks1230/expense-tracker/internal/entity/expense"
)

func Test_New_ShouldSnapshotExpense(t *testing.T) {
	day, _ := expense.ParseDate("15.03.2024")
	ev := New(ExpenseCreated, expense.Expense{
		ID:              12,
		Name:            "Coffee",
		Date:            day,
		AmountLocal:     decimal.RequireFromString("50"),
		AmountReference: decimal.RequireFromString("1.21"),
	})

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, []byte("12"), ev.Key())

	data, err := ev.Marshal()
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, ExpenseCreated, back.Type)
	assert.Equal(t, "2024-03-15", back.Expense.Date)
	assert.Equal(t, "Coffee", back.Expense.Name)
	assert.True(t, decimal.RequireFromString("1.21").Equal(back.Expense.AmountUSD))
	assert.True(t, decimal.RequireFromString("50").Equal(back.Expense.AmountUAH))
	assert.Equal(t, int64(12), back.Expense.ID)
	assert.Equal(t, ev.ID, back.ID)
	assert.True(t, ev.OccurredAt.Equal(back.OccurredAt))
}

func Test_Unmarshal_ShouldReadProtobufStruct(t *testing.T) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		"id":          "7c1f",
		"type":        string(ExpenseDeleted),
		"occurred_at": "2024-03-15T10:00:00Z",
		"expense": map[string]interface{}{
			"id":         "9007199254740993",
			"name":       "Rent",
			"date":       "2024-03-01",
			"amount_uah": "12000.00",
			"amount_usd": "289.16",
		},
	})
	require.NoError(t, err)
	data, err := proto.Marshal(payload)
	require.NoError(t, err)

	ev, err := Unmarshal(data)

	require.NoError(t, err)
	assert.Equal(t, ExpenseDeleted, ev.Type)
	assert.Equal(t, int64(9007199254740993), ev.Expense.ID)
	assert.True(t, decimal.RequireFromString("12000").Equal(ev.Expense.AmountUAH))
}

func Test_Unmarshal_ShouldRejectGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("{\"id\":1}"))

	assert.Error(t, err)
}
