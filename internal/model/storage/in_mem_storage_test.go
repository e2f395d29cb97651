package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

func Test_InMem_ShouldBehaveLikeSQLStorage(t *testing.T) {
	s := NewInMemStorage()
	ctx := context.Background()

	b, _ := s.CreateExpense(ctx, expense.Expense{Name: "b", Date: date("2024-01-02"), AmountLocal: dec("2")})
	a, _ := s.CreateExpense(ctx, expense.Expense{Name: "a", Date: date("2024-01-01"), AmountLocal: dec("1")})
	c, _ := s.CreateExpense(ctx, expense.Expense{Name: "c", Date: date("2024-01-02"), AmountLocal: dec("3")})

	all, err := s.ListExpenses(ctx, expense.Range{})
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID, c.ID}, ids(all))

	_, err = s.UpdateExpense(ctx, 42, func(cur expense.Expense) (expense.Expense, error) { return cur, nil })
	assert.True(t, errors.Is(err, customerr.ErrNotFound))

	_, err = s.DeleteExpense(ctx, b.ID)
	require.NoError(t, err)

	rest, err := s.ListExpenses(ctx, expense.Range{From: date("2024-01-02")})
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID}, ids(rest))
}
