package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"max.ks1230/expense-tracker/internal/entity/expense"
)

type ExpenseLedgerMock struct {
	mock.Mock
}

func (m *ExpenseLedgerMock) Add(ctx context.Context, draft expense.Draft) (expense.Expense, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(expense.Expense), args.Error(1)
}

func (m *ExpenseLedgerMock) Update(ctx context.Context, id int64, patch expense.Patch) (expense.Expense, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(expense.Expense), args.Error(1)
}

func (m *ExpenseLedgerMock) Delete(ctx context.Context, id int64) (expense.Expense, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(expense.Expense), args.Error(1)
}

func (m *ExpenseLedgerMock) List(ctx context.Context, r expense.Range) ([]expense.Expense, error) {
	args := m.Called(ctx, r)
	exps, _ := args.Get(0).([]expense.Expense)
	return exps, args.Error(1)
}
