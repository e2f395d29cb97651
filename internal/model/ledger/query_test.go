package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

func Test_List_ShouldFilterInclusiveRangeAndSortByDate(t *testing.T) {
	svc, q, _, _ := newService("40")
	ctx := context.Background()

	add := func(name, date string) expense.Expense {
		rec, err := svc.Add(ctx, expense.Draft{Name: name, Date: day(date), AmountLocal: dec("10")})
		require.NoError(t, err)
		return rec
	}
	after := add("after", "01.02.2024")
	last := add("last", "31.01.2024")
	first := add("first", "01.01.2024")
	before := add("before", "31.12.2023")
	middle := add("middle", "15.01.2024")
	lastToo := add("last-too", "31.01.2024")

	res, err := q.List(ctx, expense.Range{From: day("01.01.2024"), To: day("31.01.2024")})
	require.NoError(t, err)
	assert.Equal(t, []expense.Expense{first, middle, last, lastToo}, res)

	all, err := q.List(ctx, expense.Range{})
	require.NoError(t, err)
	assert.Equal(t, []expense.Expense{before, first, middle, last, lastToo, after}, all)

	again, err := q.List(ctx, expense.Range{})
	require.NoError(t, err)
	assert.Equal(t, all, again)
}

func Test_List_ShouldRejectInvertedRange(t *testing.T) {
	_, q, _, _ := newService("40")

	_, err := q.List(context.Background(), expense.Range{From: day("01.01.2024"), To: day("01.01.2023")})

	assert.True(t, customerr.IsValidation(err))
}
