package ledger

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

type expenseLister interface {
	ListExpenses(ctx context.Context, r expense.Range) ([]expense.Expense, error)
}

// QueryService is the read side: filtering by date and the ordering reports rely on.
type QueryService struct {
	storage expenseLister
}

func NewQueryService(storage expenseLister) *QueryService {
	return &QueryService{storage: storage}
}

// List returns expenses with From <= date <= To (zero bounds are open), ascending by date,
// ties in insertion order.
func (q *QueryService) List(ctx context.Context, r expense.Range) ([]expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ledger.list")
	defer span.Finish()

	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return nil, customerr.NewValidationError("range", "start date is after end date")
	}
	r.From = normalizeBound(r.From)
	r.To = normalizeBound(r.To)

	exps, err := q.storage.ListExpenses(ctx, r)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	return exps, nil
}

func normalizeBound(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return expense.NormalizeDate(t)
}
