package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"
	"max.ks1230/expense-tracker/internal/model/events"
)

type expenseStorage interface {
	CreateExpense(ctx context.Context, rec expense.Expense) (expense.Expense, error)
	GetExpense(ctx context.Context, id int64) (expense.Expense, error)
	UpdateExpense(ctx context.Context, id int64, apply func(expense.Expense) (expense.Expense, error)) (expense.Expense, error)
	DeleteExpense(ctx context.Context, id int64) (expense.Expense, error)
	ListExpenses(ctx context.Context, r expense.Range) ([]expense.Expense, error)
}

type rateResolver interface {
	Resolve(ctx context.Context) decimal.Decimal
}

// Service owns every write to the expenses. The reference amount is derived here and only here.
type Service struct {
	storage   expenseStorage
	rates     rateResolver
	publisher events.Publisher
}

func NewService(storage expenseStorage, rates rateResolver, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		storage:   storage,
		rates:     rates,
		publisher: publisher,
	}
}

// Add validates the draft before touching the rate source or the storage.
func (s *Service) Add(ctx context.Context, draft expense.Draft) (rec expense.Expense, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ledger.add")
	defer finishSpan(span, "add", time.Now(), &err)

	if err = validateDraft(draft); err != nil {
		return expense.Expense{}, err
	}

	rate := s.rates.Resolve(ctx)
	rec, err = s.storage.CreateExpense(ctx, expense.Expense{
		Name:            draft.Name,
		Date:            expense.NormalizeDate(draft.Date),
		AmountLocal:     draft.AmountLocal,
		AmountReference: currency.ToReference(draft.AmountLocal, rate),
	})
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "add expense")
	}

	logger.Info("expense added", zap.Int64("id", rec.ID), zap.String("rate", rate.String()))
	s.publish(ctx, events.ExpenseCreated, rec)
	return rec, nil
}

// Update applies the present fields of the patch. The rate is resolved exactly once, and only
// when the local amount changes, otherwise the stored reference amount is kept.
func (s *Service) Update(ctx context.Context, id int64, patch expense.Patch) (rec expense.Expense, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ledger.update")
	span.SetTag("id", id)
	defer finishSpan(span, "update", time.Now(), &err)

	if err = validateID(id); err != nil {
		return expense.Expense{}, err
	}
	if err = validatePatch(patch); err != nil {
		return expense.Expense{}, err
	}

	rec, err = s.storage.UpdateExpense(ctx, id, func(current expense.Expense) (expense.Expense, error) {
		if name, ok := patch.Name.Get(); ok {
			current.Name = name
		}
		if date, ok := patch.Date.Get(); ok {
			current.Date = expense.NormalizeDate(date)
		}
		if amount, ok := patch.AmountLocal.Get(); ok {
			rate := s.rates.Resolve(ctx)
			current.AmountLocal = amount
			current.AmountReference = currency.ToReference(amount, rate)
		}
		return current, nil
	})
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "update expense")
	}

	logger.Info("expense updated", zap.Int64("id", rec.ID))
	s.publish(ctx, events.ExpenseUpdated, rec)
	return rec, nil
}

// Delete removes the expense and returns its last state.
func (s *Service) Delete(ctx context.Context, id int64) (rec expense.Expense, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ledger.delete")
	span.SetTag("id", id)
	defer finishSpan(span, "delete", time.Now(), &err)

	if err = validateID(id); err != nil {
		return expense.Expense{}, err
	}

	rec, err = s.storage.DeleteExpense(ctx, id)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "delete expense")
	}

	logger.Info("expense deleted", zap.Int64("id", rec.ID))
	s.publish(ctx, events.ExpenseDeleted, rec)
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id int64) (expense.Expense, error) {
	if err := validateID(id); err != nil {
		return expense.Expense{}, err
	}
	rec, err := s.storage.GetExpense(ctx, id)
	return rec, errors.Wrap(err, "get expense")
}

// publish runs after the commit, a broker failure is logged and does not undo the change.
func (s *Service) publish(ctx context.Context, t events.Type, rec expense.Expense) {
	if err := s.publisher.Publish(ctx, events.New(t, rec)); err != nil {
		logger.Error("failed to publish expense event",
			zap.String("type", string(t)),
			zap.Int64("id", rec.ID),
			zap.Error(err),
		)
	}
}

func validateDraft(d expense.Draft) error {
	if err := validateName(d.Name); err != nil {
		return err
	}
	if d.Date.IsZero() {
		return customerr.NewValidationError("date", "is required")
	}
	return validateAmount(d.AmountLocal)
}

func validatePatch(p expense.Patch) error {
	if p.Name.IsNull() {
		return customerr.NewValidationError("name", "cannot be cleared")
	}
	if p.Date.IsNull() {
		return customerr.NewValidationError("date", "cannot be cleared")
	}
	if p.AmountLocal.IsNull() {
		return customerr.NewValidationError("amount_uah", "cannot be cleared")
	}
	if name, ok := p.Name.Get(); ok {
		if err := validateName(name); err != nil {
			return err
		}
	}
	if date, ok := p.Date.Get(); ok && date.IsZero() {
		return customerr.NewValidationError("date", "is required")
	}
	if amount, ok := p.AmountLocal.Get(); ok {
		return validateAmount(amount)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return customerr.NewValidationError("name", "is empty")
	}
	if expense.NameLength(name) > expense.MaxNameLength {
		return customerr.NewValidationError("name", "is longer than 100 characters")
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if err := expense.CheckAmount(amount); err != nil {
		return customerr.NewValidationError("amount_uah", err.Error())
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return customerr.NewValidationError("id", "must be positive")
	}
	return nil
}

func finishSpan(span opentracing.Span, op string, start time.Time, err *error) {
	if *err != nil {
		ext.Error.Set(span, true)
	}
	span.Finish()
	observeOperation(op, time.Since(start), *err)
}
