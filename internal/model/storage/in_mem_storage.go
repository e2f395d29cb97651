package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

// InMemStorage keeps expenses in a map, it backs tests and database-less runs.
type InMemStorage struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]expense.Expense
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{records: make(map[int64]expense.Expense)}
}

func (s *InMemStorage) CreateExpense(_ context.Context, rec expense.Expense) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	s.records[rec.ID] = rec
	return rec, nil
}

func (s *InMemStorage) GetExpense(_ context.Context, id int64) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return expense.Expense{}, errors.Wrap(customerr.ErrNotFound, "get expense")
	}
	return rec, nil
}

// UpdateExpense holds the storage lock while apply runs, so writers never interleave.
func (s *InMemStorage) UpdateExpense(
	_ context.Context,
	id int64,
	apply func(current expense.Expense) (expense.Expense, error),
) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[id]
	if !ok {
		return expense.Expense{}, errors.Wrap(customerr.ErrNotFound, "update expense")
	}
	updated, err := apply(current)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "update expense")
	}
	updated.ID = id
	s.records[id] = updated
	return updated, nil
}

func (s *InMemStorage) DeleteExpense(_ context.Context, id int64) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return expense.Expense{}, errors.Wrap(customerr.ErrNotFound, "delete expense")
	}
	delete(s.records, id)
	return rec, nil
}

func (s *InMemStorage) ListExpenses(_ context.Context, r expense.Range) ([]expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]expense.Expense, 0, len(s.records))
	for _, rec := range s.records {
		if r.Contains(rec.Date) {
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}
