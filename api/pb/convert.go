package pb

import (
	"time"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/optional"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

func FromExpense(e expense.Expense) Expense {
	return Expense{
		ID:        e.ID,
		Name:      e.Name,
		Date:      e.Date.Format(expense.ISODateLayout),
		AmountUAH: e.AmountLocal,
		AmountUSD: e.AmountReference,
	}
}

func FromExpenses(exps []expense.Expense) []Expense {
	res := make([]Expense, 0, len(exps))
	for _, e := range exps {
		res = append(res, FromExpense(e))
	}
	return res
}

func (e Expense) ToEntity() (expense.Expense, error) {
	date, err := parseDate("date", e.Date)
	if err != nil {
		return expense.Expense{}, err
	}
	return expense.Expense{
		ID:              e.ID,
		Name:            e.Name,
		Date:            date,
		AmountLocal:     e.AmountUAH,
		AmountReference: e.AmountUSD,
	}, nil
}

func ToExpenses(in []Expense) ([]expense.Expense, error) {
	res := make([]expense.Expense, 0, len(in))
	for _, e := range in {
		rec, err := e.ToEntity()
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

func NewCreateRequest(d expense.Draft) *CreateExpenseRequest {
	return &CreateExpenseRequest{
		Name:      d.Name,
		Date:      d.Date.Format(expense.ISODateLayout),
		AmountUAH: d.AmountLocal,
	}
}

func (r *CreateExpenseRequest) ToDraft() (expense.Draft, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return expense.Draft{}, err
	}
	return expense.Draft{Name: r.Name, Date: date, AmountLocal: r.AmountUAH}, nil
}

func NewUpdateRequest(id int64, p expense.Patch) *UpdateExpenseRequest {
	req := &UpdateExpenseRequest{
		ID:        id,
		Name:      p.Name,
		AmountUAH: p.AmountLocal,
	}
	switch {
	case p.Date.IsNull():
		req.Date = optional.Null[string]()
	case p.Date.IsSet():
		date, _ := p.Date.Get()
		req.Date = optional.Of(date.Format(expense.ISODateLayout))
	}
	return req
}

func (r *UpdateExpenseRequest) ToPatch() (expense.Patch, error) {
	patch := expense.Patch{
		Name:        r.Name,
		AmountLocal: r.AmountUAH,
	}
	switch {
	case r.Date.IsNull():
		patch.Date = optional.Null[time.Time]()
	case r.Date.IsSet():
		raw, _ := r.Date.Get()
		date, err := parseDate("date", raw)
		if err != nil {
			return expense.Patch{}, err
		}
		patch.Date = optional.Of(date)
	}
	return patch, nil
}

func NewListRequest(r expense.Range) *ListExpensesRequest {
	req := &ListExpensesRequest{}
	if !r.From.IsZero() {
		req.StartDate = r.From.Format(expense.ISODateLayout)
	}
	if !r.To.IsZero() {
		req.EndDate = r.To.Format(expense.ISODateLayout)
	}
	return req
}

func (r *ListExpensesRequest) ToRange() (expense.Range, error) {
	var (
		res expense.Range
		err error
	)
	if r.StartDate != "" {
		if res.From, err = parseDate("start_date", r.StartDate); err != nil {
			return expense.Range{}, err
		}
	}
	if r.EndDate != "" {
		if res.To, err = parseDate("end_date", r.EndDate); err != nil {
			return expense.Range{}, err
		}
	}
	return res, nil
}

func parseDate(field, s string) (time.Time, error) {
	date, err := expense.ParseISODate(s)
	if err != nil {
		return time.Time{}, customerr.NewValidationError(field, "expected yyyy-mm-dd")
	}
	return date, nil
}
