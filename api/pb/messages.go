package pb

import (
	"github.com/shopspring/decimal"
	"max.ks1230/expense-tracker/internal/entity/optional"
)

// Expense is the wire shape of a record. Dates travel as yyyy-mm-dd.
type Expense struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	AmountUAH decimal.Decimal `json:"amount_uah"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
}

type CreateExpenseRequest struct {
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	AmountUAH decimal.Decimal `json:"amount_uah"`
}

type GetExpenseRequest struct {
	ID int64 `json:"id"`
}

// UpdateExpenseRequest carries only the fields to change, a null field is an attempt to clear it.
type UpdateExpenseRequest struct {
	ID        int64                           `json:"id"`
	Name      optional.Value[string]          `json:"name,omitzero"`
	Date      optional.Value[string]          `json:"date,omitzero"`
	AmountUAH optional.Value[decimal.Decimal] `json:"amount_uah,omitzero"`
}

type DeleteExpenseRequest struct {
	ID int64 `json:"id"`
}

type ListExpensesRequest struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}
