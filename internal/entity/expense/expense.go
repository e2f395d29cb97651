package expense

import (
	"time"
	"unicode/utf8"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-tracker/internal/entity/optional"
)

const (
	MaxNameLength = 100
	// DateLayout is how users type and read dates.
	DateLayout = "02.01.2006"
	// ISODateLayout is the wire and storage format.
	ISODateLayout = "2006-01-02"

	shortDateLayout = "2.1.2006"

	// AmountPlaces is the scale amounts are stored with.
	AmountPlaces = 2
	// maxAmountExponent keeps every accepted amount below MaxAmount without rescaling it.
	maxAmountExponent = 11
)

// MaxAmount is the exclusive upper bound of a local amount, the storage column holds 12 integer digits.
var MaxAmount = decimal.New(1, 12)

var (
	ErrAmountNotPositive = errors.New("must be positive")
	ErrAmountPrecision   = errors.New("must have at most 2 decimal places")
	ErrAmountTooLarge    = errors.New("must be less than 1000000000000")
)

type Expense struct {
	ID              int64
	Name            string
	Date            time.Time
	AmountLocal     decimal.Decimal
	AmountReference decimal.Decimal
}

// Draft is the input of a new expense, the reference amount is never part of it.
type Draft struct {
	Name        string
	Date        time.Time
	AmountLocal decimal.Decimal
}

// Patch describes a partial update, absent fields keep their stored values.
type Patch struct {
	Name        optional.Value[string]
	Date        optional.Value[time.Time]
	AmountLocal optional.Value[decimal.Decimal]
}

func (p Patch) IsEmpty() bool {
	return p.Name.IsAbsent() && p.Date.IsAbsent() && p.AmountLocal.IsAbsent()
}

// Range bounds are inclusive, a zero bound is open.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Contains(date time.Time) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// NormalizeDate drops the time of day and the location.
func NormalizeDate(t time.Time) time.Time {
	day := now.With(t).BeginningOfDay()
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a user-typed dd.mm.yyyy date, leading zeros are optional.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		var shortErr error
		if t, shortErr = time.Parse(shortDateLayout, s); shortErr != nil {
			return time.Time{}, err
		}
	}
	return NormalizeDate(t), nil
}

func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CheckAmount reports whether amount can be stored as is. The exponent is checked before comparing,
// rescaling a huge exponent would not finish.
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.Exponent() < -AmountPlaces {
		return ErrAmountPrecision
	}
	if amount.Exponent() > maxAmountExponent || amount.GreaterThanOrEqual(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

func NameLength(name string) int {
	return utf8.RuneCountInString(name)
}
