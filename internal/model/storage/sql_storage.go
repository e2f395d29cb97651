package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"

	// postgres driver
	_ "github.com/lib/pq"
	// sqlite driver, registered as "sqlite"
	_ "modernc.org/sqlite"

	"github.com/pkg/errors"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

const expensesTable = "expenses"

var expenseColumns = []string{"id", "name", "date", "amount_uah", "amount_usd"}

type config interface {
	Driver() string
	DSN() string
}

type SQLStorage struct {
	db      *sql.DB
	dialect Dialect
	builder sq.StatementBuilderType
}

// Open connects to the configured database, pings it and applies the migrations.
func Open(ctx context.Context, config config) (*SQLStorage, error) {
	dialect := Dialect(config.Driver())
	if dialect != Postgres && dialect != SQLite {
		return nil, fmt.Errorf("unsupported driver %q", config.Driver())
	}

	db, err := sql.Open(string(dialect), config.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if dialect == SQLite {
		// one writer at a time, and an in-memory database lives on a single connection
		db.SetMaxOpenConns(1)
	}
	if err = Migrate(ctx, db, dialect); err != nil {
		return nil, err
	}
	return NewSQLStorage(db, dialect), nil
}

func NewSQLStorage(db *sql.DB, dialect Dialect) *SQLStorage {
	return &SQLStorage{
		db:      db,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(dialect.placeholders()),
	}
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

func (s *SQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStorage) CreateExpense(ctx context.Context, rec expense.Expense) (expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "storage.createExpense")
	defer span.Finish()

	query := s.builder.Insert(expensesTable).
		Columns("name", "date", "amount_uah", "amount_usd").
		Values(rec.Name, dateValue(rec.Date), rec.AmountLocal, rec.AmountReference).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.ID)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "create expense")
	}
	return rec, nil
}

func (s *SQLStorage) GetExpense(ctx context.Context, id int64) (expense.Expense, error) {
	query := s.builder.Select(expenseColumns...).
		From(expensesTable).
		Where(sq.Eq{"id": id})

	rec, err := scanExpense(query.RunWith(s.db).QueryRowContext(ctx))
	if err != nil {
		return expense.Expense{}, errors.Wrap(notFound(err), "get expense")
	}
	return rec, nil
}

// UpdateExpense locks the row, hands it to apply and writes back whatever apply returns,
// all in one transaction. Nothing is written when apply fails.
func (s *SQLStorage) UpdateExpense(
	ctx context.Context,
	id int64,
	apply func(current expense.Expense) (expense.Expense, error),
) (expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "storage.updateExpense")
	defer span.Finish()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "update expense")
	}
	defer rollback(tx)

	selectQuery := s.builder.Select(expenseColumns...).
		From(expensesTable).
		Where(sq.Eq{"id": id})
	if suffix := s.dialect.lockSuffix(); suffix != "" {
		selectQuery = selectQuery.Suffix(suffix)
	}

	current, err := scanExpense(selectQuery.RunWith(tx).QueryRowContext(ctx))
	if err != nil {
		return expense.Expense{}, errors.Wrap(notFound(err), "update expense")
	}

	updated, err := apply(current)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "update expense")
	}
	updated.ID = current.ID

	updateQuery := s.builder.Update(expensesTable).
		Set("name", updated.Name).
		Set("date", dateValue(updated.Date)).
		Set("amount_uah", updated.AmountLocal).
		Set("amount_usd", updated.AmountReference).
		Where(sq.Eq{"id": id})

	if _, err = updateQuery.RunWith(tx).ExecContext(ctx); err != nil {
		return expense.Expense{}, errors.Wrap(err, "update expense")
	}
	if err = tx.Commit(); err != nil {
		return expense.Expense{}, errors.Wrap(err, "update expense")
	}
	return updated, nil
}

func (s *SQLStorage) DeleteExpense(ctx context.Context, id int64) (expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "storage.deleteExpense")
	defer span.Finish()

	query, args, err := s.builder.Delete(expensesTable).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, date, amount_uah, amount_usd").
		ToSql()
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "delete expense")
	}

	rec, err := scanExpense(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return expense.Expense{}, errors.Wrap(notFound(err), "delete expense")
	}
	return rec, nil
}

// ListExpenses returns expenses within the inclusive range ordered by date, then by id.
func (s *SQLStorage) ListExpenses(ctx context.Context, r expense.Range) ([]expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "storage.listExpenses")
	defer span.Finish()

	query := s.builder.Select(expenseColumns...).
		From(expensesTable).
		OrderBy("date ASC", "id ASC")
	if !r.From.IsZero() {
		query = query.Where(sq.GtOrEq{"date": dateValue(r.From)})
	}
	if !r.To.IsZero() {
		query = query.Where(sq.LtOrEq{"date": dateValue(r.To)})
	}

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	defer func() {
		rowErr := rows.Close()
		if rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	exps := make([]expense.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list expenses")
		}
		exps = append(exps, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}

	return exps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (expense.Expense, error) {
	var (
		e    expense.Expense
		date sqlDate
	)
	err := row.Scan(&e.ID, &e.Name, &date, &e.AmountLocal, &e.AmountReference)
	if err != nil {
		return expense.Expense{}, err
	}
	e.Date = date.Time
	return e, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customerr.ErrNotFound
	}
	return err
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Error("error when transaction rollback", zap.Error(err))
	}
}

func dateValue(t time.Time) string {
	return t.Format(expense.ISODateLayout)
}

// sqlDate reads DATE columns from PostgreSQL and TEXT columns from sqlite alike.
type sqlDate struct {
	time.Time
}

func (d *sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = expense.NormalizeDate(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		return errors.New("date is null")
	}
	return fmt.Errorf("cannot scan %T into date", src)
}

func (d *sqlDate) parse(s string) error {
	for _, layout := range []string{expense.ISODateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = expense.NormalizeDate(t)
			return nil
		}
	}
	return fmt.Errorf("cannot parse date %q", s)
}

func (d sqlDate) Value() (driver.Value, error) {
	return dateValue(d.Time), nil
}
