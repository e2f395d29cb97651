package events

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"max.ks1230/expense-tracker/internal/entity/expense"
)

type Type string

const (
	ExpenseCreated Type = "expense.created"
	ExpenseUpdated Type = "expense.updated"
	ExpenseDeleted Type = "expense.deleted"
)

type ExpenseEvent struct {
	ID         string
	Type       Type
	OccurredAt time.Time
	Expense    Snapshot
}

// Snapshot is the expense state after the change, or before it for deletions.
type Snapshot struct {
	ID        int64
	Name      string
	Date      string
	AmountUAH decimal.Decimal
	AmountUSD decimal.Decimal
}

func New(t Type, e expense.Expense) ExpenseEvent {
	return ExpenseEvent{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Expense: Snapshot{
			ID:        e.ID,
			Name:      e.Name,
			Date:      e.Date.Format(expense.ISODateLayout),
			AmountUAH: e.AmountLocal,
			AmountUSD: e.AmountReference,
		},
	}
}

// Key partitions events by expense, so the changes of one expense stay ordered.
func (e ExpenseEvent) Key() []byte {
	return []byte(strconv.FormatInt(e.Expense.ID, 10))
}

// Marshal encodes the event as a protobuf Struct. Ids and amounts travel as strings so they keep
// their exact values.
func (e ExpenseEvent) Marshal() ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		"id":          e.ID,
		"type":        string(e.Type),
		"occurred_at": e.OccurredAt.Format(time.RFC3339Nano),
		"expense": map[string]interface{}{
			"id":         strconv.FormatInt(e.Expense.ID, 10),
			"name":       e.Expense.Name,
			"date":       e.Expense.Date,
			"amount_uah": e.Expense.AmountUAH.String(),
			"amount_usd": e.Expense.AmountUSD.String(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal event")
	}
	data, err := proto.Marshal(payload)
	return data, errors.Wrap(err, "marshal event")
}

func Unmarshal(data []byte) (ExpenseEvent, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(data, &payload); err != nil {
		return ExpenseEvent{}, errors.Wrap(err, "unmarshal event")
	}
	fields := payload.GetFields()
	snapshot := fields["expense"].GetStructValue().GetFields()

	occurredAt, err := time.Parse(time.RFC3339Nano, fields["occurred_at"].GetStringValue())
	if err != nil {
		return ExpenseEvent{}, errors.Wrap(err, "unmarshal event occurred_at")
	}
	id, err := strconv.ParseInt(snapshot["id"].GetStringValue(), 10, 64)
	if err != nil {
		return ExpenseEvent{}, errors.Wrap(err, "unmarshal event expense id")
	}
	amountUAH, err := decimal.NewFromString(snapshot["amount_uah"].GetStringValue())
	if err != nil {
		return ExpenseEvent{}, errors.Wrap(err, "unmarshal event amount_uah")
	}
	amountUSD, err := decimal.NewFromString(snapshot["amount_usd"].GetStringValue())
	if err != nil {
		return ExpenseEvent{}, errors.Wrap(err, "unmarshal event amount_usd")
	}

	return ExpenseEvent{
		ID:         fields["id"].GetStringValue(),
		Type:       Type(fields["type"].GetStringValue()),
		OccurredAt: occurredAt,
		Expense: Snapshot{
			ID:        id,
			Name:      snapshot["name"].GetStringValue(),
			Date:      snapshot["date"].GetStringValue(),
			AmountUAH: amountUAH,
			AmountUSD: amountUSD,
		},
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, event ExpenseEvent) error
}

// NopPublisher drops events, it is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ExpenseEvent) error {
	return nil
}
