package audit

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/events"
)

var counterEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "expense_tracker",
		Subsystem: "audit",
		Name:      "events_total",
		Help:      "Ledger change events written to the audit log.",
	},
	[]string{"type"},
)

// Auditor writes every ledger change to the structured log.
type Auditor struct {
	log *zap.Logger
}

func NewAuditor() *Auditor {
	return &Auditor{log: logger.With(zap.String("component", "audit"))}
}

func (a *Auditor) HandleEvent(ctx context.Context, event events.ExpenseEvent) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "audit.handleEvent")
	defer span.Finish()

	switch event.Type {
	case events.ExpenseCreated, events.ExpenseUpdated, events.ExpenseDeleted:
	default:
		return errors.Errorf("unknown event type %q", event.Type)
	}

	a.log.Info("expense changed",
		zap.String("eventID", event.ID),
		zap.String("type", string(event.Type)),
		zap.Time("occurredAt", event.OccurredAt),
		zap.Int64("expenseID", event.Expense.ID),
		zap.String("name", event.Expense.Name),
		zap.String("date", event.Expense.Date),
		zap.String("amountUAH", event.Expense.AmountUAH.StringFixed(2)),
		zap.String("amountUSD", event.Expense.AmountUSD.StringFixed(2)),
	)
	counterEvents.WithLabelValues(string(event.Type)).Inc()
	return nil
}
