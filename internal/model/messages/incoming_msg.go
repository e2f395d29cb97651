package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/session"
)

// Document is a file sent to the user.
type Document struct {
	Name    string
	Data    []byte
	Caption string
}

type messageSender interface {
	SendMessage(text string, userID int64) error
	SendKeyboard(text string, options []string, userID int64) error
	SendDocument(doc Document, userID int64) error
}

type sessionStore interface {
	Get(ctx context.Context, userID int64) (session.Session, error)
	Save(ctx context.Context, userID int64, sess session.Session) error
}

type expenseLedger interface {
	Add(ctx context.Context, draft expense.Draft) (expense.Expense, error)
	Update(ctx context.Context, id int64, patch expense.Patch) (expense.Expense, error)
	Delete(ctx context.Context, id int64) (expense.Expense, error)
	List(ctx context.Context, r expense.Range) ([]expense.Expense, error)
}

type reportExporter interface {
	Export(records []expense.Expense) (reports.Report, error)
}

type reportArchiver interface {
	Archive(ctx context.Context, userID int64, report reports.Report) error
}

type Message struct {
	Text   string
	UserID int64
}

// Service is the conversation engine. It is the only component that talks to the user,
// and it expects messages of one user to arrive one at a time (see Dispatcher).
type Service struct {
	tgClient messageSender
	sessions sessionStore
	handlers handlerMap
	ledger   expenseLedger
	exporter reportExporter
	archiver reportArchiver
}

// NewService wires the engine. archiver may be nil.
func NewService(
	tgClient messageSender,
	sessions sessionStore,
	ledger expenseLedger,
	exporter reportExporter,
	archiver reportArchiver,
) *Service {
	s := &Service{
		tgClient: tgClient,
		sessions: sessions,
		ledger:   ledger,
		exporter: exporter,
		archiver: archiver,
	}
	s.handlers = newHandlerMap(s)
	return s
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()
	span.SetTag("userID", msg.UserID)

	start := time.Now()
	state, err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(state, elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) (session.State, error) {
	sess, err := s.sessions.Get(ctx, msg.UserID)
	if err != nil {
		logger.Error("cannot load session, starting over", zap.Int64("userID", msg.UserID), zap.Error(err))
		sess = session.New()
	}
	state := sess.State

	handler, ok := s.handlers[state]
	if isResetCommand(msg.Text) {
		handler = s.handleReset
	} else if !ok {
		logger.Warn("unknown session state, resetting", zap.String("state", string(state)))
		sess.Reset()
		handler = s.handleMenu
	}

	err = handler(ctx, &sess, msg)
	if saveErr := s.sessions.Save(ctx, msg.UserID, sess); saveErr != nil {
		saveErr = errors.Wrap(saveErr, "save session")
		if err == nil {
			return state, saveErr
		}
		logger.Error("cannot save session", zap.Int64("userID", msg.UserID), zap.Error(saveErr))
	}
	return state, errors.Wrap(err, "handle message")
}
