package ledger

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"max.ks1230/expense-tracker/api/pb"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"
)

type config interface {
	Ledger() string
}

// Client is the bot's view of the remote ledger. Errors come back as customerr values when the
// server classified them, anything else is a transport failure.
type Client struct {
	conn   *grpc.ClientConn
	client pb.LedgerClient
}

func New(config config) (*Client, error) {
	conn, err := grpc.Dial(config.Ledger(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot initiate new connection")
	}
	return NewWithConn(conn), nil
}

func NewWithConn(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, client: pb.NewLedgerClient(conn)}
}

func (c *Client) Close() {
	err := c.conn.Close()
	if err != nil {
		logger.Error("failed to close grpc connection", zap.Error(err))
	}
}

func (c *Client) Add(ctx context.Context, draft expense.Draft) (expense.Expense, error) {
	out, err := c.client.CreateExpense(ctx, pb.NewCreateRequest(draft))
	if err != nil {
		return expense.Expense{}, fromStatus(err, "create expense")
	}
	return out.ToEntity()
}

func (c *Client) Get(ctx context.Context, id int64) (expense.Expense, error) {
	out, err := c.client.GetExpense(ctx, &pb.GetExpenseRequest{ID: id})
	if err != nil {
		return expense.Expense{}, fromStatus(err, "get expense")
	}
	return out.ToEntity()
}

func (c *Client) Update(ctx context.Context, id int64, patch expense.Patch) (expense.Expense, error) {
	out, err := c.client.UpdateExpense(ctx, pb.NewUpdateRequest(id, patch))
	if err != nil {
		return expense.Expense{}, fromStatus(err, "update expense")
	}
	return out.ToEntity()
}

func (c *Client) Delete(ctx context.Context, id int64) (expense.Expense, error) {
	out, err := c.client.DeleteExpense(ctx, &pb.DeleteExpenseRequest{ID: id})
	if err != nil {
		return expense.Expense{}, fromStatus(err, "delete expense")
	}
	return out.ToEntity()
}

func (c *Client) List(ctx context.Context, r expense.Range) ([]expense.Expense, error) {
	out, err := c.client.ListExpenses(ctx, pb.NewListRequest(r))
	if err != nil {
		return nil, fromStatus(err, "list expenses")
	}
	return pb.ToExpenses(out.Expenses)
}

func fromStatus(err error, op string) error {
	st, ok := status.FromError(err)
	if !ok {
		return errors.Wrap(err, op)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return errors.Wrap(customerr.ErrValidation, st.Message())
	case codes.NotFound:
		return errors.Wrap(customerr.ErrNotFound, op)
	}
	return errors.Wrap(err, op)
}
