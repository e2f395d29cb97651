package grpcserver

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/customerr"

	"max.ks1230/expense-tracker/api/pb"
)

type config interface {
	Listen() string
}

type expenseLedger interface {
	Add(ctx context.Context, draft expense.Draft) (expense.Expense, error)
	Get(ctx context.Context, id int64) (expense.Expense, error)
	Update(ctx context.Context, id int64, patch expense.Patch) (expense.Expense, error)
	Delete(ctx context.Context, id int64) (expense.Expense, error)
}

type expenseQuery interface {
	List(ctx context.Context, r expense.Range) ([]expense.Expense, error)
}

type LedgerServer struct {
	pb.UnimplementedLedgerServer
	ledger expenseLedger
	query  expenseQuery
	server *grpc.Server
	lis    net.Listener
}

func NewServer(config config, ledger expenseLedger, query expenseQuery) (*LedgerServer, error) {
	lis, err := net.Listen("tcp", config.Listen())
	if err != nil {
		return nil, errors.Wrap(err, "cannot create server")
	}
	return NewServerWithListener(lis, ledger, query), nil
}

func NewServerWithListener(lis net.Listener, ledger expenseLedger, query expenseQuery) *LedgerServer {
	rpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(tracingInterceptor, loggingInterceptor))
	service := &LedgerServer{
		ledger: ledger,
		query:  query,
		server: rpcServer,
		lis:    lis,
	}
	pb.RegisterLedgerServer(rpcServer, service)
	return service
}

func (s *LedgerServer) Serve() error {
	logger.Info("gRPC server listening", zap.Any("addr", s.lis.Addr()))
	if err := s.server.Serve(s.lis); err != nil {
		return errors.Wrap(err, "serve gRPC")
	}
	return nil
}

func (s *LedgerServer) Shutdown() {
	s.server.GracefulStop()
	logger.Info("grpc server stopped")
}

func (s *LedgerServer) CreateExpense(ctx context.Context, in *pb.CreateExpenseRequest) (*pb.Expense, error) {
	draft, err := in.ToDraft()
	if err != nil {
		return nil, toStatus(err)
	}
	rec, err := s.ledger.Add(ctx, draft)
	if err != nil {
		return nil, toStatus(err)
	}
	out := pb.FromExpense(rec)
	return &out, nil
}

func (s *LedgerServer) GetExpense(ctx context.Context, in *pb.GetExpenseRequest) (*pb.Expense, error) {
	rec, err := s.ledger.Get(ctx, in.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	out := pb.FromExpense(rec)
	return &out, nil
}

func (s *LedgerServer) UpdateExpense(ctx context.Context, in *pb.UpdateExpenseRequest) (*pb.Expense, error) {
	patch, err := in.ToPatch()
	if err != nil {
		return nil, toStatus(err)
	}
	rec, err := s.ledger.Update(ctx, in.ID, patch)
	if err != nil {
		return nil, toStatus(err)
	}
	out := pb.FromExpense(rec)
	return &out, nil
}

func (s *LedgerServer) DeleteExpense(ctx context.Context, in *pb.DeleteExpenseRequest) (*pb.Expense, error) {
	rec, err := s.ledger.Delete(ctx, in.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	out := pb.FromExpense(rec)
	return &out, nil
}

func (s *LedgerServer) ListExpenses(ctx context.Context, in *pb.ListExpensesRequest) (*pb.ListExpensesResponse, error) {
	r, err := in.ToRange()
	if err != nil {
		return nil, toStatus(err)
	}
	exps, err := s.query.List(ctx, r)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListExpensesResponse{Expenses: pb.FromExpenses(exps)}, nil
}

func toStatus(err error) error {
	switch {
	case customerr.IsValidation(err):
		var vErr *customerr.ValidationError
		if errors.As(err, &vErr) {
			return status.Error(codes.InvalidArgument, vErr.Error())
		}
		return status.Error(codes.InvalidArgument, err.Error())
	case customerr.IsNotFound(err):
		return status.Error(codes.NotFound, customerr.ErrNotFound.Error())
	}
	logger.Error("ledger call failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
