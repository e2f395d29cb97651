package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "expensetracker.v1.Ledger"

const (
	methodCreate = "/" + ServiceName + "/CreateExpense"
	methodGet    = "/" + ServiceName + "/GetExpense"
	methodUpdate = "/" + ServiceName + "/UpdateExpense"
	methodDelete = "/" + ServiceName + "/DeleteExpense"
	methodList   = "/" + ServiceName + "/ListExpenses"
)

type LedgerServer interface {
	CreateExpense(context.Context, *CreateExpenseRequest) (*Expense, error)
	GetExpense(context.Context, *GetExpenseRequest) (*Expense, error)
	UpdateExpense(context.Context, *UpdateExpenseRequest) (*Expense, error)
	DeleteExpense(context.Context, *DeleteExpenseRequest) (*Expense, error)
	ListExpenses(context.Context, *ListExpensesRequest) (*ListExpensesResponse, error)
}

// UnimplementedLedgerServer can be embedded to keep servers compiling when methods are added.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) CreateExpense(context.Context, *CreateExpenseRequest) (*Expense, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateExpense not implemented")
}

func (UnimplementedLedgerServer) GetExpense(context.Context, *GetExpenseRequest) (*Expense, error) {
	return nil, status.Error(codes.Unimplemented, "method GetExpense not implemented")
}

func (UnimplementedLedgerServer) UpdateExpense(context.Context, *UpdateExpenseRequest) (*Expense, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateExpense not implemented")
}

func (UnimplementedLedgerServer) DeleteExpense(context.Context, *DeleteExpenseRequest) (*Expense, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteExpense not implemented")
}

func (UnimplementedLedgerServer) ListExpenses(context.Context, *ListExpensesRequest) (*ListExpensesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListExpenses not implemented")
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateExpense", Handler: unaryHandler(methodCreate, LedgerServer.CreateExpense)},
		{MethodName: "GetExpense", Handler: unaryHandler(methodGet, LedgerServer.GetExpense)},
		{MethodName: "UpdateExpense", Handler: unaryHandler(methodUpdate, LedgerServer.UpdateExpense)},
		{MethodName: "DeleteExpense", Handler: unaryHandler(methodDelete, LedgerServer.DeleteExpense)},
		{MethodName: "ListExpenses", Handler: unaryHandler(methodList, LedgerServer.ListExpenses)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger.json",
}

type methodHandler = func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error)

func unaryHandler[Req, Resp any](fullMethod string, call func(LedgerServer, context.Context, *Req) (*Resp, error)) methodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(LedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type LedgerClient interface {
	CreateExpense(ctx context.Context, in *CreateExpenseRequest, opts ...grpc.CallOption) (*Expense, error)
	GetExpense(ctx context.Context, in *GetExpenseRequest, opts ...grpc.CallOption) (*Expense, error)
	UpdateExpense(ctx context.Context, in *UpdateExpenseRequest, opts ...grpc.CallOption) (*Expense, error)
	DeleteExpense(ctx context.Context, in *DeleteExpenseRequest, opts ...grpc.CallOption) (*Expense, error)
	ListExpenses(ctx context.Context, in *ListExpensesRequest, opts ...grpc.CallOption) (*ListExpensesResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerClient returns a client that always speaks the JSON codec.
func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc: cc}
}

func (c *ledgerClient) CreateExpense(ctx context.Context, in *CreateExpenseRequest, opts ...grpc.CallOption) (*Expense, error) {
	return invoke[Expense](ctx, c.cc, methodCreate, in, opts)
}

func (c *ledgerClient) GetExpense(ctx context.Context, in *GetExpenseRequest, opts ...grpc.CallOption) (*Expense, error) {
	return invoke[Expense](ctx, c.cc, methodGet, in, opts)
}

func (c *ledgerClient) UpdateExpense(ctx context.Context, in *UpdateExpenseRequest, opts ...grpc.CallOption) (*Expense, error) {
	return invoke[Expense](ctx, c.cc, methodUpdate, in, opts)
}

func (c *ledgerClient) DeleteExpense(ctx context.Context, in *DeleteExpenseRequest, opts ...grpc.CallOption) (*Expense, error) {
	return invoke[Expense](ctx, c.cc, methodDelete, in, opts)
}

func (c *ledgerClient) ListExpenses(ctx context.Context, in *ListExpensesRequest, opts ...grpc.CallOption) (*ListExpensesResponse, error) {
	return invoke[ListExpensesResponse](ctx, c.cc, methodList, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
