package mock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type SourceMock struct {
	mock.Mock
}

func (m *SourceMock) Name() string {
	return "mock"
}

func (m *SourceMock) FetchRaw(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *SourceMock) ParseRate(raw []byte) (decimal.Decimal, error) {
	args := m.Called(raw)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
