package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/clients/privatbank"
	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/model/rates/mock"
)

type timeoutConfig time.Duration

func (c timeoutConfig) Timeout() time.Duration { return time.Duration(c) }

func Test_Resolve_ShouldReturnLiveRate(t *testing.T) {
	source := &mock.SourceMock{}
	source.On("FetchRaw", tmock.Anything).Return([]byte("raw"), nil).Once()
	source.On("ParseRate", []byte("raw")).Return(decimal.RequireFromString("40.10"), nil).Once()

	rate := NewResolver(source, timeoutConfig(time.Second)).Resolve(context.Background())

	assert.True(t, decimal.RequireFromString("40.10").Equal(rate))
	source.AssertExpectations(t)
}

func Test_Resolve_ShouldFallBackOnFetchError(t *testing.T) {
	source := &mock.SourceMock{}
	source.On("FetchRaw", tmock.Anything).Return(nil, errors.New("connection refused")).Once()

	rate := NewResolver(source, timeoutConfig(time.Second)).Resolve(context.Background())

	assert.True(t, currency.FallbackRate.Equal(rate))
	source.AssertNotCalled(t, "ParseRate", tmock.Anything)
}

func Test_Resolve_ShouldFallBackOnParseError(t *testing.T) {
	source := &mock.SourceMock{}
	source.On("FetchRaw", tmock.Anything).Return([]byte("<html>"), nil).Once()
	source.On("ParseRate", tmock.Anything).Return(decimal.Zero, errors.New("no rate")).Once()

	rate := NewResolver(source, timeoutConfig(time.Second)).Resolve(context.Background())

	assert.True(t, currency.FallbackRate.Equal(rate))
}

func Test_Resolve_ShouldFallBackOnNonPositiveRate(t *testing.T) {
	source := &mock.SourceMock{}
	source.On("FetchRaw", tmock.Anything).Return([]byte("0"), nil).Once()
	source.On("ParseRate", tmock.Anything).Return(decimal.Zero, nil).Once()

	rate := NewResolver(source, timeoutConfig(time.Second)).Resolve(context.Background())

	assert.True(t, currency.FallbackRate.Equal(rate))
}

func Test_Resolve_ShouldNotCacheBetweenCalls(t *testing.T) {
	source := &mock.SourceMock{}
	source.On("FetchRaw", tmock.Anything).Return([]byte("a"), nil).Twice()
	source.On("ParseRate", tmock.Anything).Return(decimal.RequireFromString("40"), nil).Once()
	source.On("ParseRate", tmock.Anything).Return(decimal.RequireFromString("42"), nil).Once()

	r := NewResolver(source, timeoutConfig(time.Second))
	first := r.Resolve(context.Background())
	second := r.Resolve(context.Background())

	assert.True(t, decimal.RequireFromString("40").Equal(first))
	assert.True(t, decimal.RequireFromString("42").Equal(second))
	source.AssertExpectations(t)
}

func Test_Resolve_ShouldFallBackWhenSourceHangs(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	r := NewResolver(privatbank.New(srv.URL, srv.Client()), timeoutConfig(50*time.Millisecond))

	start := time.Now()
	rate := r.Resolve(context.Background())

	require.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, currency.FallbackRate.Equal(rate))
}
