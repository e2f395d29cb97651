package privatbank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
  {"ccy":"EUR","base_ccy":"UAH","buy":"44.95000","sale":"45.95000"},
  {"ccy":"USD","base_ccy":"UAH","buy":"41.25000","sale":"41.85000"}
]`

func Test_FetchRaw_ShouldReturnBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	raw, err := New(srv.URL, srv.Client()).FetchRaw(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, sampleResponse, string(raw))
}

func Test_FetchRaw_ShouldFailOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).FetchRaw(context.Background())
	assert.Error(t, err)
}

func Test_ParseRate_ShouldTakeUSDBuyRate(t *testing.T) {
	rate, err := New("", nil).ParseRate([]byte(sampleResponse))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("41.25").Equal(rate))
}

func Test_ParseRate_ShouldFailWithoutUSD(t *testing.T) {
	_, err := New("", nil).ParseRate([]byte(`[{"ccy":"EUR","buy":"44.9"}]`))
	assert.Error(t, err)
}

func Test_ParseRate_ShouldFailOnNonNumericRate(t *testing.T) {
	_, err := New("", nil).ParseRate([]byte(`[{"ccy":"USD","buy":"n/a"}]`))
	assert.Error(t, err)
}

func Test_ParseRate_ShouldFailOnUnexpectedShape(t *testing.T) {
	_, err := New("", nil).ParseRate([]byte(`{"error":"rate limit"}`))
	assert.Error(t, err)
}
