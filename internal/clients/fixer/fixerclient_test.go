package fixer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticKey string

func (k staticKey) ApiKey() string { return string(k) }

func Test_FetchRaw_ShouldSendKeyAndSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "UAH", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"success":true,"base":"USD","rates":{"UAH":41.3}}`))
	}))
	defer srv.Close()

	c := New(staticKey("secret"), srv.URL, srv.Client())
	raw, err := c.FetchRaw(context.Background())
	require.NoError(t, err)

	rate, err := c.ParseRate(raw)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("41.3").Equal(rate))
}

func Test_ParseRate_ShouldFailWhenNotSuccessful(t *testing.T) {
	_, err := New(staticKey(""), "", nil).ParseRate([]byte(`{"success":false}`))
	assert.Error(t, err)
}

func Test_ParseRate_ShouldFailWithoutUAH(t *testing.T) {
	_, err := New(staticKey(""), "", nil).ParseRate([]byte(`{"success":true,"rates":{"EUR":0.9}}`))
	assert.Error(t, err)
}
