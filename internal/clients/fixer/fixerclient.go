package fixer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-tracker/internal/entity/currency"
)

const (
	latestRatesUrl = "https://api.apilayer.com/fixer/latest"
	baseParam      = "base"
	relativesParam = "symbols"
)

type apiKeyGetter interface {
	ApiKey() string
}

type Client struct {
	apiKey string
	url    string
	client *http.Client
}

type ratesResponse struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Success   bool                       `json:"success"`
	Timestamp int64                      `json:"timestamp"`
}

// New builds a client asking for UAH per one USD, url may be empty for the public endpoint.
func New(getter apiKeyGetter, url string, client *http.Client) *Client {
	if url == "" {
		url = latestRatesUrl
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{apiKey: getter.ApiKey(), url: url, client: client}
}

func (c *Client) Name() string {
	return "fixer"
}

func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building fixer request")
	}

	req.Header.Set("apikey", c.apiKey)
	q := req.URL.Query()
	q.Add(baseParam, currency.Reference)
	q.Add(relativesParam, currency.Local)
	req.URL.RawQuery = q.Encode()

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting fixer")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixer responded with status %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading fixer response")
	}
	return body, nil
}

func (c *Client) ParseRate(raw []byte) (decimal.Decimal, error) {
	rates := ratesResponse{}
	err := json.Unmarshal(raw, &rates)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "unmarshalling response")
	}

	if !rates.Success {
		return decimal.Zero, errors.New("error from fixer (success = false)")
	}

	rate, ok := rates.Rates[currency.Local]
	if !ok {
		return decimal.Zero, fmt.Errorf("fixer response has no %s rate", currency.Local)
	}
	return rate, nil
}
