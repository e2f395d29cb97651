package privatbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-tracker/internal/entity/currency"
)

// coursid=11 selects the non-cash (card) rates
const pubInfoUrl = "https://api.privatbank.ua/p24api/pubinfo?exchange&json&coursid=11"

type Client struct {
	url    string
	client *http.Client
}

type rateEntry struct {
	Ccy     string `json:"ccy"`
	BaseCcy string `json:"base_ccy"`
	Buy     string `json:"buy"`
	Sale    string `json:"sale"`
}

func New(url string, client *http.Client) *Client {
	if url == "" {
		url = pubInfoUrl
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{url: url, client: client}
}

func (c *Client) Name() string {
	return "privatbank"
}

func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building privatbank request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting privatbank")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("privatbank responded with status %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading privatbank response")
	}
	return body, nil
}

// ParseRate takes the buy rate of the USD entry.
func (c *Client) ParseRate(raw []byte) (decimal.Decimal, error) {
	var entries []rateEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return decimal.Zero, errors.Wrap(err, "unmarshalling privatbank response")
	}

	for _, e := range entries {
		if !strings.EqualFold(e.Ccy, currency.Reference) {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(e.Buy))
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "parsing %s buy rate %q", e.Ccy, e.Buy)
		}
		return rate, nil
	}
	return decimal.Zero, fmt.Errorf("privatbank response has no %s entry", currency.Reference)
}
