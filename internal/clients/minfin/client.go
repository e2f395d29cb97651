// Package minfin scrapes the NBU rate table of minfin.com.ua.
package minfin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	nbuPageUrl = "https://minfin.com.ua/currency/nbu/"
	usdLabel   = "Доллар США"
	// the cell holds the rate followed by the daily change, e.g. "41,2534+0,05"
	rateChars = 5
)

type Client struct {
	url    string
	client *http.Client
}

func New(url string, client *http.Client) *Client {
	if url == "" {
		url = nbuPageUrl
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{url: url, client: client}
}

func (c *Client) Name() string {
	return "minfin"
}

func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building minfin request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; expense-tracker)")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting minfin")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("minfin responded with status %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading minfin page")
	}
	return body, nil
}

func (c *Client) ParseRate(raw []byte) (decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parsing minfin page")
	}

	label := doc.Find("td").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == usdLabel
	}).First()
	if label.Length() == 0 {
		return decimal.Zero, fmt.Errorf("minfin page has no %q row", usdLabel)
	}

	cell := label.NextAllFiltered("td").First()
	div := cell.Find("div").First()
	if div.Length() == 0 {
		return decimal.Zero, errors.New("minfin rate cell has no value")
	}

	text := []rune(strings.TrimSpace(div.Text()))
	if len(text) > rateChars {
		text = text[:rateChars]
	}
	value := strings.ReplaceAll(string(text), ",", ".")

	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parsing minfin rate %q", value)
	}
	return rate, nil
}
