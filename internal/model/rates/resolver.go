package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/logger"
)

// Source fetches the UAH per USD rate, raw fetching and parsing are separate so a source
// can be swapped between a structured API and page scraping.
type Source interface {
	Name() string
	FetchRaw(ctx context.Context) ([]byte, error)
	ParseRate(raw []byte) (decimal.Decimal, error)
}

type config interface {
	Timeout() time.Duration
}

type Resolver struct {
	source   Source
	timeout  time.Duration
	fallback decimal.Decimal
}

func NewResolver(source Source, config config) *Resolver {
	return &Resolver{
		source:   source,
		timeout:  config.Timeout(),
		fallback: currency.FallbackRate,
	}
}

// Resolve always returns a positive rate: the live one, or currency.FallbackRate when the
// source fails, times out or returns something unusable. Nothing is cached between calls.
func (r *Resolver) Resolve(ctx context.Context) decimal.Decimal {
	span, ctx := opentracing.StartSpanFromContext(ctx, "resolveRate")
	defer span.Finish()
	span.SetTag("source", r.source.Name())

	start := time.Now()
	rate, err := r.fetch(ctx)
	observeResolution(r.source.Name(), time.Since(start), err != nil)

	if err != nil {
		ext.Error.Set(span, true)
		logger.Warn("rate resolution failed, using fallback",
			zap.String("source", r.source.Name()),
			zap.String("fallback", r.fallback.String()),
			zap.Error(err),
		)
		return r.fallback
	}

	logger.Debug("resolved rate", zap.String("source", r.source.Name()), zap.String("rate", rate.String()))
	return rate
}

func (r *Resolver) fetch(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.source.FetchRaw(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "fetch rate")
	}

	rate, err := r.source.ParseRate(raw)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse rate")
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s", rate)
	}
	return rate, nil
}
