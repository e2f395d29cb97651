package rates

import (
	"fmt"
	"net/http"
	"time"

	"max.ks1230/expense-tracker/internal/clients/fixer"
	"max.ks1230/expense-tracker/internal/clients/minfin"
	"max.ks1230/expense-tracker/internal/clients/privatbank"
	appconfig "max.ks1230/expense-tracker/internal/config"
)

type sourceConfig interface {
	Source() string
	URL() string
	Timeout() time.Duration
}

type apiKeyGetter interface {
	ApiKey() string
}

// NewSource picks the rate source named in the configuration.
func NewSource(cfg sourceConfig, fixerKey apiKeyGetter) (Source, error) {
	client := &http.Client{Timeout: cfg.Timeout()}

	switch cfg.Source() {
	case appconfig.RateSourcePrivatBank:
		return privatbank.New(cfg.URL(), client), nil
	case appconfig.RateSourceMinfin:
		return minfin.New(cfg.URL(), client), nil
	case appconfig.RateSourceFixer:
		return fixer.New(fixerKey, cfg.URL(), client), nil
	}
	return nil, fmt.Errorf("unknown rate source %q", cfg.Source())
}
