package config

import "time"

const (
	RateSourcePrivatBank = "privatbank"
	RateSourceMinfin     = "minfin"
	RateSourceFixer      = "fixer"

	defaultRateTimeout = 5 * time.Second
)

type RatesConfig struct {
	SourceName     string `yaml:"source"`
	SourceURL      string `yaml:"url"`
	TimeoutSeconds int64  `yaml:"timeout-seconds"`
}

func (s *RatesConfig) Source() string {
	if s.SourceName == "" {
		return RateSourcePrivatBank
	}
	return s.SourceName
}

// URL overrides the default endpoint of the chosen source when not empty.
func (s *RatesConfig) URL() string {
	return s.SourceURL
}

func (s *RatesConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultRateTimeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}
