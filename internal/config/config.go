package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileEnv     = "CONFIG_FILE"
	defaultConfigFile = "data/config.yaml"
)

// environment overrides, secrets are not expected in the yaml file
const (
	telegramTokenEnv    = "TELEGRAM_TOKEN"
	postgresPasswordEnv = "POSTGRES_PASSWORD"
	fixerApiKeyEnv      = "FIXER_API_KEY"
	ledgerAddrEnv       = "LEDGER_ADDR"
	s3SecretKeyEnv      = "S3_SECRET_KEY"
)

type config struct {
	App       AppConfig       `yaml:"app"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Rates     RatesConfig     `yaml:"rates"`
	Fixer     FixerConfig     `yaml:"fixer"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	HTTP      HTTPConfig      `yaml:"http"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Memcached MemcachedConfig `yaml:"memcached"`
	S3        S3Config        `yaml:"s3"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
}

type Service struct {
	config config
}

// New loads .env (if any), the yaml file named by CONFIG_FILE and the environment overrides.
func New() (*Service, error) {
	_ = godotenv.Load()

	path := os.Getenv(configFileEnv)
	if path == "" {
		path = defaultConfigFile
	}
	return Load(path)
}

func Load(path string) (*Service, error) {
	s := &Service{}

	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	s.applyEnv()
	return s, nil
}

func (s *Service) applyEnv() {
	override(&s.config.Telegram.ApiToken, telegramTokenEnv)
	override(&s.config.Postgres.Pswd, postgresPasswordEnv)
	override(&s.config.Fixer.FixerApiKey, fixerApiKeyEnv)
	override(&s.config.GRPC.LedgerAddr, ledgerAddrEnv)
	override(&s.config.S3.SecretKey, s3SecretKeyEnv)
}

func override(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Rates() *RatesConfig {
	return &s.config.Rates
}

func (s *Service) Fixer() *FixerConfig {
	return &s.config.Fixer
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) GRPC() *GRPCConfig {
	return &s.config.GRPC
}

func (s *Service) HTTP() *HTTPConfig {
	return &s.config.HTTP
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) S3() *S3Config {
	return &s.config.S3
}

func (s *Service) Jaeger() *JaegerConfig {
	return &s.config.Jaeger
}
