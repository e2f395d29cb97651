package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
telegram:
  token: from-file
rates:
  source: minfin
  timeout-seconds: 3
postgres:
  host: db
  db: expenses
  username: tracker
  password: secret
kafka:
  brokers: ["kafka:9092"]
  events-topic: expenses
memcached:
  hosts: ["cache:11211"]
  session-ttl-seconds: 600
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_Load_ShouldReadYAMLSections(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Telegram().Token())
	assert.Equal(t, RateSourceMinfin, cfg.Rates().Source())
	assert.Equal(t, 3*time.Second, cfg.Rates().Timeout())
	assert.Equal(t, "user=tracker password=secret host=db port=5432 dbname=expenses sslmode=disable", cfg.Postgres().DSN())
	assert.Equal(t, DriverPostgres, cfg.Postgres().Driver())
	assert.True(t, cfg.Kafka().Enabled())
	assert.Equal(t, "expenses", cfg.Kafka().EventsTopic())
	assert.Equal(t, 10*time.Minute, cfg.Memcached().SessionTTL())
	assert.False(t, cfg.S3().Enabled())
}

func Test_Load_ShouldApplyDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "telegram:\n  token: x\n"))
	require.NoError(t, err)

	assert.Equal(t, RateSourcePrivatBank, cfg.Rates().Source())
	assert.Equal(t, 5*time.Second, cfg.Rates().Timeout())
	assert.Equal(t, ":50051", cfg.GRPC().Listen())
	assert.Equal(t, "127.0.0.1:50051", cfg.GRPC().Ledger())
	assert.Equal(t, ":8000", cfg.HTTP().Listen())
	assert.False(t, cfg.Kafka().Enabled())
	assert.False(t, cfg.Memcached().Enabled())
}

func Test_Load_ShouldPreferEnvironmentSecrets(t *testing.T) {
	t.Setenv(telegramTokenEnv, "from-env")
	t.Setenv(postgresPasswordEnv, "env-secret")
	t.Setenv(ledgerAddrEnv, "ledger:9000")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Telegram().Token())
	assert.Contains(t, cfg.Postgres().DSN(), "password=env-secret")
	assert.Equal(t, "ledger:9000", cfg.GRPC().Ledger())
}

func Test_Load_ShouldFailOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
