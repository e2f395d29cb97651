package config

import "fmt"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const dsnTemplate = "user=%s password=%s host=%s port=%d dbname=%s sslmode=disable"

type PostgresConfig struct {
	DriverName string `yaml:"driver"`
	Hostname   string `yaml:"host"`
	PortNum    int    `yaml:"port"`
	Db         string `yaml:"db"`
	User       string `yaml:"username"`
	Pswd       string `yaml:"password"`
	// RawDSN wins over the discrete fields, for sqlite it is the file path.
	RawDSN string `yaml:"dsn"`
}

func (s *PostgresConfig) Driver() string {
	if s.DriverName == "" {
		return DriverPostgres
	}
	return s.DriverName
}

func (s *PostgresConfig) DSN() string {
	if s.RawDSN != "" {
		return s.RawDSN
	}
	port := s.PortNum
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf(dsnTemplate, s.User, s.Pswd, s.Hostname, port, s.Db)
}
