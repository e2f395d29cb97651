package config

type AppConfig struct {
	ServiceName     string `yaml:"name"`
	AdminListenAddr string `yaml:"admin-listen"`
}

func (s *AppConfig) Name() string {
	return s.ServiceName
}

// AdminListen is where the bot serves /metrics and /healthz, empty disables it.
func (s *AppConfig) AdminListen() string {
	return s.AdminListenAddr
}
