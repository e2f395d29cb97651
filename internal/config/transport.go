package config

type GRPCConfig struct {
	ListenAddr string `yaml:"listen"`
	LedgerAddr string `yaml:"ledger-addr"`
}

func (s *GRPCConfig) Listen() string {
	if s.ListenAddr == "" {
		return ":50051"
	}
	return s.ListenAddr
}

func (s *GRPCConfig) Ledger() string {
	if s.LedgerAddr == "" {
		return "127.0.0.1:50051"
	}
	return s.LedgerAddr
}

type HTTPConfig struct {
	ListenAddr string `yaml:"listen"`
}

func (s *HTTPConfig) Listen() string {
	if s.ListenAddr == "" {
		return ":8000"
	}
	return s.ListenAddr
}

type JaegerConfig struct {
	AgentAddr string `yaml:"agent"`
}

func (s *JaegerConfig) Agent() string {
	return s.AgentAddr
}
