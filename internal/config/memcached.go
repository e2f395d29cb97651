package config

import "time"

type MemcachedConfig struct {
	NodeHosts         []string `yaml:"hosts"`
	SessionTTLSeconds int32    `yaml:"session-ttl-seconds"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

func (s *MemcachedConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLSeconds) * time.Second
}

func (s *MemcachedConfig) Enabled() bool {
	return len(s.NodeHosts) > 0
}
