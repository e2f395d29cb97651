package config

type KafkaConfig struct {
	BrokerList []string `yaml:"brokers"`
	Consumer   string   `yaml:"consumer-group"`
	EvTopic    string   `yaml:"events-topic"`
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) ConsumerGroup() string {
	return s.Consumer
}

func (s *KafkaConfig) EventsTopic() string {
	return s.EvTopic
}

// Enabled is false when no brokers are configured, events are then dropped.
func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}
