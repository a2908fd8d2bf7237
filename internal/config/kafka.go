package config

// Kafka configures the analytics event producer. An empty address list disables it.
type Kafka struct {
	Addresses   []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	EventsTopic string   `env:"KAFKA_TOPIC_EVENTS" envDefault:"storefront.events"`
}

func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
