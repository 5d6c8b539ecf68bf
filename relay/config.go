package relay

import (
	"os"
	"strings"

	"github.com/driphq/drip/errors"
	"github.com/joho/godotenv"
)

// Config holds the connection settings of the event feed.
type Config struct {
	// Brokers is the kafka bootstrap list.
	Brokers []string
	// Topic receives all event envelopes.
	Topic string
}

// FromEnv loads the feed configuration from the environment, reading an
// optional .env file first. The relay is disabled when no brokers are
// configured.
func FromEnv() (*Config, error) {
	_ = godotenv.Load(".env")

	brokers := os.Getenv("RELAY_KAFKA_BROKERS")
	if brokers == "" {
		return nil, nil
	}
	topic := os.Getenv("RELAY_KAFKA_TOPIC")
	if topic == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "RELAY_KAFKA_TOPIC is required")
	}
	return &Config{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
	}, nil
}
