// Package config loads the YAML configuration shared by cmd/worker and
// cmd/corpsync, with optional .env overrides for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EDSMockPlaceholder is the sentinel API key value that, like an empty
// key, activates the EDS client's offline mock mode.
const EDSMockPlaceholder = "YOUR_API_KEY_HERE"

type EDSConfig struct {
	BaseURL           string `yaml:"base_url"`
	APIKey            string `yaml:"api_key"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
}

type KafkaConfig struct {
	Brokers         []string `yaml:"brokers"`
	InboundTopic    string   `yaml:"inbound_topic"`
	OutboundTopic   string   `yaml:"outbound_topic"`
	ConsumerGroupID string   `yaml:"consumer_group_id"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type Config struct {
	EDS   EDSConfig   `yaml:"eds"`
	Kafka KafkaConfig `yaml:"kafka"`
	DB    DBConfig    `yaml:"db"`
}

// Load reads and parses the YAML file at path. It first loads a .env
// file from the working directory (if present) into the process
// environment, then expands ${VAR} references in the YAML against that
// environment before parsing; the .env load failing silently is
// deliberate, matching local-dev usage in the pack (godotenv.Load is
// best-effort in every consumer here).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.EDS.TimeoutSeconds == 0 {
		c.EDS.TimeoutSeconds = 30
	}
	if c.EDS.RateLimitPerSecond == 0 {
		c.EDS.RateLimitPerSecond = 10
	}
	if c.Kafka.InboundTopic == "" {
		c.Kafka.InboundTopic = "partner-company-events"
	}
	if c.Kafka.OutboundTopic == "" {
		c.Kafka.OutboundTopic = "partner-company-restored"
	}
	if c.DB.SSLMode == "" {
		c.DB.SSLMode = "disable"
	}
}

// IsMockMode reports whether the EDS client should serve deterministic
// offline fixtures instead of calling out to the network.
func (e EDSConfig) IsMockMode() bool {
	return e.APIKey == "" || e.APIKey == EDSMockPlaceholder
}
