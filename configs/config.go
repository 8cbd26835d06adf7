package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	setDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(config *Config) {
	if config.Agent.LogLevel == "" {
		config.Agent.LogLevel = "INFO"
	}
	if config.Modem.Port == 0 {
		config.Modem.Port = 443
	}
	if config.Modem.Scheme == "" {
		config.Modem.Scheme = "https"
	}
	if config.Worker.PollIntervalSeconds == 0 {
		config.Worker.PollIntervalSeconds = 5
	}
	if config.Worker.LogHistorySize == 0 {
		config.Worker.LogHistorySize = 30
	}
	if len(config.Loki.Labels) == 0 {
		config.Loki.Labels = map[string]string{"app": "arris_agent"}
	}
}

func validateConfig(config *Config) error {
	if config.Modem.Host == "" {
		return fmt.Errorf("modem host is required")
	}
	if config.Modem.Username == "" {
		return fmt.Errorf("modem username is required")
	}
	if config.Modem.Password == "" {
		return fmt.Errorf("modem password is required")
	}
	if config.Influx.URL == "" {
		return fmt.Errorf("influxdb url is required")
	}
	if config.Influx.Bucket == "" {
		return fmt.Errorf("influxdb bucket is required")
	}
	if config.Loki.URL == "" {
		return fmt.Errorf("loki url is required")
	}
	return nil
}
