package config

type Config struct {
	Agent  AgentConfig  `yaml:"agent"`
	Modem  ModemConfig  `yaml:"modem"`
	Influx InfluxConfig `yaml:"influxdb"`
	Loki   LokiConfig   `yaml:"loki"`
	Worker WorkerConfig `yaml:"worker"`
}

type AgentConfig struct {
	LogLevel string `yaml:"log_level"`
}

type ModemConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Scheme    string `yaml:"scheme"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	VerifySSL bool   `yaml:"verify_ssl"`
}

type InfluxConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

type LokiConfig struct {
	URL    string            `yaml:"url"`
	Tenant string            `yaml:"tenant"`
	Labels map[string]string `yaml:"labels"`
}

type WorkerConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	LogHistorySize      int `yaml:"log_history_size"`
}
