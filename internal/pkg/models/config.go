package models

// Config represents application configuration
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Games  GamesConfig  `mapstructure:"games"`
	Broker BrokerConfig `mapstructure:"broker"`
	Store  StoreConfig  `mapstructure:"store"`
	Status StatusConfig `mapstructure:"status"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	Version     string `mapstructure:"version"`
}

// AuthConfig contains the identity issuer endpoint configuration
type AuthConfig struct {
	URL     string `mapstructure:"url"`     // base URL of the auth service, e.g. http://localhost:8082/v1/auth
	Timeout int    `mapstructure:"timeout"` // request timeout in seconds
}

// GamesConfig contains the game service endpoint configuration
type GamesConfig struct {
	URL     string `mapstructure:"url"`     // base URL of the game service, e.g. http://localhost:8081
	Timeout int    `mapstructure:"timeout"` // request timeout in seconds
}

// BrokerConfig contains the alert broker connection configuration
type BrokerConfig struct {
	URL               string `mapstructure:"url"`                 // NATS server URL
	Subject           string `mapstructure:"subject"`             // admin alert subject
	ReconnectWaitSec  int    `mapstructure:"reconnect_wait_sec"`  // fixed delay between reconnect attempts
	HeartbeatSec      int    `mapstructure:"heartbeat_sec"`       // ping interval for silent-failure detection
	MaxPingsOut       int    `mapstructure:"max_pings_out"`       // outstanding pings before the connection is declared dead
	ConnectTimeoutSec int    `mapstructure:"connect_timeout_sec"` // initial dial timeout
}

// StoreConfig contains the durable session store configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // SQLite file path; empty means the per-user default location
}

// StatusConfig contains the local status endpoint served in watch mode
type StatusConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// AudioConfig contains the notification sound configuration
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sample_rate"`
	ToneHz     float64 `mapstructure:"tone_hz"`
	DurationMs int     `mapstructure:"duration_ms"`
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	FilePath string `mapstructure:"file_path"`
}
