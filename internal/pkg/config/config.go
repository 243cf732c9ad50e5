package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/zonagamer/console/internal/pkg/models"
)

// InitConfig loads configuration from (in priority order) environment
// variables, an optional YAML config file, and built-in defaults. When
// running locally a .env file is loaded first so env overrides work the
// same way in every environment.
func InitConfig(configPath string) *models.Config {
	env := GetEnv("APP_ENV", "local")
	if env == "local" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Println("error loading .env file", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("console")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "zonagamer"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// The binary must run with no config file present; defaults and
		// environment variables cover every knob.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			log.Println("error reading config file", err)
		}
	}

	cfg := &models.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		log.Println("error unmarshalling config, using defaults", err)
	}
	cfg.App.Environment = env

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "zonagamer-console")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "development")

	v.SetDefault("auth.url", "http://localhost:8082/v1/auth")
	v.SetDefault("auth.timeout", 10)

	v.SetDefault("games.url", "http://localhost:8081")
	v.SetDefault("games.timeout", 10)

	v.SetDefault("broker.url", "nats://localhost:4222")
	v.SetDefault("broker.subject", "admin.notifications.game")
	v.SetDefault("broker.reconnect_wait_sec", 5)
	v.SetDefault("broker.heartbeat_sec", 4)
	v.SetDefault("broker.max_pings_out", 2)
	v.SetDefault("broker.connect_timeout_sec", 5)

	v.SetDefault("store.path", "")

	v.SetDefault("status.enabled", true)
	v.SetDefault("status.port", 9990)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sample_rate", 44100.0)
	v.SetDefault("audio.tone_hz", 880.0)
	v.SetDefault("audio.duration_ms", 350)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file_path", "")
}

// GetEnv returns the environment variable value or a default
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
