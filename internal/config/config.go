package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiID         int    `yaml:"api_id" env:"API_ID" env-default:"0"`
		ApiHash       string `yaml:"api_hash" env:"API_HASH" env-default:""`
		SessionString string `yaml:"session_string" env:"SESSION_STRING" env-default:""`
		SessionName   string `yaml:"session_name" env:"SESSION_NAME" env-default:""`
	} `yaml:"telegram"`
	Webhook struct {
		Url            string `yaml:"url" env:"WEBHOOK_URL" env-default:"" validate:"omitempty,url"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"WEBHOOK_TIMEOUT" env-default:"8"`
	} `yaml:"webhook"`
	Photos struct {
		Enabled bool   `yaml:"enabled" env:"CAPTURE_PHOTOS" env-default:"false"`
		Dir     string `yaml:"dir" env:"PHOTO_DIR" env-default:"photos"`
	} `yaml:"photos"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env:"PORT" env-default:"5000"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

// MustLoad reads the optional yaml file at path, applies environment
// overrides and validates the result. Any violation is fatal: the
// process cannot do anything useful without credentials.
func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance, err = Load(path)
		if err != nil {
			desc, _ := cleanenv.GetDescription(&Config{}, nil)
			log.Fatal(fmt.Errorf("%s; %s", err, desc))
		}
	})
	return instance
}

// Load is the testable core of MustLoad. A non-empty path must name an
// existing file; with no path the environment alone is read.
func Load(path string) (*Config, error) {
	conf := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, conf); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return conf, validate(conf)
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return conf, validate(conf)
}

func validate(conf *Config) error {
	if conf.Telegram.ApiID <= 0 {
		return fmt.Errorf("API_ID must be a positive integer")
	}
	if conf.Telegram.ApiHash == "" {
		return fmt.Errorf("API_HASH must be set")
	}
	if conf.Telegram.SessionString == "" && conf.Telegram.SessionName == "" {
		return fmt.Errorf("one of SESSION_STRING or SESSION_NAME must be set")
	}
	if conf.Telegram.SessionString != "" && conf.Telegram.SessionName != "" {
		return fmt.Errorf("SESSION_STRING and SESSION_NAME are mutually exclusive")
	}
	if conf.Webhook.TimeoutSeconds <= 0 {
		return fmt.Errorf("webhook timeout must be positive")
	}

	if err := validator.New().Struct(conf); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WebhookEnabled reports whether forwarding is configured. An empty url
// is a disabled feature, not an error.
func (c *Config) WebhookEnabled() bool {
	return c.Webhook.Url != ""
}

// FileSession reports whether the session is file backed rather than
// carried as a portable string.
func (c *Config) FileSession() bool {
	return c.Telegram.SessionName != ""
}

// SessionPath returns the session file location for file backed
// sessions, empty otherwise.
func (c *Config) SessionPath() string {
	if c.Telegram.SessionName == "" {
		return ""
	}
	return c.Telegram.SessionName + ".session"
}
