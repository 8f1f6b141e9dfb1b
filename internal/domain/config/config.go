package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConnectTimeout = 3 * time.Second
	DefaultRequestTimeout = 3 * time.Second
	DefaultUserAgent      = "uri-title/1.1.7"
	DefaultMaxIdleConns   = 10
	DefaultServiceName    = "uri-title"
)

const (
	EnvFile             = "URI_TITLE_ENV_FILE"
	EnvConnectTimeout   = "URI_TITLE_CONNECT_TIMEOUT"
	EnvRequestTimeout   = "URI_TITLE_REQUEST_TIMEOUT"
	EnvUserAgent        = "URI_TITLE_USER_AGENT"
	EnvRejectEmptyTitle = "URI_TITLE_REJECT_EMPTY_TITLE"
	EnvLogLevel         = "URI_TITLE_LOG_LEVEL"
	EnvLogDevelopment   = "URI_TITLE_LOG_DEV"
	EnvOTLPEndpoint     = "URI_TITLE_OTLP_ENDPOINT"
)

var (
	ErrNonPositiveTimeout = errors.New("timeout must be positive")
	ErrEmptyUserAgent     = errors.New("user agent must not be empty")
)

type Config struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	UserAgent      string        `yaml:"user_agent"`
	MaxIdleConns   int           `yaml:"max_idle_conns"`

	// RejectEmptyTitle turns a present but blank <title> into an HtmlError.
	RejectEmptyTitle bool `yaml:"reject_empty_title"`

	Log     LogConfig     `yaml:"log"`
	Tracing TracingConfig `yaml:"tracing"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type TracingConfig struct {
	// OTLPEndpoint is host:port of an OTLP/HTTP collector. Empty disables export.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

func Default() *Config {
	return &Config{
		ConnectTimeout: DefaultConnectTimeout,
		RequestTimeout: DefaultRequestTimeout,
		UserAgent:      DefaultUserAgent,
		MaxIdleConns:   DefaultMaxIdleConns,
		Log: LogConfig{
			Level: "info",
		},
		Tracing: TracingConfig{
			ServiceName: DefaultServiceName,
		},
	}
}

// Load builds a Config from defaults, the optional YAML file at path, any
// .env file and finally URI_TITLE_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadEnvFile() error {
	if envFile := os.Getenv(EnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvConnectTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConnectTimeout, err)
		}
		c.ConnectTimeout = d
	}

	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}

	if v, ok := lookup(EnvUserAgent); ok {
		c.UserAgent = v
	}

	if v, ok := lookup(EnvRejectEmptyTitle); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRejectEmptyTitle, err)
		}
		c.RejectEmptyTitle = b
	}

	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}

	if v, ok := lookup(EnvLogDevelopment); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogDevelopment, err)
		}
		c.Log.Development = b
	}

	if v, ok := lookup(EnvOTLPEndpoint); ok {
		c.Tracing.OTLPEndpoint = v
	}

	return nil
}

func (c *Config) Validate() error {
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout %s: %w", c.ConnectTimeout, ErrNonPositiveTimeout)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout %s: %w", c.RequestTimeout, ErrNonPositiveTimeout)
	}

	if c.UserAgent == "" {
		return ErrEmptyUserAgent
	}

	return nil
}
