package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL      = "https://mapping-test.fra1.digitaloceanspaces.com"
	defaultPollInterval = 300 * time.Second
	defaultHTTPTimeout  = 15 * time.Second

	configPathEnv   = "ARTICLE_INGEST_CONFIG"
	baseURLEnv      = "SOURCE_BASE_URL"
	pollIntervalEnv = "POLL_INTERVAL"
	logLevelEnv     = "LOG_LEVEL"
	httpTimeoutEnv  = "HTTP_TIMEOUT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Poller    PollerConfig    `yaml:"poller"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig locates the remote catalog and its article/media endpoints.
type SourceConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// PollerConfig defines the catalog re-check cadence. SerializeBatches makes a
// poll cycle wait for its batch to finish before the next tick is honored;
// the default lets the timer run independently of in-flight processing.
type PollerConfig struct {
	Interval         string `yaml:"interval"`
	SerializeBatches bool   `yaml:"serializeBatches"`
}

// IntervalDuration resolves the interval string, reverting to the default on
// absent or unparsable values.
func (p PollerConfig) IntervalDuration() time.Duration {
	if p.Interval == "" {
		return defaultPollInterval
	}
	d, err := time.ParseDuration(p.Interval)
	if err != nil || d <= 0 {
		log.Printf("config: bad poll interval %q, reverting to %s", p.Interval, defaultPollInterval)
		return defaultPollInterval
	}
	return d
}

// TransportConfig describes the HTTP client used for all fetches.
type TransportConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"userAgent"`
}

// TimeoutDuration resolves the timeout string, reverting to the default on
// absent or unparsable values.
func (t TransportConfig) TimeoutDuration() time.Duration {
	if t.Timeout == "" {
		return defaultHTTPTimeout
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil || d <= 0 {
		log.Printf("config: bad http timeout %q, reverting to %s", t.Timeout, defaultHTTPTimeout)
		return defaultHTTPTimeout
	}
	return d
}

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(baseURLEnv); v != "" {
		c.Source.BaseURL = v
	}

	if v := os.Getenv(pollIntervalEnv); v != "" {
		c.Poller.Interval = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(httpTimeoutEnv); v != "" {
		c.Transport.Timeout = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Source.BaseURL != "" {
		base.Source = override.Source
	}

	if override.Poller.Interval != "" {
		base.Poller.Interval = override.Poller.Interval
	}
	if override.Poller.SerializeBatches {
		base.Poller.SerializeBatches = true
	}

	if override.Transport.Timeout != "" {
		base.Transport.Timeout = override.Transport.Timeout
	}
	if override.Transport.UserAgent != "" {
		base.Transport.UserAgent = override.Transport.UserAgent
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Source: SourceConfig{BaseURL: defaultBaseURL},
		Poller: PollerConfig{Interval: "300s", SerializeBatches: false},
		Transport: TransportConfig{
			Timeout:   "15s",
			UserAgent: "ArticleIngest/1.0",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
