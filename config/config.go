package config

import (
	"os"
	"time"

	"lyrical-api/logcolors"
	"lyrical-api/services/nlp"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// ConfigFileEnv names an optional env file that is loaded before .env
const ConfigFileEnv = "LYRICAL_CONFIG"

type Config struct {
	Server struct {
		Port                int      `envconfig:"PORT" default:"8000"`
		Debug               bool     `envconfig:"DEBUG" default:"false"`
		CORSAllowedOrigins  []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
		ShutdownTimeoutSecs int      `envconfig:"SHUTDOWN_TIMEOUT_SECS" default:"10"`
	}

	Genius struct {
		AccessToken        string `envconfig:"GENIUS_ACCESS_TOKEN" default:""`
		BaseURL            string `envconfig:"GENIUS_BASE_URL" default:"https://api.genius.com"`
		UserAgent          string `envconfig:"GENIUS_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
		RequestTimeoutSecs int    `envconfig:"GENIUS_REQUEST_TIMEOUT_SECS" default:"10"` // per outbound call
	}

	Wordcloud struct {
		Workers  int `envconfig:"WORDCLOUD_WORKERS" default:"5"`
		MaxWords int `envconfig:"WORDCLOUD_MAX_WORDS" default:"100"`
	}

	Sentry struct {
		DSN         string `envconfig:"SENTRY_DSN" default:""`
		Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"development"`
		Release     string `envconfig:"RELEASE" default:""`
	}
}

// RequestTimeout returns the per-call timeout for provider requests
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Genius.RequestTimeoutSecs) * time.Second
}

// ShutdownTimeout returns how long in-flight requests get on shutdown
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSecs) * time.Second
}

// loadEnvFiles loads the configured env file, then .env, then .env.local.
// godotenv never overrides variables that are already set, so earlier files win.
func loadEnvFiles() {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Warnf("%s Error loading %s=%s: %v", logcolors.LogConfig, ConfigFileEnv, path, err)
		}
	}

	if err := godotenv.Load(); err == nil {
		return
	}
	if err := godotenv.Load(".env.local"); err != nil {
		log.Warnf("%s No .env or .env.local file found, using environment variables", logcolors.LogConfig)
	}
}

// Load reads configuration from env files and the environment.
func Load() (Config, error) {
	loadEnvFiles()

	cfg := Config{}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()

	if cfg.Genius.AccessToken == "" {
		log.Warnf("%s GENIUS_ACCESS_TOKEN is not set, provider requests will be rejected", logcolors.LogConfig)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	if c.Wordcloud.Workers <= 0 {
		c.Wordcloud.Workers = 1
	}
	if c.Wordcloud.MaxWords <= 0 || c.Wordcloud.MaxWords > nlp.DefaultMaxWords {
		c.Wordcloud.MaxWords = nlp.DefaultMaxWords
	}
	if c.Genius.RequestTimeoutSecs <= 0 {
		c.Genius.RequestTimeoutSecs = 10
	}
	if c.Server.ShutdownTimeoutSecs <= 0 {
		c.Server.ShutdownTimeoutSecs = 10
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
}
