// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// process environment first so secrets can override YAML values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file and most can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite lead log.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// AdminToken guards the lead read-back endpoints. Empty disables them.
	AdminToken string `yaml:"admin_token" env:"ADMIN_TOKEN"`

	// CORSOrigins lists origins allowed to post forms cross-site.
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:","`

	HTTPServer  `yaml:"http_server"`
	Site        Site         `yaml:"site"`
	Analytics   Analytics    `yaml:"analytics"`
	Notify      Notify       `yaml:"notify"`
	Experiments []Experiment `yaml:"experiments"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Addr         string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Site describes the business the pages are rendered for.
type Site struct {
	Name       string `yaml:"name" env:"SITE_NAME" env-default:"SunVista Solar Design"`
	BaseURL    string `yaml:"base_url" env:"SITE_BASE_URL" env-default:"http://localhost:8082"`
	SalesInbox string `yaml:"sales_inbox" env:"SITE_SALES_INBOX" env-default:"hello@sunvista.example"`
	Phone      string `yaml:"phone" env:"SITE_PHONE"`
	// LeadMagnetURL is the download link mailed to new subscribers.
	LeadMagnetURL string `yaml:"lead_magnet_url" env:"SITE_LEAD_MAGNET_URL"`
}

// Analytics carries the tag identifiers injected into every page.
// Any empty identifier simply omits that tag.
type Analytics struct {
	GA4MeasurementID string `yaml:"ga4_measurement_id" env:"GA4_MEASUREMENT_ID" json:"ga4MeasurementId,omitempty"`
	GTMContainerID   string `yaml:"gtm_container_id" env:"GTM_CONTAINER_ID" json:"gtmContainerId,omitempty"`
	ClarityProjectID string `yaml:"clarity_project_id" env:"CLARITY_PROJECT_ID" json:"clarityProjectId,omitempty"`
}

// Notify selects how notification emails go out. With no SMTP host
// configured the messages are only logged.
type Notify struct {
	From         string `yaml:"from" env:"NOTIFY_FROM" env-default:"no-reply@sunvista.example"`
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser     string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
}

// Experiment is one A/B test with its variants.
type Experiment struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// MustLoad reads, validates, and returns the application config.
// It exits the process on any failure.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("cannot load .env file: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, applies env overrides and checks the
// result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Experiments))
	for _, exp := range c.Experiments {
		if exp.Name == "" {
			return errors.New("experiment name must not be empty")
		}
		if seen[exp.Name] {
			return fmt.Errorf("experiment %q declared twice", exp.Name)
		}
		seen[exp.Name] = true
		if len(exp.Variants) < 2 {
			return fmt.Errorf("experiment %q needs at least two variants", exp.Name)
		}
	}
	if c.Notify.SMTPHost != "" && c.Notify.From == "" {
		return errors.New("notify.from is required when smtp_host is set")
	}
	return nil
}
