// Package config loads parse-mode setter configuration from a JSON file
// with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/xooniverse/parsemodesetter/pkg/parsemode"
)

var validate = validator.New()

// Config is the installable middleware configuration. JSON fields absent
// from the file keep their defaults; environment variables win over both.
type Config struct {
	Token   string `json:"token,omitempty"    env:"PMS_BOT_TOKEN"`
	APIBase string `json:"api_base,omitempty" env:"PMS_API_BASE"`

	ParseMode string `json:"parse_mode" env:"PMS_PARSE_MODE" validate:"required,oneof=Markdown MarkdownV2 HTML"`

	// Method allow/deny overrides. Empty allowed_methods means the built-in
	// default list. A method on both lists is excluded: deny wins.
	AllowedMethods    []string `json:"allowed_methods,omitempty"    env:"PMS_ALLOWED_METHODS"`
	DisallowedMethods []string `json:"disallowed_methods,omitempty" env:"PMS_DISALLOWED_METHODS"`

	SetPollQuestion    bool `json:"set_poll_question"    env:"PMS_SET_POLL_QUESTION"`
	SetPollExplanation bool `json:"set_poll_explanation" env:"PMS_SET_POLL_EXPLANATION"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ParseMode:          parsemode.HTML.String(),
		SetPollQuestion:    true,
		SetPollExplanation: true,
	}
}

// LoadEnvFile loads a .env file if one exists in the working directory.
// Missing files are fine; real environment variables always win.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads configuration from path, overlays environment variables,
// and validates the result. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config: field %s failed %s validation", e.Field(), e.Tag())
		}
		return err
	}
	return nil
}

// Router builds the parse-mode router this configuration describes.
func (c *Config) Router() *parsemode.Router {
	opts := []parsemode.Option{
		parsemode.WithPollQuestion(c.SetPollQuestion),
		parsemode.WithPollExplanation(c.SetPollExplanation),
	}
	if len(c.AllowedMethods) > 0 {
		opts = append(opts, parsemode.WithAllowedMethods(toMethods(c.AllowedMethods)...))
	}
	if len(c.DisallowedMethods) > 0 {
		opts = append(opts, parsemode.WithDisallowedMethods(toMethods(c.DisallowedMethods)...))
	}
	return parsemode.New(parsemode.ParseMode(c.ParseMode), opts...)
}

func toMethods(names []string) []parsemode.Method {
	methods := make([]parsemode.Method, len(names))
	for i, name := range names {
		methods[i] = parsemode.Method(name)
	}
	return methods
}
