// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the inquiry tool.
type Config struct {
	DataDir           string        `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile           string        `mapstructure:"log_file" yaml:"log_file"`
	SubmitTimeout     time.Duration `mapstructure:"submit_timeout" yaml:"submit_timeout"`
	BannerDuration    time.Duration `mapstructure:"banner_duration" yaml:"banner_duration"`
	UploadAttachments bool          `mapstructure:"upload_attachments" yaml:"upload_attachments"`
	RetentionDays     int           `mapstructure:"retention_days" yaml:"retention_days"`
}

// Defaults
const (
	DefaultDataDir        = ".inquiry"
	DefaultLogLevel       = "info"
	DefaultSubmitTimeout  = 15 * time.Second
	DefaultBannerDuration = 5 * time.Second
	DefaultRetentionDays  = 365
)

// Default returns a config with every value at its default.
func Default() *Config {
	return &Config{
		DataDir:           DefaultDataDir,
		LogLevel:          DefaultLogLevel,
		SubmitTimeout:     DefaultSubmitTimeout,
		BannerDuration:    DefaultBannerDuration,
		UploadAttachments: true,
		RetentionDays:     DefaultRetentionDays,
	}
}

// envBindings maps config keys to their environment variables.
var envBindings = [][2]string{
	{"data_dir", "INQUIRY_DATA_DIR"},
	{"log_level", "INQUIRY_LOG_LEVEL"},
	{"log_file", "INQUIRY_LOG_FILE"},
	{"submit_timeout", "INQUIRY_SUBMIT_TIMEOUT"},
	{"banner_duration", "INQUIRY_BANNER_DURATION"},
	{"upload_attachments", "INQUIRY_UPLOAD_ATTACHMENTS"},
	{"retention_days", "INQUIRY_RETENTION_DAYS"},
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("inquiry")

	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("submit_timeout", def.SubmitTimeout)
	v.SetDefault("banner_duration", def.BannerDuration)
	v.SetDefault("upload_attachments", def.UploadAttachments)
	v.SetDefault("retention_days", def.RetentionDays)

	v.SetEnvPrefix("INQUIRY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so durations and bools parse from env
	for _, b := range envBindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", b[0], err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the wizard cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if c.SubmitTimeout <= 0 {
		errs = append(errs, fmt.Errorf("submit_timeout must be positive, got %s", c.SubmitTimeout))
	}
	if c.BannerDuration <= 0 {
		errs = append(errs, fmt.Errorf("banner_duration must be positive, got %s", c.BannerDuration))
	}
	if c.RetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("retention_days must be positive, got %d", c.RetentionDays))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Retention returns the stream retention as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/inquiry/inquiry.yml or $XDG_CONFIG_HOME/inquiry/inquiry.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inquiry", "inquiry.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "inquiry", "inquiry.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "inquiry.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	// yaml.v3 writes durations as nanosecond integers; strings read back cleanly
	out := struct {
		DataDir           string `yaml:"data_dir"`
		LogLevel          string `yaml:"log_level"`
		LogFile           string `yaml:"log_file"`
		SubmitTimeout     string `yaml:"submit_timeout"`
		BannerDuration    string `yaml:"banner_duration"`
		UploadAttachments bool   `yaml:"upload_attachments"`
		RetentionDays     int    `yaml:"retention_days"`
	}{
		DataDir:           cfg.DataDir,
		LogLevel:          cfg.LogLevel,
		LogFile:           cfg.LogFile,
		SubmitTimeout:     cfg.SubmitTimeout.String(),
		BannerDuration:    cfg.BannerDuration.String(),
		UploadAttachments: cfg.UploadAttachments,
		RetentionDays:     cfg.RetentionDays,
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
