package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pgxgen/pgxgen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyVariant      = "variant"
	KeyStaged       = "staged"
	KeyTemplatesDir = "templates_dir"
	KeyLogFormat    = "log_format"
)

// Settings is the validated view of the user configuration.
type Settings struct {
	Variant      string `mapstructure:"variant" validate:"omitempty,oneof=standard worker"`
	Staged       bool   `mapstructure:"staged"`
	TemplatesDir string `mapstructure:"templates_dir" validate:"omitempty,dir"`
	LogFormat    string `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
}

var validate = validator.New()

// Keys returns every recognised configuration key.
func Keys() []string {
	return []string{KeyVariant, KeyStaged, KeyTemplatesDir, KeyLogFormat}
}

// Dir returns the path to the config directory (~/.pgxgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pgxgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment
// (PGXGEN_VARIANT, PGXGEN_STAGED, ...).
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyVariant, "standard")
	viper.SetDefault(KeyStaged, false)
	viper.SetDefault(KeyTemplatesDir, "")
	viper.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current decodes and validates the loaded configuration.
func Current() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", FilePath(), err)
	}
	return &s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	prev := viper.Get(key)
	viper.Set(key, value)
	if _, err := Current(); err != nil {
		viper.Set(key, prev)
		return err
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
