// Package config manages user-level settings stored at ~/.pgxgen/config.yaml.
// Every key can also be set through a PGXGEN_-prefixed environment variable.
// Settings are decoded with Viper and checked with struct validation tags
// before any command uses them.
package config
