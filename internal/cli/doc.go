// Package cli defines the Cobra command tree for the pgxgen CLI. Each file
// in this package registers one top-level command (new, templates, config,
// version) with the root command. Commands delegate to internal packages for
// the actual work and only handle flags, configuration and output formatting.
package cli
