package scaffold

import (
	"fmt"

	"github.com/pgxgen/pgxgen/internal/templates"
)

// Variant selects the entry-point template.
type Variant int

const (
	// Standard renders a plain extension with one example function.
	Standard Variant = iota
	// Worker renders a background worker extension.
	Worker
)

// VariantFromFlag maps the --bgworker flag to a Variant.
func VariantFromFlag(bgworker bool) Variant {
	if bgworker {
		return Worker
	}
	return Standard
}

// ParseVariant parses "standard" or "worker".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "standard", "":
		return Standard, nil
	case "worker":
		return Worker, nil
	default:
		return Standard, fmt.Errorf("unknown variant %q: must be 'standard' or 'worker'", s)
	}
}

// String returns the configuration name of the variant.
func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Worker:
		return "worker"
	default:
		return "unknown"
	}
}

func (v Variant) entryPoint() templates.ID {
	if v == Worker {
		return templates.BgworkerLibRs
	}
	return templates.LibRs
}
