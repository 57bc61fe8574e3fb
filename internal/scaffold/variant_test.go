package scaffold

import (
	"testing"

	"github.com/pgxgen/pgxgen/internal/templates"
)

func TestVariantFromFlag(t *testing.T) {
	if got := VariantFromFlag(false); got != Standard {
		t.Errorf("VariantFromFlag(false) = %v, want %v", got, Standard)
	}
	if got := VariantFromFlag(true); got != Worker {
		t.Errorf("VariantFromFlag(true) = %v, want %v", got, Worker)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{"standard", Standard, false},
		{"worker", Worker, false},
		{"", Standard, false},
		{"bgworker", Standard, true},
		{"Worker", Standard, true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVariant(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVariant(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestVariantString(t *testing.T) {
	for _, v := range []Variant{Standard, Worker} {
		parsed, err := ParseVariant(v.String())
		if err != nil || parsed != v {
			t.Errorf("ParseVariant(%q) = %v, %v; want %v", v.String(), parsed, err, v)
		}
	}
	if got := Variant(7).String(); got != "unknown" {
		t.Errorf("Variant(7).String() = %q, want %q", got, "unknown")
	}
}

func TestPlan(t *testing.T) {
	steps := Plan("my_ext", Standard)
	want := []Step{
		{Path: "my_ext.control", Template: templates.Control, Render: true},
		{Path: "Cargo.toml", Template: templates.CargoToml, Render: true},
		{Path: ".cargo/config", Template: templates.CargoConfig},
		{Path: "src/lib.rs", Template: templates.LibRs, Render: true},
		{Path: ".gitignore", Template: templates.Gitignore},
	}
	if len(steps) != len(want) {
		t.Fatalf("Plan() returned %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step[%d] = %+v, want %+v", i, steps[i], want[i])
		}
	}

	worker := Plan("my_ext", Worker)
	if worker[3].Template != templates.BgworkerLibRs {
		t.Errorf("worker entry point = %s, want %s", worker[3].Template, templates.BgworkerLibRs)
	}
}
