package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pgxgen/pgxgen/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestNewCommand(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	out, err := execute(t, "new", "my_ext", "--output-dir", dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	assertContains(t, out, "Created standard extension")
	assertContains(t, out, "src/lib.rs")
	assertContains(t, out, "Next steps:")

	lib := readFile(t, filepath.Join(dir, "my_ext", "src", "lib.rs"))
	assertContains(t, lib, "fn hello_my_ext()")
}

func TestNewCommandBgworker(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	out, err := execute(t, "new", "my_worker", "-b", "--output-dir", dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	assertContains(t, out, "Created worker extension")
	assertContains(t, out, "shared_preload_libraries = 'my_worker.so'")

	lib := readFile(t, filepath.Join(dir, "my_worker", "src", "lib.rs"))
	assertContains(t, lib, `BackgroundWorkerBuilder::new("my_worker")`)
}

func TestNewCommandInvalidName(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	_, err := execute(t, "new", "My-Ext", "--output-dir", dir)
	var ve *scaffold.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *scaffold.ValidationError, got %v", err)
	}
	assertContains(t, err.Error(), "[a-z0-9_]")

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("output dir should be empty, found %d entries", len(entries))
	}
}

func TestNewCommandVariantFromConfig(t *testing.T) {
	setupCLI(t)
	t.Setenv("PGXGEN_VARIANT", "worker")
	dir := t.TempDir()

	if _, err := execute(t, "new", "from_env", "--output-dir", dir); err != nil {
		t.Fatalf("new: %v", err)
	}
	assertContains(t, readFile(t, filepath.Join(dir, "from_env", "src", "lib.rs")), "BackgroundWorkerBuilder")

	// An explicit flag wins over configuration.
	if _, err := execute(t, "new", "from_flag", "--bgworker=false", "--output-dir", dir); err != nil {
		t.Fatalf("new: %v", err)
	}
	lib := readFile(t, filepath.Join(dir, "from_flag", "src", "lib.rs"))
	if strings.Contains(lib, "BackgroundWorkerBuilder") {
		t.Error("--bgworker=false should select the standard template")
	}
}

func TestNewCommandInvalidConfig(t *testing.T) {
	setupCLI(t)
	t.Setenv("PGXGEN_VARIANT", "sometimes")

	if _, err := execute(t, "new", "my_ext", "--output-dir", t.TempDir()); err == nil {
		t.Fatal("expected error for invalid configured variant")
	}
}

func TestNewCommandQuietAndStaged(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	out, err := execute(t, "new", "my_ext", "-q", "--staged", "--output-dir", dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output with --quiet, got %q", out)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "my_ext" {
		t.Errorf("expected only my_ext in %s, got %v", dir, entries)
	}

	// Staged mode refuses to replace the existing tree.
	if _, err := execute(t, "new", "my_ext", "--staged", "--output-dir", dir); err == nil {
		t.Fatal("expected error for existing destination in staged mode")
	}
}

func TestNewCommandCustomTemplates(t *testing.T) {
	setupCLI(t)
	tmplDir := filepath.Join(t.TempDir(), "tmpl")
	dir := t.TempDir()

	if _, err := execute(t, "templates", "export", tmplDir); err != nil {
		t.Fatalf("templates export: %v", err)
	}
	custom := "/target\n/results\n"
	if err := os.WriteFile(filepath.Join(tmplDir, "gitignore"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "new", "my_ext", "--templates-dir", tmplDir, "--output-dir", dir); err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "my_ext", ".gitignore")); got != custom {
		t.Errorf(".gitignore = %q, want %q", got, custom)
	}
}

func TestTemplatesList(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "templates", "list")
	if err != nil {
		t.Fatalf("templates list: %v", err)
	}
	assertContains(t, out, "pgx-extension")
	assertContains(t, out, "bgworker_lib_rs")
	assertContains(t, out, "gitignore")
}

func TestTemplatesValidate(t *testing.T) {
	setupCLI(t)
	dir := filepath.Join(t.TempDir(), "tmpl")

	if _, err := execute(t, "templates", "export", dir); err != nil {
		t.Fatalf("templates export: %v", err)
	}
	out, err := execute(t, "templates", "validate", dir)
	if err != nil {
		t.Fatalf("templates validate: %v", err)
	}
	assertContains(t, out, "valid")

	if err := os.WriteFile(filepath.Join(dir, "template.yaml"), []byte("name: Broken\nversion: 1.0.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "templates", "validate", dir)
	if err == nil {
		t.Fatal("expected error for invalid template set")
	}
	assertContains(t, out, "issue(s)")
}

func TestConfigSetGet(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "config", "set", "variant", "worker")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	assertContains(t, out, "Set variant = worker")

	viper.Reset()
	out, err = execute(t, "config", "get", "variant")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "worker" {
		t.Errorf("config get variant = %q, want %q", out, "worker")
	}

	if _, err := execute(t, "config", "set", "variant", "sometimes"); err == nil {
		t.Error("expected error for invalid variant")
	}
}

func TestVersion(t *testing.T) {
	setupCLI(t)
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	assertContains(t, out, `"commit": "abc123"`)
}

// ─── Test Helpers ──────────────────────────────────────────────────

// setupCLI isolates the config directory and Viper state for one test.
func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}
