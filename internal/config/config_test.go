package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Lexer.IdentifierHyphens {
		t.Errorf("Lexer.IdentifierHyphens = false, want true")
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want warn/text", cfg.Log)
	}
	if cfg.Output.Format != "text" || !cfg.Output.Color {
		t.Errorf("Output = %+v, want text with color", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	path := writeConfig(t, t.TempDir(), "[log]\nlevel = \"debug\"\n\n[output]\nformat = \"yaml\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.Log.Level = "debug"
	want.Output.Format = "yaml"
	if diff := pretty.Diff(want, cfg); len(diff) > 0 {
		t.Fatalf("config mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

func TestLoadHyphensOff(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	path := writeConfig(t, t.TempDir(), "[lexer]\nidentifier_hyphens = false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Lexer.IdentifierHyphens {
		t.Fatalf("identifier_hyphens should be off")
	}
	if len(cfg.LexerOptions()) != 1 {
		t.Fatalf("expected one lexer option")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"syntax", "[log\nlevel = 1", "failed to parse config"},
		{"unknown key", "[lexer]\nhyphens = true\n", "unknown config key"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"bad log format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"bad output format", "[output]\nformat = \"json\"\n", "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("Load() error = %v, want it to mention %q", err, tt.message)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("Load() of a missing file should fail")
	}
}

func TestDiscover(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	dir := t.TempDir()
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if diff := pretty.Diff(Default(), cfg); len(diff) > 0 {
		t.Fatalf("expected defaults without a file:\n%s", strings.Join(diff, "\n"))
	}

	writeConfig(t, dir, "[output]\ncolor = false\n")
	cfg, err = Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Output.Color {
		t.Fatalf("Discover() should have read %s", FileName)
	}
}

func TestEnvOverridesLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "error")
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Fatalf("Log.Level = %q, want error", cfg.Log.Level)
	}

	t.Setenv(LogLevelEnv, "nonsense")
	if _, err := Discover(t.TempDir()); err == nil {
		t.Fatalf("an invalid override should fail validation")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	log := cfg.Logger(&buf, false)
	log.Info("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn level logger wrote:\n%s", buf.String())
	}

	buf.Reset()
	cfg.Log.Format = "json"
	cfg.Logger(&buf, true).Debug("trace", "production", "Program")
	if !strings.Contains(buf.String(), `"production":"Program"`) {
		t.Fatalf("verbose json logger wrote:\n%s", buf.String())
	}
}
