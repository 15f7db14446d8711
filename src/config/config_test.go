package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "wisp.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTemp(t, `
[run]
log-level = "warning"
trace-output = "stdout"
trace-format = "table"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warning" || cfg.TraceOutput != "stdout" || cfg.TraceFormat != "table" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := writeTemp(t, `
[run]
log-level = "loud"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an invalid log-level")
	}
}

func TestLoadInvalidTraceFormat(t *testing.T) {
	path := writeTemp(t, `
[run]
trace-format = "xml"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an invalid trace-format")
	}
}

func TestLoadExternBindings(t *testing.T) {
	path := writeTemp(t, `
[run]
[[run.externs]]
name = "alert"
alert = true

[[run.externs]]
name = "log_line"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Externs) != 2 {
		t.Fatalf("Externs = %v, want 2 entries", cfg.Externs)
	}
	if cfg.Externs[0].Name != "alert" || !cfg.Externs[0].Alert {
		t.Errorf("Externs[0] = %+v, want {alert true}", cfg.Externs[0])
	}
	if cfg.Externs[1].Name != "log_line" || cfg.Externs[1].Alert {
		t.Errorf("Externs[1] = %+v, want {log_line false}", cfg.Externs[1])
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeTemp(t, "this is not valid toml [[[")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
