package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsWithNoPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Errorf("Load(\"\") = %+v, want %+v", cfg, want)
	}
}

func TestLoadOverridesFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minic.yaml")
	content := "symbol_buckets: 37\nmemory_size: 500\ntrace_exec: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if cfg.SymbolBuckets != 37 {
		t.Errorf("SymbolBuckets = %d, want 37", cfg.SymbolBuckets)
	}
	if cfg.MemorySize != 500 {
		t.Errorf("MemorySize = %d, want 500", cfg.MemorySize)
	}
	if !cfg.TraceExec {
		t.Error("TraceExec = false, want true")
	}
}

func TestLoadMissingFieldsFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minic.yaml")
	if err := os.WriteFile(path, []byte("trace_exec: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	want := Defaults()
	if cfg.SymbolBuckets != want.SymbolBuckets || cfg.MemorySize != want.MemorySize {
		t.Errorf("got %+v, want defaults %+v with trace_exec true", cfg, want)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/minic.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
