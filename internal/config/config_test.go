package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint %q, got %q", DefaultEndpoint, cfg.Endpoint)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.APIKey)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COPYGEN_API_KEY", "sk-from-env")
	t.Setenv("COPYGEN_MODEL", "deepseek-ai/DeepSeek-V3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.APIKey != "sk-from-env" {
		t.Errorf("expected api key from env, got %q", cfg.APIKey)
	}
	if cfg.Model != "deepseek-ai/DeepSeek-V3" {
		t.Errorf("expected model from env, got %q", cfg.Model)
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := Save(Settings{Endpoint: "http://x", APIKey: "sk-on-disk", Model: "m"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Setenv("COPYGEN_API_KEY", "sk-from-env")
	t.Setenv("COPYGEN_MODEL", "env-model")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.APIKey != "sk-on-disk" {
		t.Errorf("expected stored api key, got %q", cfg.APIKey)
	}
	if cfg.Model != "m" {
		t.Errorf("expected stored model, got %q", cfg.Model)
	}
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COPYGEN_API_KEY", "sk-from-env")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected no stored api key, got %q", cfg.APIKey)
	}
	if cfg.Endpoint != DefaultEndpoint || cfg.Model != DefaultModel {
		t.Errorf("expected defaults, got %+v", *cfg)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	want := Settings{Endpoint: "http://localhost:8080/v1/chat/completions", APIKey: "sk-test-123456", Model: "qwen"}
	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != want {
		t.Errorf("expected %+v, got %+v", want, *got)
	}

	info, err := os.Stat(filepath.Join(Dir(), fileName))
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("config file should not be group/world readable, got %v", perm)
	}
}

func TestSetters_KeepOtherFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SetAPIKey("sk-abc"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := SetModel("my-model"); err != nil {
		t.Fatalf("SetModel failed: %v", err)
	}
	if err := SetEndpoint("http://example.test/v1"); err != nil {
		t.Fatalf("SetEndpoint failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "sk-abc" || cfg.Model != "my-model" || cfg.Endpoint != "http://example.test/v1" {
		t.Errorf("unexpected settings: %+v", *cfg)
	}
}

func TestSave_DoesNotPersistEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COPYGEN_API_KEY", "sk-env-only")

	if err := SetModel("saved-model"); err != nil {
		t.Fatalf("SetModel failed: %v", err)
	}

	os.Unsetenv("COPYGEN_API_KEY")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "" {
		t.Errorf("env credential leaked into config file: %q", cfg.APIKey)
	}
	if cfg.Model != "saved-model" {
		t.Errorf("expected saved model, got %q", cfg.Model)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(Dir(), fileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for corrupt config file")
	}
}

func TestMaskedKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(not set)"},
		{"short", "*****"},
		{"sk-1234567890abcd", "sk-1...abcd"},
	}
	for _, tt := range tests {
		if got := (Settings{APIKey: tt.key}).MaskedKey(); got != tt.want {
			t.Errorf("MaskedKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
