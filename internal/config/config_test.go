package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFailsWithoutAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error when the API key is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MODELS_CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected default port %q", cfg.APIPort)
	}
	if cfg.ModelAttemptTimeout != 2*time.Minute {
		t.Fatalf("unexpected attempt timeout %v", cfg.ModelAttemptTimeout)
	}
	if len(cfg.Models) != 2 || cfg.Models[0].ID != "gemini-2.5-flash" {
		t.Fatalf("unexpected default models %+v", cfg.Models)
	}
	if cfg.Models[1].ID != "gemini-2.0-flash" {
		t.Fatalf("unexpected fallback model %+v", cfg.Models[1])
	}
}

func TestLoadModelsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	content := `models:
  - id: gemini-2.5-pro
    label: Gemini 2.5 Pro
    params:
      temperature: 0.4
      top_p: 0.9
      top_k: 32
      max_output_tokens: 8192
  - id: gemini-2.5-flash
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write models file: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MODELS_CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Models) != 2 {
		t.Fatalf("expected two models, got %+v", cfg.Models)
	}
	if cfg.Models[0].Label != "Gemini 2.5 Pro" || cfg.Models[0].Params.MaxOutputTokens != 8192 {
		t.Fatalf("unexpected first model %+v", cfg.Models[0])
	}
	// An entry without a label falls back to its id.
	if cfg.Models[1].Label != "gemini-2.5-flash" {
		t.Fatalf("expected label fallback, got %+v", cfg.Models[1])
	}
}

func TestLoadRejectsEmptyModelList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(path, []byte("models: []\n"), 0o644); err != nil {
		t.Fatalf("write models file: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MODELS_CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for an empty model list")
	}
}
