package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

type Config struct {
	APIPort  string
	LogLevel string

	GeminiAPIKey     string
	ModelsConfigPath string
	Models           []domain.ModelConfig

	GatePrefixChars     int
	GateMinDistinct     int
	PerFileSampleChars  int
	CombinedSampleChars int

	ModelMaxAttempts    int
	ModelAttemptTimeout time.Duration
	ModelFallbackDelay  time.Duration
	AnalysisTimeout     time.Duration

	MaxUploadBytes        int64
	MaxCompletedJobs      int
	MaxConcurrentAnalyses int
	APIRateLimitRPS       float64
	APIRateLimitBurst     int
	APIMaxInFlight        int
}

// Load reads the environment (an optional .env file first) and fails fast on
// anything the service cannot run without. The only hard requirement is the
// model API key; everything else has a default.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ModelsConfigPath: mustEnv("MODELS_CONFIG_PATH", ""),

		GatePrefixChars:     mustEnvInt("GATE_PREFIX_CHARS", 1500),
		GateMinDistinct:     mustEnvInt("GATE_MIN_DISTINCT", 2),
		PerFileSampleChars:  mustEnvInt("PER_FILE_SAMPLE_CHARS", 4000),
		CombinedSampleChars: mustEnvInt("COMBINED_SAMPLE_CHARS", 8000),

		ModelMaxAttempts:    mustEnvInt("MODEL_MAX_ATTEMPTS", 3),
		ModelAttemptTimeout: mustEnvDuration("MODEL_ATTEMPT_TIMEOUT", 2*time.Minute),
		ModelFallbackDelay:  mustEnvDuration("MODEL_FALLBACK_DELAY", 2*time.Second),
		AnalysisTimeout:     mustEnvDuration("ANALYSIS_TIMEOUT", 15*time.Minute),

		MaxUploadBytes:        int64(mustEnvInt("MAX_UPLOAD_BYTES", 32<<20)),
		MaxCompletedJobs:      mustEnvInt("MAX_COMPLETED_JOBS", 256),
		MaxConcurrentAnalyses: mustEnvInt("MAX_CONCURRENT_ANALYSES", 8),
		APIRateLimitRPS:       mustEnvFloat("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst:     mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:        mustEnvInt("API_MAX_IN_FLIGHT", 64),
	}

	if cfg.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required")
	}

	models, err := loadModels(cfg.ModelsConfigPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Models = models

	return cfg, nil
}

// loadModels reads the ordered fallback list from a YAML file, or falls back
// to the built-in pair when no path is configured.
func loadModels(path string) ([]domain.ModelConfig, error) {
	if path == "" {
		return defaultModels(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models config: %w", err)
	}

	var doc struct {
		Models []domain.ModelConfig `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse models config: %w", err)
	}
	if len(doc.Models) == 0 {
		return nil, fmt.Errorf("models config %s lists no models", path)
	}
	for i, m := range doc.Models {
		if m.ID == "" {
			return nil, fmt.Errorf("models config %s: entry %d has no id", path, i)
		}
		if m.Label == "" {
			doc.Models[i].Label = m.ID
		}
	}
	return doc.Models, nil
}

func defaultModels() []domain.ModelConfig {
	params := domain.GenerationParams{
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 4096,
	}
	return []domain.ModelConfig{
		{ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash", Params: params},
		{ID: "gemini-2.0-flash", Label: "Gemini 2.0 Flash", Params: params},
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
