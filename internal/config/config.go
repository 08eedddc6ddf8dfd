package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every runtime setting of the service.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Inference  InferenceConfig
	Analysis   AnalysisConfig
	Generation GenerationConfig
	Telephony  TelephonyConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	inference, err := loadInferenceConfig()
	if err != nil {
		return nil, err
	}

	analysisCfg, err := loadAnalysisConfig()
	if err != nil {
		return nil, err
	}

	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		Database:   loadDatabaseConfig(),
		Inference:  inference,
		Analysis:   analysisCfg,
		Generation: generation,
		Telephony:  loadTelephonyConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// DatabaseConfig describes the Postgres connection for conversation records.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether persistence is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{URL: strings.TrimSpace(os.Getenv("DATABASE_URL"))}
}

// InferenceConfig points at the model-serving sidecar hosting the intent and
// sentiment classifiers.
type InferenceConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

func loadInferenceConfig() (InferenceConfig, error) {
	timeout, err := parseDurationEnv("INFERENCE_TIMEOUT", 15*time.Second)
	if err != nil {
		return InferenceConfig{}, err
	}

	return InferenceConfig{
		Endpoint: getEnvOrDefault("INFERENCE_URL", "http://localhost:8000"),
		APIKey:   strings.TrimSpace(os.Getenv("INFERENCE_API_KEY")),
		Timeout:  timeout,
	}, nil
}

// AnalysisConfig controls the text analyzer.
type AnalysisConfig struct {
	Candidates []string
	Timeout    time.Duration
}

func loadAnalysisConfig() (AnalysisConfig, error) {
	timeout, err := parseDurationEnv("ANALYSIS_TIMEOUT", 15*time.Second)
	if err != nil {
		return AnalysisConfig{}, err
	}

	var candidates []string
	if raw := strings.TrimSpace(os.Getenv("INTENT_LABELS")); raw != "" {
		for _, label := range strings.Split(raw, ",") {
			if label = strings.TrimSpace(label); label != "" {
				candidates = append(candidates, label)
			}
		}
	}

	return AnalysisConfig{Candidates: candidates, Timeout: timeout}, nil
}

// GenerationConfig describes the generative response tier.
type GenerationConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	MaxTokens   *int
	Confidence  float64
	MaxLength   int
	Timeout     time.Duration
}

// Enabled reports whether the generative tier has the credentials it needs.
func (c GenerationConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds the long-lived chat model handle.
func (c GenerationConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("generation credentials missing: provide ARK_API_KEY or AK/SK plus GENERATION_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadGenerationConfig() (GenerationConfig, error) {
	temperature, err := parseOptionalFloatEnv("GEN_TEMPERATURE")
	if err != nil {
		return GenerationConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("GEN_MAX_TOKENS")
	if err != nil {
		return GenerationConfig{}, err
	}

	confidence := 0.7
	if override, err := parseOptionalFloatEnv("GEN_CONFIDENCE"); err != nil {
		return GenerationConfig{}, err
	} else if override != nil {
		if *override <= 0 || *override >= 1 {
			return GenerationConfig{}, fmt.Errorf("GEN_CONFIDENCE must be in (0,1), got %f", *override)
		}
		confidence = *override
	}

	maxLength := 200
	if override, err := parseOptionalIntEnv("GEN_MAX_LENGTH"); err != nil {
		return GenerationConfig{}, err
	} else if override != nil && *override > 0 {
		maxLength = *override
	}

	timeout, err := parseDurationEnv("GEN_TIMEOUT", 10*time.Second)
	if err != nil {
		return GenerationConfig{}, err
	}

	return GenerationConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("GENERATION_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Confidence:  confidence,
		MaxLength:   maxLength,
		Timeout:     timeout,
	}, nil
}

// TelephonyConfig holds the outbound-call collaborator credentials.
type TelephonyConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Enabled reports whether outbound calls can be placed.
func (c TelephonyConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

func loadTelephonyConfig() TelephonyConfig {
	return TelephonyConfig{
		AccountSID: strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID")),
		AuthToken:  strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")),
		FromNumber: strings.TrimSpace(os.Getenv("TWILIO_PHONE_NUMBER")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	// Bare numbers are treated as seconds.
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
