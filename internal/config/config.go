package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Video   VideoConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BodyLimitMB        int
	ProviderTimeout    time.Duration
	// Lets reference images be fetched from loopback and private networks (local development).
	AllowPrivateImageHosts bool
}

type APIKeys struct {
	XAI          string
	OpenAI       string
	GoogleGemini string
	Runway       string
	GoogleMaps   string
}

type AIConfig struct {
	ImageProvider  string // "xai", "openai", "gemini"
	ImageModel     string
	ImageBaseURL   string
	ImageSeedField string // "image" or "images"
	VisionProvider string // "" picks OpenAI then xAI by key; "openai", "xai", "gemini"
	VisionModel    string
}

type VideoConfig struct {
	BaseURL      string
	Model        string
	Ratio        string
	Duration     int
	PollInterval time.Duration
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 25),
			ProviderTimeout:    time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SEC", 120)) * time.Second,

			AllowPrivateImageHosts: getEnvAsBool("IMAGE_FETCH_ALLOW_PRIVATE", false),
		},
		Keys: APIKeys{
			XAI:          getEnv("XAI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Runway:       getEnv("RUNWAY_API_KEY", ""),
			GoogleMaps:   getEnv("GOOGLE_MAPS_API_KEY", getEnv("NEXT_PUBLIC_GOOGLE_MAPS_API_KEY", "")),
		},
		Ai: AIConfig{
			ImageProvider:  getEnv("IMAGE_PROVIDER", "xai"),
			ImageModel:     getEnv("IMAGE_MODEL", ""),
			ImageBaseURL:   getEnv("IMAGE_BASE_URL", ""),
			ImageSeedField: getEnv("IMAGE_SEED_FIELD", "image"),
			VisionProvider: getEnv("VISION_PROVIDER", ""),
			VisionModel:    getEnv("VISION_MODEL", ""),
		},
		Video: VideoConfig{
			BaseURL:      getEnv("RUNWAY_BASE_URL", ""),
			Model:        getEnv("RUNWAY_MODEL", "gen4.5"),
			Ratio:        getEnv("RUNWAY_RATIO", "16:9"),
			Duration:     getEnvAsInt("RUNWAY_DURATION", 8),
			PollInterval: time.Duration(getEnvAsInt("RUNWAY_POLL_INTERVAL_SEC", 5)) * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "xeriscape-be"),
		},
	}
}

// Validate rejects settings the server cannot start with. Missing provider keys are not
// errors: the affected routes answer 500 per request instead.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.App.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid APP_PORT: %q", c.App.Port)
	}
	if c.App.BodyLimitMB <= 0 {
		return fmt.Errorf("BODY_LIMIT_MB must be positive")
	}
	switch c.Ai.ImageProvider {
	case "xai", "openai", "gemini":
	default:
		return fmt.Errorf("invalid IMAGE_PROVIDER: %q", c.Ai.ImageProvider)
	}
	switch c.Ai.ImageSeedField {
	case "image", "images":
	default:
		return fmt.Errorf("invalid IMAGE_SEED_FIELD: %q", c.Ai.ImageSeedField)
	}
	switch c.Ai.VisionProvider {
	case "", "openai", "xai", "gemini":
	default:
		return fmt.Errorf("invalid VISION_PROVIDER: %q", c.Ai.VisionProvider)
	}
	if c.Video.Duration <= 0 {
		return fmt.Errorf("RUNWAY_DURATION must be positive")
	}
	if c.Video.PollInterval <= 0 {
		return fmt.Errorf("RUNWAY_POLL_INTERVAL_SEC must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
