package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Media backends selectable via MEDIA_BACKEND.
const (
	BackendGateway = "gateway"
	BackendLocal   = "local"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	MediaBackend       string
	GatewayHost        string
	GatewayScheme      string
	LivepeerAPIKey     string
	LivepeerBaseURL    string
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	DexscreenerBaseURL string
	StagingDir         string
	FFmpegFontFile     string
	CORSOrigins        []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
}

// LoadConfig loads configuration from environment variables and applies defaults
// where needed. Settings the selected media backend depends on are validated
// here, at startup, rather than at first use.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		MediaBackend:       getEnv("MEDIA_BACKEND", BackendGateway),
		GatewayHost:        os.Getenv("GATEWAY_HOST"),
		GatewayScheme:      getEnv("GATEWAY_SCHEME", "https"),
		LivepeerAPIKey:     os.Getenv("LIVEPEER_API_KEY"),
		LivepeerBaseURL:    getEnv("LIVEPEER_BASE_URL", "https://livepeer.studio/api"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		DexscreenerBaseURL: getEnv("DEXSCREENER_BASE_URL", "https://api.dexscreener.com"),
		StagingDir:         getEnv("STAGING_DIR", os.TempDir()),
		FFmpegFontFile:     os.Getenv("FFMPEG_FONT_FILE"),
		CORSOrigins:        splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	switch cfg.MediaBackend {
	case BackendGateway:
		if cfg.GatewayHost == "" {
			return nil, fmt.Errorf("GATEWAY_HOST is required when MEDIA_BACKEND=%s", BackendGateway)
		}
	case BackendLocal:
		if cfg.LivepeerAPIKey == "" {
			return nil, fmt.Errorf("LIVEPEER_API_KEY is required when MEDIA_BACKEND=%s", BackendLocal)
		}
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.MediaBackend)
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

// GatewayBaseURL returns the base URL of the generation gateway.
func (c *Config) GatewayBaseURL() string {
	return c.GatewayScheme + "://" + c.GatewayHost
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
