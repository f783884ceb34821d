package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	sharedauth "github.com/alghazali/school-assistant/internal/shared/auth"
	"github.com/alghazali/school-assistant/internal/shared/envconfig"
)

// Config encapsulates the runtime configuration for the school assistant.
type Config struct {
	Port      string `validate:"required,numeric"`
	LogLevel  string `validate:"omitempty,oneof=debug info warn warning error"`
	WhatsApp  WhatsAppConfig
	LLM       LLMConfig
	KeepAlive KeepAliveConfig
	Auth      AuthConfig
}

// WhatsAppConfig addresses the Cloud API and the webhook handshake.
type WhatsAppConfig struct {
	Token         string `validate:"required"`
	PhoneNumberID string `validate:"required"`
	VerifyToken   string `validate:"required"`
	BaseURL       string `validate:"required,url"`
	APIVersion    string `validate:"required"`
}

// LLMConfig defines how replies are generated with Gemini.
type LLMConfig struct {
	APIKey            string
	Model             string `validate:"required"`
	MaxOutputTokens   int    `validate:"gt=0"`
	UseVertex         bool
	Project           string
	Location          string
	GenerationTimeout time.Duration `validate:"gt=0"`
	PersonaFile       string
}

// KeepAliveConfig drives the self-ping loop. An empty SelfURL disables it.
type KeepAliveConfig struct {
	SelfURL  string
	Interval time.Duration `validate:"gt=0"`
}

// AuthConfig guards the operator routes.
type AuthConfig struct {
	Mode     sharedauth.Mode
	JWKSURL  string
	Audience string
	Issuer   string
}

// Load reads environment variables into Config with validation.
func Load() (Config, error) {
	cfg := Config{
		Port:     envconfig.Get("PORT", "5000"),
		LogLevel: strings.ToLower(envconfig.Get("LOG_LEVEL", "info")),
		WhatsApp: WhatsAppConfig{
			Token:         envconfig.Get("WHATSAPP_TOKEN", ""),
			PhoneNumberID: envconfig.Get("PHONE_NUMBER_ID", ""),
			VerifyToken:   envconfig.Get("VERIFY_TOKEN", ""),
			BaseURL:       envconfig.Get("GRAPH_API_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    envconfig.Get("GRAPH_API_VERSION", "v18.0"),
		},
		LLM: LLMConfig{
			APIKey:            resolveAPIKey(),
			Model:             envconfig.Get("GEMINI_MODEL", "gemini-2.0-flash"),
			MaxOutputTokens:   envconfig.GetInt("GEMINI_MAX_OUTPUT_TOKENS", 1024),
			UseVertex:         envconfig.GetBool("GOOGLE_GENAI_USE_VERTEXAI", false),
			Project:           envconfig.Get("GOOGLE_CLOUD_PROJECT", ""),
			Location:          envconfig.Get("GOOGLE_CLOUD_LOCATION", ""),
			GenerationTimeout: envconfig.GetDuration("GENERATION_TIMEOUT", 30*time.Second),
			PersonaFile:       envconfig.Get("SYSTEM_PERSONA_FILE", ""),
		},
		KeepAlive: KeepAliveConfig{
			SelfURL:  strings.TrimSpace(envconfig.Get("SELF_URL", "")),
			Interval: envconfig.GetDuration("KEEPALIVE_INTERVAL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Mode:     sharedauth.Mode(strings.ToLower(envconfig.Get("AUTH_MODE", string(sharedauth.ModeDisabled)))),
			JWKSURL:  envconfig.Get("CLERK_JWKS_URL", ""),
			Audience: envconfig.Get("CLERK_AUDIENCE", ""),
			Issuer:   envconfig.Get("CLERK_ISSUER", ""),
		},
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if err := envconfig.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch cfg.Auth.Mode {
	case sharedauth.ModeClerk:
		if cfg.Auth.JWKSURL == "" {
			return fmt.Errorf("CLERK_JWKS_URL is required when AUTH_MODE=clerk")
		}
	case sharedauth.ModeNoop, sharedauth.ModeDisabled:
		// nothing to check
	default:
		return fmt.Errorf("unsupported auth mode: %s", cfg.Auth.Mode)
	}

	if cfg.LLM.UseVertex {
		if strings.TrimSpace(cfg.LLM.Project) == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required when GOOGLE_GENAI_USE_VERTEXAI=true")
		}
		if strings.TrimSpace(cfg.LLM.Location) == "" {
			return fmt.Errorf("GOOGLE_CLOUD_LOCATION is required when GOOGLE_GENAI_USE_VERTEXAI=true")
		}
	}

	if cfg.KeepAlive.SelfURL != "" {
		u, err := url.Parse(cfg.KeepAlive.SelfURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("SELF_URL must be an absolute URL: %s", cfg.KeepAlive.SelfURL)
		}
	}

	return nil
}

func resolveAPIKey() string {
	if apiKey := envconfig.Get("GEMINI_API_KEY", ""); strings.TrimSpace(apiKey) != "" {
		return apiKey
	}
	return envconfig.Get("GOOGLE_API_KEY", "")
}
