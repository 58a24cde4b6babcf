package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration, loadable from
// environment variables (ADVISOR_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	CatalogPath string `default:"" usage:"Comma-separated catalog files (.json or .json.gz); empty uses the embedded catalog" flag:"catalog-path"`
	Provider    ProviderConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Graceful    GracefulConfig
}

// ProviderConfig controls the external AI provider client. A missing API key
// is valid configuration: the service starts and every question falls back
// to the templated answer.
type ProviderConfig struct {
	BaseURL    string        `default:"https://api.openai.com/v1" usage:"OpenAI-compatible API base URL" flag:"provider-base-url"`
	APIKey     string        `usage:"Provider API key (ADVISOR_PROVIDER_API_KEY or OPENAI_API_KEY)" flag:"provider-api-key"`
	Model      string        `default:"gpt-4o-mini" usage:"Model used for recommendations" flag:"provider-model"`
	Timeout    time.Duration `default:"10s" usage:"Upper bound for one provider call including retries" flag:"provider-timeout"`
	MaxRetries int           `default:"2" usage:"Retries for transient provider failures" flag:"provider-max-retries"`
}

// RateLimitConfig controls the per-client fixed window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from a .env file (best effort), environment
// variables, YAML config files, and platform defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ADVISOR",
		Files:     []string{"config.yaml", "/etc/advisor/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	return &cfg, nil
}

// applyPlatformDefaults maps common environment variables (PORT from PaaS
// platforms, the conventional OPENAI_API_KEY) to the ADVISOR_-prefixed
// configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
