package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Weather   WeatherConfig   `yaml:"weather"`
	Directory DirectoryConfig `yaml:"directory"`
	Eval      EvalConfig      `yaml:"eval"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	CORSOrigins     []string        `yaml:"corsOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware. A non-empty
// ValkeyAddr shares the budget across replicas.
type RateLimitConfig struct {
	Enabled           bool   `yaml:"enabled"`
	RequestsPerMinute int    `yaml:"requestsPerMinute"`
	Burst             int    `yaml:"burst"`
	ValkeyAddr        string `yaml:"valkeyAddr"`
	KeyPrefix         string `yaml:"keyPrefix"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// BreakerConfig tunes the circuit breaker in front of an upstream API.
type BreakerConfig struct {
	MaxFailures uint32        `yaml:"maxFailures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

// WeatherConfig controls the weather agent and its Open-Meteo upstream.
type WeatherConfig struct {
	Strategy        string        `yaml:"strategy"`
	DefaultLocation string        `yaml:"defaultLocation"`
	PhraseReplies   bool          `yaml:"phraseReplies"`
	GeocodingURL    string        `yaml:"geocodingUrl"`
	ForecastURL     string        `yaml:"forecastUrl"`
	Timeout         time.Duration `yaml:"timeout"`
	Breaker         BreakerConfig `yaml:"breaker"`
}

// DirectoryConfig controls the restaurant and pharmacy agent.
type DirectoryConfig struct {
	APIKey          string        `yaml:"apiKey"`
	BaseURL         string        `yaml:"baseUrl"`
	DefaultLocation string        `yaml:"defaultLocation"`
	MaxResults      int           `yaml:"maxResults"`
	Timeout         time.Duration `yaml:"timeout"`
	Breaker         BreakerConfig `yaml:"breaker"`
	LogFile         string        `yaml:"logFile"`
}

// EvalConfig drives the offline evaluation command.
type EvalConfig struct {
	Input   string       `yaml:"input"`
	Output  string       `yaml:"output"`
	Workers int          `yaml:"workers"`
	Upload  UploadConfig `yaml:"upload"`
}

// UploadConfig points at an S3-compatible bucket for evaluation reports.
type UploadConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// Load reads configuration from a YAML file, a .env file and environment
// variables, in that order of increasing precedence.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotenv(os.Getenv("DOTENV_PATH")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotenv exports variables from a .env file without overriding the real
// environment. A missing default file is fine; a missing explicit one is not.
func loadDotenv(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	envString("HTTP_ADDRESS", &cfg.HTTP.Address)
	envDuration("HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout)
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	envBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	envInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	envInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	envString("HTTP_RATE_LIMIT_VALKEY_ADDR", &cfg.HTTP.RateLimit.ValkeyAddr)

	envString("OPENAI_API_KEY", &cfg.LLM.APIKey)
	envString("LLM_API_KEY", &cfg.LLM.APIKey)
	envString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	envString("LLM_MODEL", &cfg.LLM.Model)
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	envInt("LLM_MAX_TOKENS", &cfg.LLM.MaxTokens)
	envDuration("LLM_TIMEOUT", &cfg.LLM.Timeout)

	envString("WEATHER_STRATEGY", &cfg.Weather.Strategy)
	envString("WEATHER_DEFAULT_LOCATION", &cfg.Weather.DefaultLocation)
	envBool("WEATHER_PHRASE_REPLIES", &cfg.Weather.PhraseReplies)
	envString("WEATHER_GEOCODING_URL", &cfg.Weather.GeocodingURL)
	envString("WEATHER_FORECAST_URL", &cfg.Weather.ForecastURL)
	envDuration("WEATHER_TIMEOUT", &cfg.Weather.Timeout)

	envString("GOOGLE_PLACES_API_KEY", &cfg.Directory.APIKey)
	envString("DIRECTORY_API_KEY", &cfg.Directory.APIKey)
	envString("DIRECTORY_BASE_URL", &cfg.Directory.BaseURL)
	envString("DIRECTORY_DEFAULT_LOCATION", &cfg.Directory.DefaultLocation)
	envInt("DIRECTORY_MAX_RESULTS", &cfg.Directory.MaxResults)
	envDuration("DIRECTORY_TIMEOUT", &cfg.Directory.Timeout)
	envString("DIRECTORY_LOG_FILE", &cfg.Directory.LogFile)

	envString("EVAL_INPUT", &cfg.Eval.Input)
	envString("EVAL_OUTPUT", &cfg.Eval.Output)
	envInt("EVAL_WORKERS", &cfg.Eval.Workers)
	envBool("EVAL_UPLOAD_ENABLED", &cfg.Eval.Upload.Enabled)
	envString("EVAL_UPLOAD_ENDPOINT", &cfg.Eval.Upload.Endpoint)
	envString("EVAL_UPLOAD_ACCESS_KEY", &cfg.Eval.Upload.AccessKey)
	envString("EVAL_UPLOAD_SECRET_KEY", &cfg.Eval.Upload.SecretKey)
	envString("EVAL_UPLOAD_BUCKET", &cfg.Eval.Upload.Bucket)
	envString("EVAL_UPLOAD_REGION", &cfg.Eval.Upload.Region)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"http://localhost:5173"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
				KeyPrefix:         "weather-buddy:ratelimit",
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0,
			MaxTokens:   200,
			Timeout:     20 * time.Second,
		},
		Weather: WeatherConfig{
			Strategy:        "api",
			DefaultLocation: "Newark, CA",
			GeocodingURL:    "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL:     "https://api.open-meteo.com/v1/forecast",
			Timeout:         10 * time.Second,
			Breaker: BreakerConfig{
				MaxFailures: 5,
				Cooldown:    30 * time.Second,
			},
		},
		Directory: DirectoryConfig{
			BaseURL:         "https://places.googleapis.com/v1",
			DefaultLocation: "Newark, CA",
			MaxResults:      5,
			Timeout:         10 * time.Second,
			Breaker: BreakerConfig{
				MaxFailures: 5,
				Cooldown:    30 * time.Second,
			},
		},
		Eval: EvalConfig{
			Output:  "forecast_results.csv",
			Workers: 4,
			Upload: UploadConfig{
				Region: "auto",
				Prefix: "evaluations",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.Weather.Strategy {
	case "api", "reasoning":
	default:
		return fmt.Errorf("weather.strategy must be api or reasoning, got %q", c.Weather.Strategy)
	}
	if c.Weather.Timeout <= 0 || c.Directory.Timeout <= 0 {
		return errors.New("weather.timeout and directory.timeout must be positive")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.Directory.MaxResults <= 0 || c.Directory.MaxResults > 20 {
		return errors.New("directory.maxResults must be between 1 and 20")
	}
	if c.Eval.Workers <= 0 {
		return errors.New("eval.workers must be positive")
	}
	if c.Eval.Upload.Enabled {
		if strings.TrimSpace(c.Eval.Upload.Endpoint) == "" || strings.TrimSpace(c.Eval.Upload.Bucket) == "" {
			return errors.New("eval.upload.endpoint and eval.upload.bucket are required when upload is enabled")
		}
	}
	return nil
}
