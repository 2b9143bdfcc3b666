package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported chat providers
const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Supported profile record stores
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string
	LogLevel   string

	// Chat model configuration
	LLMProvider    string
	LLMAPIKey      string
	LLMEndpoint    string
	LLMAPIVersion  string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64

	// Profile record configuration
	ProfileStore string
	ProfilePath  string
	ProfileKey   string
	SQLitePath   string

	// Database configuration
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Session configuration
	SessionSecret   string
	SessionTTL      time.Duration
	SessionCapacity int
	ChatRateLimit   int

	CORSOrigins []string

	// Export upload configuration
	S3BucketName string
	AWSRegion    string
	ExportURLTTL time.Duration
}

// LoadConfig creates a new Config instance with values from the environment, a .env file or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	switch env {
	case Development, Test:
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	case CI, Production:
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg := load(newViper(), env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LLM_PROVIDER", ProviderAzure)
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-12-01-preview")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_MAX_TOKENS", 2000)
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("PROFILE_STORE", StoreFile)
	v.SetDefault("PROFILE_PATH", "user_health_profile.json")
	v.SetDefault("PROFILE_KEY", "default")
	v.SetDefault("SQLITE_PATH", "healthara.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_CAPACITY", 128)
	v.SetDefault("CHAT_RATE_LIMIT", 30)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("EXPORT_URL_TTL", "15m")

	return v
}

func load(v *viper.Viper, env Environment) *Config {
	cfg := &Config{
		Environment: env,

		ServerHost: v.GetString("SERVER_HOST"),
		ServerPort: v.GetString("SERVER_PORT"),
		LogLevel:   v.GetString("LOG_LEVEL"),

		LLMProvider:    strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMModel:       v.GetString("LLM_MODEL"),
		LLMMaxTokens:   v.GetInt("LLM_MAX_TOKENS"),
		LLMTemperature: v.GetFloat64("LLM_TEMPERATURE"),

		ProfileStore: strings.ToLower(v.GetString("PROFILE_STORE")),
		ProfilePath:  v.GetString("PROFILE_PATH"),
		ProfileKey:   v.GetString("PROFILE_KEY"),
		SQLitePath:   v.GetString("SQLITE_PATH"),

		DatabaseURL: secretValue(v, "DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      secretValue(v, "DB_USER"),
		DBPassword:  secretValue(v, "DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSL_MODE"),

		RedisURL:      secretValue(v, "REDIS_URL"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: secretValue(v, "REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		SessionSecret:   secretValue(v, "SESSION_SECRET"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		SessionCapacity: v.GetInt("SESSION_CAPACITY"),
		ChatRateLimit:   v.GetInt("CHAT_RATE_LIMIT"),

		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),

		S3BucketName: v.GetString("S3_BUCKET_NAME"),
		AWSRegion:    v.GetString("AWS_REGION"),
		ExportURLTTL: v.GetDuration("EXPORT_URL_TTL"),
	}

	switch cfg.LLMProvider {
	case ProviderAzure:
		cfg.LLMAPIKey = secretValue(v, "AZURE_OPENAI_API_KEY")
		cfg.LLMEndpoint = v.GetString("AZURE_OPENAI_ENDPOINT")
		cfg.LLMAPIVersion = v.GetString("AZURE_OPENAI_API_VERSION")
	case ProviderOpenAI:
		cfg.LLMAPIKey = secretValue(v, "OPENAI_API_KEY")
		cfg.LLMEndpoint = v.GetString("OPENAI_BASE_URL")
	case ProviderGemini:
		cfg.LLMAPIKey = secretValue(v, "GEMINI_API_KEY")
	}

	if cfg.LLMModel == "" {
		if cfg.LLMProvider == ProviderGemini {
			cfg.LLMModel = "gemini-1.5-pro"
		} else {
			cfg.LLMModel = "gpt-4.1"
		}
	}

	// Outside production an unset secret becomes a per-process key; tokens die with the process.
	if cfg.SessionSecret == "" && env != Production {
		cfg.SessionSecret = uuid.NewString()
	}

	return cfg
}

// HasRedis reports whether a Redis server is configured
func (c *Config) HasRedis() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// HasS3 reports whether export uploads are configured
func (c *Config) HasS3() bool {
	return c.S3BucketName != ""
}

// PostgresDSN returns the postgres connection string
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// secretValue resolves a sensitive value from the environment, a NAME_FILE path or a Docker secret
func secretValue(v *viper.Viper, key string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	if path := v.GetString(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(strings.ToLower(key))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
