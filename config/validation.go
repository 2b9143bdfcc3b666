package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// apiKeyVars names the credential each provider needs
var apiKeyVars = map[string]string{
	ProviderAzure:  "AZURE_OPENAI_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

// ValidateConfig checks that the configuration is usable before anything is served
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	keyVar, known := apiKeyVars[cfg.LLMProvider]
	if !known {
		errs = append(errs, ValidationError{"LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.LLMProvider)})
	} else if cfg.LLMAPIKey == "" {
		errs = append(errs, ValidationError{keyVar, "is required; set it in the environment, a .env file, " + keyVar + "_FILE or a Docker secret"})
	}
	if cfg.LLMProvider == ProviderAzure && cfg.LLMEndpoint == "" {
		errs = append(errs, ValidationError{"AZURE_OPENAI_ENDPOINT", "is required for the azure provider"})
	}
	if cfg.LLMMaxTokens <= 0 {
		errs = append(errs, ValidationError{"LLM_MAX_TOKENS", "must be positive"})
	}

	switch cfg.ProfileStore {
	case StoreFile:
		if cfg.ProfilePath == "" {
			errs = append(errs, ValidationError{"PROFILE_PATH", "is required for the file store"})
		}
	case StoreRedis:
		if !cfg.HasRedis() {
			errs = append(errs, ValidationError{"REDIS_URL", "REDIS_URL or REDIS_HOST is required for the redis store"})
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBName == "") {
			errs = append(errs, ValidationError{"DATABASE_URL", "DATABASE_URL or DB_HOST and DB_NAME are required for the postgres store"})
		}
	case StoreSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for the sqlite store"})
		}
	default:
		errs = append(errs, ValidationError{"PROFILE_STORE", fmt.Sprintf("unsupported store %q", cfg.ProfileStore)})
	}

	if cfg.SessionSecret == "" {
		errs = append(errs, ValidationError{"SESSION_SECRET", "is required in production"})
	}
	if cfg.SessionCapacity <= 0 {
		errs = append(errs, ValidationError{"SESSION_CAPACITY", "must be positive"})
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}
