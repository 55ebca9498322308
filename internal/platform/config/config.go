package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret      = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer      = "orbit-finance"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAIMaxTxns      = 12
	defaultRateLimit      = "100-M"
	defaultStoreNamespace = "orbit_finance_v5_data"
)

var knownBackends = map[string]bool{
	"memory":   true,
	"file":     true,
	"sqlite":   true,
	"postgres": true,
	"redis":    true,
}

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Persistence
	StoreBackend   string
	StoreNamespace string
	StoreFilePath  string
	SQLitePath     string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	EnforceAdminPolicy bool

	// AI advisor
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	AIMaxTransactions int

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	PosthogEndpoint    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("STORE_NAMESPACE", defaultStoreNamespace)
	viper.SetDefault("STORE_FILE_PATH", "./data")
	viper.SetDefault("SQLITE_PATH", "./data/orbit.db")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("ENFORCE_ADMIN_POLICY", false)
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", defaultOpenAIModel)
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("AI_MAX_TRANSACTIONS", defaultAIMaxTxns)
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(viper.GetString("STORE_BACKEND")))
	if !knownBackends[cfg.StoreBackend] {
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	cfg.StoreNamespace = viper.GetString("STORE_NAMESPACE")
	if cfg.StoreNamespace == "" {
		cfg.StoreNamespace = defaultStoreNamespace
	}
	cfg.StoreFilePath = viper.GetString("STORE_FILE_PATH")
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required for the postgres store backend")
	}
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.EnforceAdminPolicy = viper.GetBool("ENFORCE_ADMIN_POLICY")

	cfg.OpenAIAPIKey = viper.GetString("OPENAI_API_KEY")
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. AI advice will return the fallback message.")
	}
	cfg.OpenAIModel = viper.GetString("OPENAI_MODEL")
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaultOpenAIModel
	}
	cfg.OpenAIBaseURL = viper.GetString("OPENAI_BASE_URL")
	cfg.AIMaxTransactions = viper.GetInt("AI_MAX_TRANSACTIONS")
	if cfg.AIMaxTransactions <= 0 {
		log.Printf("Warning: Invalid value for AI_MAX_TRANSACTIONS (%d). Defaulting to %d.\n", cfg.AIMaxTransactions, defaultAIMaxTxns)
		cfg.AIMaxTransactions = defaultAIMaxTxns
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}
