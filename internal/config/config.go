package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	CounterBackendJSONBin  = "jsonbin"
	CounterBackendPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Counter  CounterConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Profile  ProfileConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LLMConfig struct {
	Provider      string
	Model         string
	GroqAPIKey    string
	GroqBaseURL   string
	GeminiAPIKey  string
	GeminiBaseURL string
}

type CounterConfig struct {
	Backend        string
	JSONBinAPIKey  string
	JSONBinBinID   string
	JSONBinBaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type StorageConfig struct {
	MaxUploadSize int64
}

type ProfileConfig struct {
	About        string
	GitHubURL    string
	LinkedInURL  string
	PortfolioURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	provider := normalizeProvider(getEnv("LLM_PROVIDER", ProviderGroq))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		LLM: LLMConfig{
			Provider:      provider,
			Model:         getEnv("LLM_MODEL", defaultModel(provider)),
			GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		},
		Counter: CounterConfig{
			Backend:        normalizeCounterBackend(getEnv("COUNTER_BACKEND", CounterBackendJSONBin)),
			JSONBinAPIKey:  getEnv("JSONBIN_API_KEY", ""),
			JSONBinBinID:   getEnv("JSONBIN_BIN_ID", ""),
			JSONBinBaseURL: getEnv("JSONBIN_BASE_URL", "https://api.jsonbin.io/v3"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "job_assistant"),
		},
		Storage: StorageConfig{
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 5242880),
		},
		Profile: ProfileConfig{
			About: getEnv("SIDEBAR_ABOUT",
				"Paste a resume and a job description to get a match score, missing keywords and rewritten bullet points."),
			GitHubURL:    getEnv("GITHUB_URL", ""),
			LinkedInURL:  getEnv("LINKEDIN_URL", ""),
			PortfolioURL: getEnv("PORTFOLIO_URL", ""),
		},
	}
}

// HasJSONBinCredentials reports whether both counter credentials are set.
func (c *Config) HasJSONBinCredentials() bool {
	return c.Counter.JSONBinAPIKey != "" && c.Counter.JSONBinBinID != ""
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-flash"
	}
	return "llama3-8b-8192"
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderGemini:
		return ProviderGemini
	default:
		return ProviderGroq
	}
}

func normalizeCounterBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CounterBackendPostgres, "postgresql":
		return CounterBackendPostgres
	default:
		return CounterBackendJSONBin
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
