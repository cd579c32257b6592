package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Env  string
	Port string
}

// ForecastConfig holds the weather provider settings.
type ForecastConfig struct {
	BaseURL     string
	APIKey      string
	HorizonDays int
}

// ModelConfig holds the generative-language endpoint settings.
type ModelConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

// CacheConfig controls the report cache.
type CacheConfig struct {
	Size       int
	TTLMinutes int
}

type Config struct {
	Server           ServerConfig
	Forecast         ForecastConfig
	Model            ModelConfig
	Cache            CacheConfig
	DestinationsFile string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Env:  getEnv("ENV", "development"),
			Port: getEnv("PORT", "8090"),
		},
		Forecast: ForecastConfig{
			BaseURL:     getEnv("ACCUWEATHER_BASE_URL", "https://dataservice.accuweather.com"),
			APIKey:      getSecret("ACCUWEATHER_API_KEY", "ACCUWEATHER_API_KEY_FILE", ""),
			HorizonDays: getEnvInt("FORECAST_HORIZON_DAYS", 5),
		},
		Model: ModelConfig{
			Endpoint: getEnv("GEMINI_ENDPOINT",
				"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"),
			APIKey: getSecret("GEMINI_API_KEY", "GEMINI_API_KEY_FILE", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Cache: CacheConfig{
			Size:       getEnvInt("REPORT_CACHE_SIZE", 256),
			TTLMinutes: getEnvInt("REPORT_CACHE_TTL_MINUTES", 30),
		},
		DestinationsFile: getEnv("DESTINATIONS_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
