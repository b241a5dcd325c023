package config

import (
	"log"
	"os"
	"time"
)

// Config holds process configuration read from the environment
type Config struct {
	Port              string
	Env               string
	DatabaseURL       string
	OpenWeatherAPIKey string
	OpenWeatherURL    string
	UpstreamTimeout   time.Duration
	JWTSecret         string
	JWTTTL            time.Duration
	FrontendURL       string
}

// Load builds a Config from environment variables, applying defaults
func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		OpenWeatherAPIKey: getEnv("OPENWEATHERMAP_API_KEY", ""),
		OpenWeatherURL:    getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		UpstreamTimeout:   getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getDuration("JWT_TTL", 24*time.Hour),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

// IsProduction reports whether GO_ENV is set to production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
