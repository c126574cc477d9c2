package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Geofence GeofenceConfig
	Client   ClientConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// GeofenceConfig holds the clock event validation parameters.
type GeofenceConfig struct {
	// RadiusFeet is the allowed distance from the patient address for a
	// clock event to be considered inside the geofence.
	RadiusFeet float64
	// StaleOpenSessionAfter is how long a session may stay open before the
	// sweeper flags it for review.
	StaleOpenSessionAfter time.Duration
}

// ClientConfig is used by clockctl to reach a running API.
type ClientConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "evv_timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Geofence configuration
	radiusFeet, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_FEET", "500"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_FEET: %w", err)
	}
	if radiusFeet <= 0 {
		return nil, fmt.Errorf("GEOFENCE_RADIUS_FEET must be positive")
	}

	staleHours, err := strconv.Atoi(getEnv("STALE_OPEN_SESSION_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_OPEN_SESSION_HOURS: %w", err)
	}

	config.Geofence = GeofenceConfig{
		RadiusFeet:            radiusFeet,
		StaleOpenSessionAfter: time.Duration(staleHours) * time.Hour,
	}

	config.Client = ClientConfig{
		BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
	}

	return config, nil
}

// ValidateServer validates the fields the API server requires. clockctl only
// needs Client.BaseURL and the geofence radius, so Load does not enforce these.
func (c *Config) ValidateServer() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
