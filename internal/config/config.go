package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Environment string // "development" or "production"
	ServerPort  int

	DatabasePath string
	MediaPath    string // Base path for uploaded media files
	CORSOrigin   string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	FrontendURL  string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, err
	}

	accessTTL, err := time.ParseDuration(getEnv("ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	refreshTTL, err := time.ParseDuration(getEnv("REFRESH_TOKEN_TTL", "168h"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:        getEnv("APP_ENV", "development"),
		ServerPort:         port,
		DatabasePath:       getEnv("DATABASE_PATH", "./newsroom.db"),
		MediaPath:          getEnv("MEDIA_PATH", "./media-data"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),
		SMTPPort:           smtpPort,
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASS"),
		MailFrom:           getEnv("MAIL_FROM", "no-reply@newsroom.local"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	return cfg, nil
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
