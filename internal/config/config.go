package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Holiday    HolidayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the check-in/check-out business rules.
type AttendanceConfig struct {
	// LateThreshold is the WIB wall-clock time ("HH:MM:SS") after which a
	// check-in is marked late.
	LateThreshold string
	// MinWorkDuration is the minimum elapsed time between check-in and
	// check-out before a check-out is accepted.
	MinWorkDuration time.Duration
	// Office geofence. A radius of zero disables the distance check.
	OfficeLatitude     float64
	OfficeLongitude    float64
	OfficeRadiusMeters float64
}

// HolidayConfig holds the national holiday calendar provider settings.
type HolidayConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	// Optional in production, where env vars come from the environment.
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
		Name:     getEnv("DB_NAME", "absensi"),
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

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance rules
	minWork, err := time.ParseDuration(getEnv("ATTENDANCE_MIN_WORK_DURATION", "8h0m30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_MIN_WORK_DURATION: %w", err)
	}

	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLng, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateThreshold:      getEnv("ATTENDANCE_LATE_THRESHOLD", "08:00:00"),
		MinWorkDuration:    minWork,
		OfficeLatitude:     officeLat,
		OfficeLongitude:    officeLng,
		OfficeRadiusMeters: officeRadius,
	}

	// Holiday calendar provider
	holidayTTL, err := time.ParseDuration(getEnv("HOLIDAY_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_CACHE_TTL: %w", err)
	}

	config.Holiday = HolidayConfig{
		BaseURL:  getEnv("HOLIDAY_API_BASE_URL", "https://libur.deno.dev"),
		CacheTTL: holidayTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04:05", c.Attendance.LateThreshold); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_LATE_THRESHOLD: %w", err)
	}
	if c.Attendance.MinWorkDuration < 0 {
		return fmt.Errorf("ATTENDANCE_MIN_WORK_DURATION must not be negative")
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
