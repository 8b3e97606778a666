package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	SMTP     SMTPConfig
	Leave    LeaveConfig
	Payroll  PayrollConfig
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

// SMTPConfig holds mail delivery configuration for verification emails
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// LeaveConfig holds annual leave allotments per type and the overlap policy.
// Unpaid leave has no allotment and is never balance-tracked.
type LeaveConfig struct {
	PaidAllotment   int
	SickAllotment   int
	CasualAllotment int
	RejectOverlap   bool
}

// PayrollConfig holds payroll validation policy
type PayrollConfig struct {
	RejectNegativeNet bool
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly
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
		Name:     getEnv("DB_NAME", "peoplebase-hrm"),
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

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@peoplebase.local"),
	}

	// Leave allotments are policy, not law; override per deployment
	paidAllotment, err := strconv.Atoi(getEnv("LEAVE_PAID_ALLOTMENT", "18"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_PAID_ALLOTMENT: %w", err)
	}
	sickAllotment, err := strconv.Atoi(getEnv("LEAVE_SICK_ALLOTMENT", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_SICK_ALLOTMENT: %w", err)
	}
	casualAllotment, err := strconv.Atoi(getEnv("LEAVE_CASUAL_ALLOTMENT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_CASUAL_ALLOTMENT: %w", err)
	}

	config.Leave = LeaveConfig{
		PaidAllotment:   paidAllotment,
		SickAllotment:   sickAllotment,
		CasualAllotment: casualAllotment,
		RejectOverlap:   getEnvBool("LEAVE_REJECT_OVERLAP", false),
	}

	config.Payroll = PayrollConfig{
		RejectNegativeNet: getEnvBool("PAYROLL_REJECT_NEGATIVE_NET", false),
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
	if c.Leave.PaidAllotment < 0 || c.Leave.SickAllotment < 0 || c.Leave.CasualAllotment < 0 {
		return fmt.Errorf("leave allotments must not be negative")
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

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
