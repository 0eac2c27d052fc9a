package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StreakPerCompletion = "per_completion"
	StreakDaily         = "daily"
)

type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins string

	// AdminUserIDs is parsed once from ADMIN_USER_IDS and seeded as ADMIN roles at startup.
	AdminUserIDs []string

	StreakMode    string
	StreakSweepAt string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		Env:           getEnv("ENV", "development"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "learnhub"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		AdminUserIDs:  ParseAdminUserIDs(os.Getenv("ADMIN_USER_IDS")),
		StreakMode:    strings.ToLower(getEnv("STREAK_MODE", StreakPerCompletion)),
		StreakSweepAt: getEnv("STREAK_SWEEP_AT", "00:05"),
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required when ENV=%s", cfg.Env)
		}
		cfg.JWTSecret = "secret"
		log.Println("WARNING: Using default JWT_SECRET. Set JWT_SECRET before deploying")
	}

	switch cfg.StreakMode {
	case StreakPerCompletion, StreakDaily:
	default:
		return nil, fmt.Errorf("invalid STREAK_MODE %q", cfg.StreakMode)
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if _, err := time.Parse("15:04", cfg.StreakSweepAt); err != nil {
		return nil, fmt.Errorf("invalid STREAK_SWEEP_AT %q: %w", cfg.StreakSweepAt, err)
	}

	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres keyword/value DSN.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == "sqlite" {
		return c.DBName + ".db"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// ParseAdminUserIDs splits a comma-separated allow-list, dropping blanks and duplicates.
func ParseAdminUserIDs(raw string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
