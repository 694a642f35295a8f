package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"yatube/internal/logging"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite3"
)

type DB struct {
	Driver     string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	DbPATH     string
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort      int
	DB              DB
	Log             Log
	SecretKey       string
	SessionDuration time.Duration
	SecureCookies   bool
	PostsPerPage    int
	LoginURL        string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		Driver:     getEnv("DB_DRIVER", DriverPostgres),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "yatube"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
		DbPATH:     getEnv("DB_PATH", "yatube.sqlite3"),
	}
}

func LoadLog() Log {
	return Log{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logging.Warn().Msg(".env файл не найден, используются переменные окружения")
	}

	perPage := getEnvAsInt("POSTS_PER_PAGE", 10)
	if perPage < 1 {
		perPage = 10
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		DB:              LoadDB(),
		Log:             LoadLog(),
		SecretKey:       getEnv("SECRET_KEY", ""),
		SessionDuration: parseDuration(getEnv("SESSION_DURATION", "336h"), 14*24*time.Hour),
		SecureCookies:   getEnvBool("SECURE_COOKIES", false),
		PostsPerPage:    perPage,
		LoginURL:        getEnv("LOGIN_URL", "/auth/login/"),
	}
}
