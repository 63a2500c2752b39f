package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMySQL  = "mysql"
	StoreDriverMemory = "memory"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	StoreDriver    string
	TrustedProxies []string

	RedisAddr          string
	RedisStream        string
	RedisStreamMaxLen  int64
	EventRetryAttempts uint

	OverdueScanInterval time.Duration

	LogLevel string
	LogFile  string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:             getEnv("APP_PORT", "8080"),
		DbHost:              getEnv("MYSQL_HOST", "db"),
		DbPort:              getEnv("MYSQL_PORT", "3306"),
		DbUser:              getEnv("MYSQL_USER", "taskhub"),
		DbPassword:          getEnv("MYSQL_PASSWORD", "taskhub"),
		DbName:              getEnv("MYSQL_DATABASE", "taskhub"),
		DbParams:            getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMySQL)),
		TrustedProxies:      parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisStream:         getEnv("REDIS_STREAM", "taskhub:domain-events"),
		RedisStreamMaxLen:   getEnvInt64("REDIS_STREAM_MAXLEN", 10000),
		EventRetryAttempts:  uint(getEnvInt64("EVENT_RETRY_ATTEMPTS", 3)),
		OverdueScanInterval: getEnvDuration("OVERDUE_SCAN_INTERVAL", 15*time.Minute),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFile:             getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

// getEnvDuration accepts Go durations ("90s", "15m"); zero disables the job.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
