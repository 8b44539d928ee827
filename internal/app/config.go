package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

type Config struct {
	BotToken    string
	AdminUserID int64
	ChannelID   int64
	ChannelURL  string
	RequestURL  string

	CatalogURLs       []string
	CatalogTimeout    time.Duration
	CatalogAttempts   int
	CatalogRetryDelay time.Duration
	UserAgent         string

	ResultLimit   int
	Selection     domain.SelectionMode
	MinSimilarity float64
	DeleteAfter   time.Duration

	MongoURI      string
	MongoDatabase string
	RedisURL      string
	MembershipTTL time.Duration

	HTTPAddr    string
	WebhookURL  string
	WebhookAddr string
	LogLevel    string
	LogFormat   string
}

func LoadConfig() Config {
	return Config{
		BotToken:    strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		AdminUserID: getEnvInt64("ADMIN_USER_ID", 0),
		ChannelID:   getEnvInt64("CHANNEL_ID", 0),
		ChannelURL:  getEnv("CHANNEL_URL", ""),
		RequestURL:  getEnv("REQUEST_URL", ""),

		CatalogURLs:       splitCSV(getEnv("CATALOG_URLS", "")),
		CatalogTimeout:    time.Duration(getEnvInt("CATALOG_TIMEOUT_SECONDS", 10)) * time.Second,
		CatalogAttempts:   getEnvInt("CATALOG_RETRY_ATTEMPTS", 3),
		CatalogRetryDelay: time.Duration(getEnvInt("CATALOG_RETRY_DELAY_SECONDS", 2)) * time.Second,
		UserAgent:         getEnv("CATALOG_USER_AGENT", "movie-search-bot/1.0"),

		ResultLimit:   getEnvInt("RESULT_LIMIT", 6),
		Selection:     domain.NormalizeSelectionMode(strings.ToLower(getEnv("RESULT_SELECTION", "top"))),
		MinSimilarity: getEnvFloat("MATCH_MIN_SIMILARITY", 0.4),
		DeleteAfter:   time.Duration(getEnvInt("DELETE_AFTER_SECONDS", 60)) * time.Second,

		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "movie_bot"),
		RedisURL:      getEnv("REDIS_URL", ""),
		MembershipTTL: time.Duration(getEnvInt("MEMBERSHIP_CACHE_TTL_SECONDS", 300)) * time.Second,

		HTTPAddr:    getEnv("HTTP_ADDR", ":8090"),
		WebhookURL:  getEnv("WEBHOOK_URL", ""),
		WebhookAddr: getEnv("WEBHOOK_ADDR", ":5000"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		values = append(values, value)
	}
	return values
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return fallback
	}
	return parsed
}
