package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Environment string
		LogLevel    string
		HTTPAddr    string
	}

	Market struct {
		TickMinInterval   time.Duration
		BroadcastInterval time.Duration
	}

	News struct {
		FeedURL         string
		FetchTimeout    time.Duration
		MinArticles     int
		MaxArticles     int
		RefreshInterval time.Duration // 0 disables periodic refresh
	}

	ClickHouse struct {
		Host         string
		Port         int
		User         string
		Password     string
		Database     string
		QueryTimeout time.Duration
		Debug        bool
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	// App settings
	cfg.App.Environment = getEnvOrDefault("APP_ENV", "production")
	cfg.App.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")
	cfg.App.HTTPAddr = getEnvOrDefault("HTTP_ADDR", ":8000")

	// Market simulation settings
	cfg.Market.TickMinInterval = time.Duration(getEnvAsIntOrDefault("TICK_MIN_INTERVAL_MS", 1000)) * time.Millisecond
	cfg.Market.BroadcastInterval = time.Duration(getEnvAsIntOrDefault("BROADCAST_INTERVAL_MS", 1500)) * time.Millisecond

	// News feed settings
	cfg.News.FeedURL = getEnvOrDefault("NEWS_FEED_URL", "https://yourstory.com/feed")
	cfg.News.FetchTimeout = time.Duration(getEnvAsIntOrDefault("NEWS_FETCH_TIMEOUT_SECS", 10)) * time.Second
	cfg.News.MinArticles = getEnvAsIntOrDefault("NEWS_MIN_ARTICLES", 5)
	cfg.News.MaxArticles = getEnvAsIntOrDefault("NEWS_MAX_ARTICLES", 10)
	cfg.News.RefreshInterval = time.Duration(getEnvAsIntOrDefault("NEWS_REFRESH_INTERVAL_MINS", 0)) * time.Minute

	// ClickHouse settings
	cfg.ClickHouse.Host = getEnvOrDefault("CLICKHOUSE_HOST", "localhost")
	cfg.ClickHouse.Port = getEnvAsIntOrDefault("CLICKHOUSE_PORT", 9000)
	cfg.ClickHouse.User = getEnvOrDefault("CLICKHOUSE_USER", "default")
	cfg.ClickHouse.Password = os.Getenv("CLICKHOUSE_PASSWORD")
	cfg.ClickHouse.Database = getEnvOrDefault("CLICKHOUSE_DB", "default")
	cfg.ClickHouse.QueryTimeout = time.Duration(getEnvAsIntOrDefault("CLICKHOUSE_QUERY_TIMEOUT_SECS", 30)) * time.Second
	cfg.ClickHouse.Debug = getEnvOrDefault("APP_ENV", "production") != "production"

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
