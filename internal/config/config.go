package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every tunable of the analysis pipeline. Values come from
// the environment with sensible defaults; cmd loads .env beforehand.
type Config struct {
	Environment string
	LogLevel    string

	Cache struct {
		Path          string
		RetentionDays int
		NewsTTL       time.Duration
	}

	Analysis struct {
		LevelCount      int
		LevelTolerance  float64
		RiskRewardRatio float64
	}

	Monitoring struct {
		PrometheusPort int
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	cfg.Cache.Path = getEnv("CACHE_DB_PATH", "data/stock_data.db")
	cfg.Cache.RetentionDays = getEnvInt("CACHE_RETENTION_DAYS", 90)
	cfg.Cache.NewsTTL = getEnvDuration("NEWS_CACHE_TTL", 24*time.Hour)

	cfg.Analysis.LevelCount = getEnvInt("LEVEL_COUNT", 3)
	cfg.Analysis.LevelTolerance = getEnvFloat("LEVEL_MERGE_TOLERANCE", 0.005)
	cfg.Analysis.RiskRewardRatio = getEnvFloat("RISK_REWARD_RATIO", 2.0)

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 0)

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
