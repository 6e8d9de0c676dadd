package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all runtime settings, loaded once from the
// environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	JWTSecret     string
	LogMode       string
	DataDir       string

	// Session lifecycle
	InactivityTimeout time.Duration
	SweepInterval     time.Duration

	// Per-participant answer throttling
	AnswerRateLimit  int64
	AnswerRateWindow time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "careercompass"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:          getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		LogMode:           getEnv("LOG_MODE", "dev"),
		DataDir:           getEnv("DATA_DIR", "data"),
		InactivityTimeout: time.Duration(getEnvInt64("SESSION_INACTIVITY_HOURS", 24)) * time.Hour,
		SweepInterval:     time.Duration(getEnvInt64("SWEEP_INTERVAL_MINUTES", 15)) * time.Minute,
		AnswerRateLimit:   getEnvInt64("ANSWER_RATE_LIMIT", 30),
		AnswerRateWindow:  time.Duration(getEnvInt64("ANSWER_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
