package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultDatabaseURL = "file:cellar_society.db"

type Config struct {
	ServiceName string
	LogLevel    string

	ServerPort int

	DatabaseURL string

	SessionSecret []byte
	SessionTTL    time.Duration

	CORSOrigins []string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisURL string

	OTLPEndpoint string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", ""),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: EnvDefault("DATABASE_URL", DefaultDatabaseURL),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    time.Duration(EnvIntDefault("SESSION_TTL_MINUTES", 12*60)) * time.Minute,

		CORSOrigins: CSV(os.Getenv("CORS_ORIGINS")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		RedisURL: os.Getenv("REDIS_URL"),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
