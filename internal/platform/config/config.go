package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// PostgresURL is optional; when empty the service runs on in-memory
	// stores (local development and tests).
	PostgresURL string

	Redis RedisConfig
	Kafka KafkaConfig

	// JWTSigningKey validates merchant bearer tokens.
	JWTSigningKey string
	// AdminToken guards the ops-console endpoints.
	AdminToken string

	// RemediationCooldown is the minimum gap between automated remediation
	// runs for the same merchant. Zero disables the cooldown.
	RemediationCooldown time.Duration

	// ReadinessCacheTTL bounds staleness of cached readiness reads. Gating
	// decisions always bypass the cache.
	ReadinessCacheTTL time.Duration
}

// RedisConfig holds connection settings for the optional Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the optional audit event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VAYVA_OPS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cooldown := 30 * time.Second
	if raw := os.Getenv("REMEDIATION_COOLDOWN_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil {
			cooldown = time.Duration(secs) * time.Second
		}
	}

	cacheTTL := 60 * time.Second
	if raw := os.Getenv("READINESS_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil {
			cacheTTL = time.Duration(secs) * time.Second
		}
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = splitAndTrim(raw)
	}
	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "vayva.ops.audit"
	}

	return Server{
		Addr:        addr,
		PostgresURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
		JWTSigningKey:       jwtSigningKey,
		AdminToken:          os.Getenv("ADMIN_TOKEN"),
		RemediationCooldown: cooldown,
		ReadinessCacheTTL:   cacheTTL,
	}
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
