package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// BackendMemory keeps the catalog in an in-process map.
	BackendMemory = "memory"
	// BackendRedis persists the catalog in Redis.
	BackendRedis = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend string // "memory" | "redis"
	SeedFile     string // optional YAML catalog to seed instead of the built-in demos
	SeedDisabled bool   // true => never seed, even on an empty store

	AdminToken        string   // static bearer token for the admin surface
	AdminAllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy        bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins       []string // allowed CORS origins, default "*"

	// SDK lifecycle bridge
	ReadyTimeout time.Duration // how long a frame may stay silent before load_error (default 15s)
	LoadGrace    time.Duration // post-load wait before assuming the game has no SDK (default 3s)

	// Telemetry
	EventBuffer       int // sink channel capacity; overflow drops events
	EventsBurst       int // rate-limit burst for POST /api/v1/events
	EventsPerIPPerMin int // rate-limit refill for POST /api/v1/events

	// Redis (only required when StoreBackend == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("KIX_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("KIX_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("KIX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("KIX_PRETTY_LOG", true),

		// Storage
		StoreBackend: getenv("KIX_STORE_BACKEND", BackendMemory),
		SeedFile:     getenv("KIX_SEED_FILE", ""),
		SeedDisabled: mustBool("KIX_SEED_DISABLED", false),

		// Admin surface
		AdminToken:        requireEnv("KIX_ADMIN_TOKEN"),
		AdminAllowedCIDRS: splitAndTrim(getenv("KIX_ADMIN_ALLOWED_CIDRS", "")),
		TrustProxy:        mustBool("KIX_TRUST_PROXY", true),
		CORSOrigins:       splitAndTrim(getenv("KIX_CORS_ORIGINS", "*")),

		// Lifecycle bridge
		ReadyTimeout: mustDuration("KIX_SDK_READY_TIMEOUT", 15*time.Second),
		LoadGrace:    mustDuration("KIX_SDK_LOAD_GRACE", 3*time.Second),

		// Telemetry
		EventBuffer:       getenvInt("KIX_EVENT_BUFFER", 256),
		EventsBurst:       getenvInt("KIX_EVENTS_BURST", 30),
		EventsPerIPPerMin: getenvInt("KIX_EVENTS_PER_IP_PER_MIN", 120),

		// Redis settings
		RedisAddr:           getenv("KIX_REDIS_ADDR", ""),
		RedisUser:           getenv("KIX_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("KIX_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("KIX_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	switch cfg.StoreBackend {
	case BackendMemory:
		// nothing else required
	case BackendRedis:
		if cfg.RedisAddr == "" {
			panic("❌ FATAL: KIX_REDIS_ADDR is required when KIX_STORE_BACKEND=redis")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown KIX_STORE_BACKEND %q (want %q or %q)",
			cfg.StoreBackend, BackendMemory, BackendRedis))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
