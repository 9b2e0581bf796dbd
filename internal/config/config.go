package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"

	EngineNative = "native"
	EngineChrome = "chrome"
)

type Config struct {
	ListenPort      string        // ex: ":5000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, chrome renders need most of it

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ConfigFile string // optional YAML overlay, environment wins

	// Persistence
	Store      string // "file" | "redis"
	ResumesDir string // file backend directory

	// Rendering
	PDFEngine     string        // "native" | "chrome"
	ChromePath    string        // optional chrome executable
	RenderTimeout time.Duration // chrome render deadline

	// Redis (only when Store == "redis")
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict health routes to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	ExportBurst     int // export rate limiter bucket size
	ExportPerMinute int // export rate limiter refill rate
}

// Load reads the configuration from the environment, falling back to the
// YAML file named by VITAE_CONFIG_FILE and then to defaults. Invalid
// settings panic.
func Load() *Config {
	e := env{}
	file := os.Getenv("VITAE_CONFIG_FILE")
	if file != "" {
		overlay, err := readOverlay(file)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: %v", err))
		}
		e.overlay = overlay
	}

	cfg := &Config{
		// Server settings
		ListenPort:      e.getenv("VITAE_LISTEN_PORT", ":5000"),
		ShutdownTimeout: e.mustDuration("VITAE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  e.mustDuration("VITAE_REQUEST_TIMEOUT", 30*time.Second),

		// Logging
		LogLevel:  e.getenv("VITAE_LOG_LEVEL", "info"),
		PrettyLog: e.mustBool("VITAE_PRETTY_LOG", true),

		ConfigFile: file,

		// Persistence
		Store:      strings.ToLower(e.getenv("VITAE_STORE", StoreFile)),
		ResumesDir: e.getenv("VITAE_RESUMES_DIR", "resumes"),

		// Rendering
		PDFEngine:     strings.ToLower(e.getenv("VITAE_PDF_ENGINE", EngineNative)),
		ChromePath:    e.getenv("VITAE_CHROME_PATH", ""),
		RenderTimeout: e.mustDuration("VITAE_RENDER_TIMEOUT", 60*time.Second),

		// Redis settings
		RedisAddr:             e.getenv("VITAE_REDIS_ADDR", ""),
		RedisUser:             e.getenv("VITAE_REDIS_USERNAME", ""),
		RedisPasswordRequired: e.mustBool("VITAE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         e.getenv("VITAE_REDIS_PASSWORD", ""),
		RedisDB:               e.getenvInt("VITAE_REDIS_DB", 0),
		RedisDT:               e.mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               e.mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               e.mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          e.mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      e.mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         e.getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   e.mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    e.mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    e.getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(e.getenv("VITAE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(e.getenv("VITAE_ALLOWED_CIDRS", "")),
		TrustProxy:   e.mustBool("VITAE_TRUST_PROXY", false),

		ExportBurst:     e.getenvInt("VITAE_EXPORT_BURST", 10),
		ExportPerMinute: e.getenvInt("VITAE_EXPORT_PER_MIN", 30),
	}

	cfg.validate()

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() {
	switch c.Store {
	case StoreFile:
	case StoreRedis:
		if c.RedisAddr == "" {
			panic("❌ FATAL: VITAE_REDIS_ADDR is required when VITAE_STORE=redis")
		}
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			panic("❌ FATAL: VITAE_REDIS_PASSWORD is required when VITAE_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: VITAE_STORE must be %q or %q, got %q", StoreFile, StoreRedis, c.Store))
	}

	switch c.PDFEngine {
	case EngineNative, EngineChrome:
	default:
		panic(fmt.Sprintf("❌ FATAL: VITAE_PDF_ENGINE must be %q or %q, got %q", EngineNative, EngineChrome, c.PDFEngine))
	}

	if c.ExportBurst <= 0 || c.ExportPerMinute <= 0 {
		panic("❌ FATAL: VITAE_EXPORT_BURST and VITAE_EXPORT_PER_MIN must be > 0")
	}
}

// readOverlay parses a flat YAML mapping of variable names to values:
//
//	VITAE_STORE: redis
//	VITAE_REDIS_ADDR: localhost:6379
//	REDIS_POOL_SIZE: 20
func readOverlay(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	overlay := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config file %s: %s must be a scalar", path, k)
		}
		overlay[strings.ToUpper(strings.TrimSpace(k))] = fmt.Sprint(v)
	}
	return overlay, nil
}

// env resolves a variable from the process environment, then the overlay.
type env struct {
	overlay map[string]string
}

func (e env) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e.overlay[key]
}

// helpers
func (e env) getenv(key, def string) string {
	if v := e.lookup(key); v != "" {
		return v
	}
	return def
}

func (e env) getenvInt(key string, def int) int {
	if v := e.lookup(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (e env) mustBool(key string, def bool) bool {
	if v := e.lookup(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func (e env) mustDuration(key string, def time.Duration) time.Duration {
	if v := e.lookup(key); v != "" {
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
