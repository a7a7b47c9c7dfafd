package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is a rate limit for one endpoint pattern. Path matches by prefix;
// an empty Method matches any method. Limit <= 0 means unlimited.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // burst capacity, defaults to Limit
}

// Config holds limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Rules:           DefaultRules(),
	}
}

// LoadConfig reads limiter configuration from environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", true)
	if !cfg.Enabled {
		return cfg
	}
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

// DefaultRules tiers the API by cost: scoring runs hit paid LLM and
// embedding APIs, auth endpoints are brute-force targets, reads are cheap,
// and health checks are unlimited.
func DefaultRules() []Rule {
	return []Rule{
		// Scoring runs: the expensive tier.
		{Path: "/sessions/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Auth: moderate, slows credential stuffing.
		{Path: "/auth/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Reads.
		{Path: "/sessions", Method: "GET", Limit: 300, Window: time.Minute},
		{Path: "/runs/", Method: "GET", Limit: 300, Window: time.Minute},

		// Unlimited.
		{Path: "/health", Limit: 0},
		{Path: "/metrics", Limit: 0},
	}
}

// match returns the first rule whose path prefix and method match, or a
// rule built from the defaults.
func (c *Config) match(path, method string) Rule {
	for _, r := range c.Rules {
		if !strings.HasPrefix(path, r.Path) {
			continue
		}
		if r.Method != "" && r.Method != method {
			continue
		}
		return r
	}
	return Rule{
		Path:   path,
		Method: method,
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
	}
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
