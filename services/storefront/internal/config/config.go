package config

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"

	envcfg "github.com/Skotchmaster/sakhi_shop/pkg/config"
)

const (
	BackendCookie = "cookie"
	BackendMemory = "memory"
	BackendSQL    = "sql"
	BackendRedis  = "redis"
)

var backends = []string{BackendCookie, BackendMemory, BackendSQL, BackendRedis}

type Config struct {
	ServiceName string
	Port        string
	LogLevel    string

	CartBackend string
	DatabaseURL string
	RedisURL    string
	CartTTL     time.Duration

	SessionSecret []byte
	// set when SESSION_SECRET was empty and a random one was generated
	EphemeralSecret bool
	// Secure flag for the session and cart cookies.
	CookieSecure bool
	// Secure flag for the CSRF token cookie.
	CSRFSecure bool

	KafkaBrokers []string
	CartTopic    string
}

// Load reads an optional .env file and then the environment. Invalid settings are fatal.
func Load(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("no %s file, using process env", envFile)
		}
	}

	switch envcfg.EnvDefault("CART_BACKEND", BackendCookie) {
	case BackendSQL:
		envcfg.MustNonEmpty(os.Getenv("DATABASE_URL"), "DATABASE_URL")
	case BackendRedis:
		envcfg.MustNonEmpty(os.Getenv("REDIS_URL"), "REDIS_URL")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		ServiceName:   envcfg.EnvDefault("SERVICE_NAME", "storefront"),
		Port:          envcfg.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:      envcfg.EnvDefault("LOG_LEVEL", "info"),
		CartBackend:   envcfg.EnvDefault("CART_BACKEND", BackendCookie),
		DatabaseURL:   envcfg.EnvDefault("DATABASE_URL", ""),
		RedisURL:      envcfg.EnvDefault("REDIS_URL", ""),
		CartTTL:       time.Duration(envcfg.EnvIntDefault("CART_TTL_HOURS", 24*30)) * time.Hour,
		SessionSecret: []byte(envcfg.EnvDefault("SESSION_SECRET", "")),
		CookieSecure:  envcfg.EnvBoolDefault("COOKIE_SECURE", false),
		CSRFSecure:    envcfg.EnvBoolDefault("CSRF_SECURE", false),
		KafkaBrokers:  envcfg.CSV(envcfg.EnvDefault("KAFKA_BROKERS", "")),
		CartTopic:     envcfg.EnvDefault("KAFKA_CART_TOPIC", "cart_events"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(cfg.SessionSecret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		cfg.EphemeralSecret = true
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(backends, c.CartBackend) {
		return fmt.Errorf("CART_BACKEND %q: want one of %v", c.CartBackend, backends)
	}
	if c.CartBackend == BackendSQL && c.DatabaseURL == "" {
		return fmt.Errorf("missing required env DATABASE_URL for CART_BACKEND=%s", BackendSQL)
	}
	if c.CartBackend == BackendRedis && c.RedisURL == "" {
		return fmt.Errorf("missing required env REDIS_URL for CART_BACKEND=%s", BackendRedis)
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("CART_TTL_HOURS must be positive")
	}
	return nil
}

// ServerSide reports whether carts live on the server and need a session cookie.
func (c *Config) ServerSide() bool {
	return c.CartBackend != BackendCookie
}
