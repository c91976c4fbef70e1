package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// GatewayCredentials holds the merchant account configured for the real
// payment gateway. An incomplete or placeholder set downgrades the service
// to the mock gateway.
type GatewayCredentials struct {
	SupplierID string
	TerminalID string
	Secret     string
	Currency   string
}

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	PublicBaseURL       string
	Gateway             GatewayCredentials
	MailRelayAddress    string
	AMQPURL             string
	AuthSecret          string
	AdminEmails         []string
	SideEffectQueueSize int
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultPublicBaseURL       = "http://localhost:8080"
	defaultAuthSecret          = "change-me-in-production"
	defaultCurrency            = "USD"
	defaultSideEffectQueueSize = 256
	defaultWorkerPoolSize      = 2
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:    getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:   getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL: getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		Gateway: GatewayCredentials{
			SupplierID: getString(lookup, "PAYMENT_SUPPLIER_ID", ""),
			TerminalID: getString(lookup, "PAYMENT_TERMINAL_ID", ""),
			Secret:     getString(lookup, "PAYMENT_SECRET", ""),
			Currency:   getString(lookup, "PAYMENT_CURRENCY", defaultCurrency),
		},
		MailRelayAddress:    getString(lookup, "MAIL_RELAY_ADDRESS", ""),
		AMQPURL:             getString(lookup, "AMQP_URL", ""),
		AuthSecret:          getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SideEffectQueueSize: getInt(lookup, "SIDE_EFFECT_QUEUE_SIZE", defaultSideEffectQueueSize),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	adminEmails := getString(lookup, "ADMIN_EMAILS", "")

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (empty selects the in-memory store)")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", cfg.PublicBaseURL, "Public base URL for payment redirect targets")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&adminEmails, "admin-emails", adminEmails, "Comma separated emails granted the admin role on registration")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent side-effect workers")
	fs.IntVar(&cfg.SideEffectQueueSize, "queue-size", cfg.SideEffectQueueSize, "Side-effect queue capacity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("PAYMENT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read payment secret file: %w", err)
		}
		cfg.Gateway.Secret = strings.TrimSpace(string(content))
	}

	for _, email := range strings.Split(adminEmails, ",") {
		if email = strings.TrimSpace(email); email != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, strings.ToLower(email))
		}
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SideEffectQueueSize <= 0 {
		cfg.SideEffectQueueSize = defaultSideEffectQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return cfg, nil
}

// IsAdminEmail reports whether the email is on the configured admin list.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
