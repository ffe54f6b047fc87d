package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT, default=3001"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AllowedOrigins lists the browser origins allowed by CORS.
	AllowedOrigins []string `env:"FRONTEND_URL, default=http://localhost:5173"`

	// TrustedProxies lists the proxy addresses or CIDR ranges whose
	// X-Forwarded-For header is believed. Empty means the peer address is
	// always the client address.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// SeedSamplePosts inserts the sample articles into an empty blog_posts table.
	SeedSamplePosts bool `env:"SEED_SAMPLE_POSTS, default=false"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Mail     MailConfig
	Site     SiteConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET, required"`
	TokenTTL         time.Duration `env:"TOKEN_TTL, default=24h"`
	AdminUsername    string        `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword    string        `env:"ADMIN_INITIAL_PASSWORD, required"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW, default=15m"`
}

type PostgresConfig struct {
	URL      string `env:"DATABASE_URL, required"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS, default=10"`
}

// RedisConfig is optional; an empty Addr disables form dedup and login throttling.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MongoConfig is optional; an empty URI disables the submission archive.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=agl"`
}

type MailConfig struct {
	Provider        string `env:"MAIL_PROVIDER, default=log"`
	From            string `env:"MAIL_FROM, default=noreply@adsgeniuslab.com"`
	FromName        string `env:"MAIL_FROM_NAME, default=AdsGeniusLab"`
	OperatorAddress string `env:"MAIL_OPERATOR_ADDRESS, default=info@adsgeniuslab.com"`

	SendGridAPIKey string `env:"SENDGRID_API_KEY"`

	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey  string `env:"MAILGUN_API_KEY"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT, default=587"`
	SMTPUsername string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`
}

// SiteConfig holds the agency details rendered into outbound mail.
type SiteConfig struct {
	Name  string `env:"SITE_NAME, default=AdsGeniusLab"`
	URL   string `env:"SITE_URL, default=https://adsgeniuslab.com"`
	Phone string `env:"CONTACT_PHONE"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads a .env file when one is present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Auth.JWTSecret) < 16 && c.IsProduction() {
		return errors.New("JWT_SECRET must be at least 16 characters in production")
	}
	if c.Auth.LoginMaxAttempts < 1 {
		return errors.New("LOGIN_MAX_ATTEMPTS must be positive")
	}
	if _, err := c.ProxyRanges(); err != nil {
		return err
	}
	if c.Redis.Addr == "" && c.IsProduction() {
		// Login throttling depends on Redis.
		return errors.New("REDIS_ADDR is required in production")
	}
	return nil
}

// ProxyRanges parses TrustedProxies. A bare address is treated as a
// single-host range.
func (c *Config) ProxyRanges() ([]*net.IPNet, error) {
	ranges := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				bits = 32
			}
			raw = fmt.Sprintf("%s/%d", raw, bits)
		}
		_, ipNet, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipNet)
	}
	return ranges, nil
}
