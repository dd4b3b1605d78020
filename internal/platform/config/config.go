package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"RUTCHECK_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"RUTCHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"RUTCHECK_LOG_FORMAT" envDefault:"json"`
	RequestTimeout  time.Duration `env:"RUTCHECK_REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"RUTCHECK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// SelfTest logs the diagnostic RUT table at startup.
	SelfTest bool `env:"RUTCHECK_SELFTEST" envDefault:"true"`
	// TrustedProxies lists CIDRs (or bare IPs) whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means clients connect directly.
	TrustedProxies []string `env:"RUTCHECK_TRUSTED_PROXIES" envSeparator:","`
	// ProxyPrefixes is TrustedProxies parsed by FromEnv.
	ProxyPrefixes []netip.Prefix

	RateLimit RateLimit `envPrefix:"RUTCHECK_RATE_LIMIT_"`
}

// RateLimit holds the per-IP quotas. Windows are one minute.
type RateLimit struct {
	Enabled         bool          `env:"ENABLED" envDefault:"true"`
	LivePerMinute   int           `env:"LIVE_PER_MINUTE" envDefault:"1200"`
	SubmitPerMinute int           `env:"SUBMIT_PER_MINUTE" envDefault:"120"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		return Server{}, fmt.Errorf("RUTCHECK_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	prefixes, err := ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return Server{}, err
	}
	cfg.ProxyPrefixes = prefixes
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.LivePerMinute <= 0 || cfg.RateLimit.SubmitPerMinute <= 0 {
			return Server{}, fmt.Errorf("rate limits must be positive, got live=%d submit=%d",
				cfg.RateLimit.LivePerMinute, cfg.RateLimit.SubmitPerMinute)
		}
		if cfg.RateLimit.SweepInterval <= 0 {
			return Server{}, fmt.Errorf("RUTCHECK_RATE_LIMIT_SWEEP_INTERVAL must be positive, got %s", cfg.RateLimit.SweepInterval)
		}
	}
	return cfg, nil
}

// ParseTrustedProxies turns CIDR or single-address entries into prefixes.
func ParseTrustedProxies(raw []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("RUTCHECK_TRUSTED_PROXIES: %w", err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("RUTCHECK_TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
