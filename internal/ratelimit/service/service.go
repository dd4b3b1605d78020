package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"rutcheck/internal/ratelimit/models"
	dErrors "rutcheck/pkg/domain-errors"
)

// BucketStore counts requests per key inside a sliding window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// Config maps each endpoint class to its per-IP policy.
type Config struct {
	Policies map[models.EndpointClass]models.Policy
}

// DefaultConfig allows a fast typist on the live endpoints and a modest
// number of submissions.
func DefaultConfig() *Config {
	return &Config{
		Policies: map[models.EndpointClass]models.Policy{
			models.ClassLive:   {Requests: 1200, Window: time.Minute},
			models.ClassSubmit: {Requests: 120, Window: time.Minute},
		},
	}
}

// Policy returns the policy for class. Unknown classes fall back to the
// stricter submit policy.
func (c *Config) Policy(class models.EndpointClass) models.Policy {
	if p, ok := c.Policies[class]; ok {
		return p
	}
	return c.Policies[models.ClassSubmit]
}

type Service struct {
	buckets BucketStore
	logger  *slog.Logger
	config  *Config
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

const keyPrefixIP = "ip"

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, fmt.Errorf("buckets store is required")
	}
	svc := &Service{
		buckets: buckets,
		logger:  slog.Default(),
		config:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckIPRateLimit consumes one request from the client's budget for class.
func (s *Service) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.Result, error) {
	policy := s.config.Policy(class)
	key := fmt.Sprintf("%s:%s:%s", keyPrefixIP, models.SanitizeKeySegment(ip), class)

	result, err := s.buckets.Allow(ctx, key, policy.Requests, policy.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}
	if !result.Allowed {
		s.logger.WarnContext(ctx, "rate limit exceeded",
			"ip_prefix", AnonymizeIP(ip),
			"class", class,
			"limit", policy.Requests,
			"window", policy.Window,
		)
	}
	return result, nil
}

// AnonymizeIP keeps the /24 of an IPv4 address or the /48 of an IPv6 one.
func AnonymizeIP(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap()
	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.String()
}
