package docx2jats

import (
	"time"

	"github.com/alnah/go-docx2jats/internal/ident"
)

// defaultTimeout bounds one engine invocation when no timeout is specified.
const defaultTimeout = 2 * time.Minute

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	binary  string
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the per-invocation engine timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docx2jats: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPandocBinary overrides the pandoc binary name or path.
func WithPandocBinary(binary string) Option {
	return func(s *Service) {
		s.cfg.binary = binary
	}
}

// WithEngine injects a conversion engine (e.g., a stub in tests).
func WithEngine(e Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

// WithIDGenerator injects the identifier generator used by markup synthesis.
// Deterministic generators make synthesized output reproducible in tests.
func WithIDGenerator(g ident.Generator) Option {
	return func(s *Service) {
		s.ids = g
	}
}
