package config

import "time"

// Config is the root configuration for syncbridge.
type Config struct {
	Bridge BridgeSection `koanf:"bridge"`
	HTTP   HTTPSection   `koanf:"http"`
	Log    LogSection    `koanf:"log"`
}

// BridgeSection configures the synchronous bridge core.
type BridgeSection struct {
	// PollInterval is the wait loop's probe cadence.
	PollInterval time.Duration `koanf:"poll_interval"`

	// DefaultTimeout bounds calls that carry no explicit timeout.
	// Zero means no default bound.
	DefaultTimeout time.Duration `koanf:"default_timeout"`

	// MarkerDir overrides the namespace the marker working directory
	// is created under. Empty means the system temp directory.
	MarkerDir string `koanf:"marker_dir"`
}

// HTTPSection configures the HTTP executor.
type HTTPSection struct {
	// UserAgent is sent on requests that carry no User-Agent of their own.
	UserAgent string `koanf:"user_agent"`

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RateLimit is the client-side requests-per-second cap.
	// Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the limiter's burst size; only meaningful with
	// RateLimit > 0.
	RateBurst int `koanf:"rate_burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
