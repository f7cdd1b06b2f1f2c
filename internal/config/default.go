package config

import "time"

// Default configuration values.
const (
	DefaultPollInterval = 25 * time.Millisecond
	DefaultTimeout      = 0 * time.Second // unbounded

	DefaultUserAgent    = "syncbridge/1.0"
	DefaultMaxBodyBytes = 32 << 20
	DefaultRateBurst    = 1

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Bridge: BridgeSection{
			PollInterval:   DefaultPollInterval,
			DefaultTimeout: DefaultTimeout,
		},
		HTTP: HTTPSection{
			UserAgent:    DefaultUserAgent,
			MaxBodyBytes: DefaultMaxBodyBytes,
			RateBurst:    DefaultRateBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
