package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyBridge(&cfg.Bridge); err != nil {
		return err
	}
	if err := verifyHTTP(&cfg.HTTP); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyBridge(cfg *BridgeSection) error {
	if cfg.PollInterval <= 0 {
		return errors.New("bridge.poll_interval must be positive")
	}
	if cfg.DefaultTimeout < 0 {
		return errors.New("bridge.default_timeout must not be negative")
	}
	return nil
}

func verifyHTTP(cfg *HTTPSection) error {
	if cfg.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	if cfg.RateLimit < 0 {
		return errors.New("http.rate_limit must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return errors.New("http.rate_burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return errors.New("log.format must be json or text")
	}
	return nil
}
