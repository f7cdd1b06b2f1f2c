package config

import (
	"testing"
	"time"
)

func TestDefaultVerifies(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("default configuration should verify, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"zero poll interval", func(c *Config) { c.Bridge.PollInterval = 0 }, true},
		{"negative default timeout", func(c *Config) { c.Bridge.DefaultTimeout = -time.Second }, true},
		{"zero max body bytes", func(c *Config) { c.HTTP.MaxBodyBytes = 0 }, true},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimit = -1 }, true},
		{"rate limit without burst", func(c *Config) {
			c.HTTP.RateLimit = 10
			c.HTTP.RateBurst = 0
		}, true},
		{"rate limit with burst", func(c *Config) {
			c.HTTP.RateLimit = 10
			c.HTTP.RateBurst = 2
		}, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"text log format", func(c *Config) { c.Log.Format = "text" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
