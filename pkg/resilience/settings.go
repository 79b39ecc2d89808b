package resilience

import (
	"time"

	"github.com/neuroeducatimo/landing/pkg/config"
)

// BuildSettings produces breaker Settings for a named channel, filling in
// defaults for unset knobs.
func BuildSettings(name string, cfg config.BreakerConfig) Settings {
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	failures := cfg.FailureThreshold
	if failures <= 0 {
		failures = 5
	}

	return Settings{
		Name:             name,
		Interval:         interval,
		Timeout:          timeout,
		FailureThreshold: uint32(failures),
		SuccessThreshold: 1,
	}
}

// BuildRetryConfig returns EmailRetryConfig with the configured attempt
// count. Unset means a single attempt: a failed send is final.
func BuildRetryConfig(cfg config.BreakerConfig) RetryConfig {
	rc := EmailRetryConfig()
	rc.MaxAttempts = 1
	if cfg.RetryAttempts > 1 {
		rc.MaxAttempts = cfg.RetryAttempts
	}
	return rc
}
