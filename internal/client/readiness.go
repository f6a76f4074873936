package client

import (
	"context"
	"time"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollAttempts = 10
)

// TokenSource reports whether the external access control is ready and,
// once it is, the respondent token. An empty token means not logged in.
type TokenSource interface {
	Token() (token string, ready bool)
}

type TokenFunc func() (string, bool)

func (f TokenFunc) Token() (string, bool) { return f() }

// StaticToken is a source that is always ready.
type StaticToken string

func (s StaticToken) Token() (string, bool) { return string(s), true }

type PollConfig struct {
	Interval time.Duration
	Attempts int
}

func DefaultPollConfig() PollConfig {
	return PollConfig{Interval: DefaultPollInterval, Attempts: DefaultPollAttempts}
}

// WaitReady polls src at most cfg.Attempts times, cfg.Interval apart.
// When no attempt reports ready it returns ErrInitializationTimeout and does
// not retry further.
func WaitReady(ctx context.Context, src TokenSource, cfg PollConfig) (string, error) {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = DefaultPollAttempts
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		if token, ready := src.Token(); ready {
			return token, nil
		}
		if attempt >= attempts {
			return "", ErrInitializationTimeout
		}

		if timer == nil {
			timer = time.NewTimer(cfg.Interval)
		} else {
			timer.Reset(cfg.Interval)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
