package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReady_StopsAfterExactlyTenAttempts(t *testing.T) {
	checks := 0
	src := TokenFunc(func() (string, bool) {
		checks++
		return "", false
	})

	_, err := WaitReady(context.Background(), src, PollConfig{Interval: time.Millisecond, Attempts: DefaultPollAttempts})

	require.ErrorIs(t, err, ErrInitializationTimeout)
	assert.Equal(t, 10, checks)
}

func TestWaitReady_ReturnsTokenOnceReady(t *testing.T) {
	checks := 0
	src := TokenFunc(func() (string, bool) {
		checks++
		return "tok", checks == 3
	})

	token, err := WaitReady(context.Background(), src, PollConfig{Interval: time.Millisecond, Attempts: 10})

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, 3, checks)
}

func TestWaitReady_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WaitReady(ctx, TokenFunc(func() (string, bool) { return "", false }), PollConfig{Interval: time.Hour, Attempts: 10})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultPollConfig(t *testing.T) {
	cfg := DefaultPollConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 10, cfg.Attempts)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", ErrInitializationTimeout, MsgInitializationTimeout},
		{"not logged in", ErrNotAuthenticated, MsgLoginRequired},
		{"malformed", ErrMalformedResponse, MsgMalformedResponse},
		{"application with message", &ApplicationError{Message: "Survey closed"}, "Survey closed"},
		{"application without message", &ApplicationError{}, "fallback"},
		{"transport", &TransportError{Op: "submit", Status: 502}, MsgTransportFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}
