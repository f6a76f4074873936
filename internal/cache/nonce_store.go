package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NonceStore issues anti-forgery nonces bound to a respondent and an action.
// A nonce stays valid until its TTL expires.
type NonceStore struct {
	cache CacheService
	ttl   time.Duration
}

func NewNonceStore(cache CacheService, ttl time.Duration) *NonceStore {
	return &NonceStore{cache: cache, ttl: ttl}
}

func nonceKey(action, nonce string) string { return "survey:nonce:" + action + ":" + nonce }

func (s *NonceStore) Issue(ctx context.Context, action, respondentID string) (string, error) {
	nonce := uuid.NewString()
	if err := s.cache.Set(ctx, nonceKey(action, nonce), respondentID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to issue nonce: %w", err)
	}
	return nonce, nil
}

// Verify reports whether nonce was issued to respondentID for action.
func (s *NonceStore) Verify(ctx context.Context, action, respondentID, nonce string) (bool, error) {
	if nonce == "" {
		return false, nil
	}
	var owner string
	if err := s.cache.Get(ctx, nonceKey(action, nonce), &owner); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return false, nil
		}
		return false, fmt.Errorf("failed to verify nonce: %w", err)
	}
	return owner == respondentID, nil
}
