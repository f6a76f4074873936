package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/authoring"
	"github.com/google/uuid"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftStore keeps authoring drafts between edit events.
type DraftStore struct {
	cache CacheService
	ttl   time.Duration
}

func NewDraftStore(cache CacheService, ttl time.Duration) *DraftStore {
	return &DraftStore{cache: cache, ttl: ttl}
}

func draftKey(id string) string { return "survey:draft:" + id }

// Create stores draft under a new id.
func (s *DraftStore) Create(ctx context.Context, draft authoring.Draft) (string, error) {
	id := uuid.NewString()
	if err := s.cache.Set(ctx, draftKey(id), draft, s.ttl); err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	return id, nil
}

func (s *DraftStore) Get(ctx context.Context, id string) (authoring.Draft, error) {
	var draft authoring.Draft
	if _, err := uuid.Parse(id); err != nil {
		return draft, ErrDraftNotFound
	}
	if err := s.cache.Get(ctx, draftKey(id), &draft); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return draft, ErrDraftNotFound
		}
		return draft, fmt.Errorf("failed to load draft: %w", err)
	}
	return draft, nil
}

// Put overwrites the draft and refreshes its lifetime.
func (s *DraftStore) Put(ctx context.Context, id string, draft authoring.Draft) error {
	if err := s.cache.Set(ctx, draftKey(id), draft, s.ttl); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, draftKey(id))
}
