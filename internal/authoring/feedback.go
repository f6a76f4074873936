package authoring

import (
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// FeedbackEntry is one feedback editor. Key is the literal option or item
// text it belongs to.
type FeedbackEntry struct {
	Key   string `json:"key"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// FeedbackIndex keeps one feedback editor per feedback key. Entries are
// matched by exact key only, so a renamed option starts with an empty
// editor and its previous feedback is dropped.
type FeedbackIndex struct {
	entries []FeedbackEntry
}

// NewFeedbackIndex seeds the index from stored feedback and builds editors
// for keys.
func NewFeedbackIndex(stored models.FeedbackMap, keys []string) *FeedbackIndex {
	f := &FeedbackIndex{}
	for k, v := range stored {
		f.entries = append(f.entries, FeedbackEntry{Key: k, Value: v})
	}
	f.Regenerate(keys)
	return f
}

// Regenerate rebuilds the editor set for keys, prefilling each editor from
// the non-empty values held before the call.
func (f *FeedbackIndex) Regenerate(keys []string) {
	snapshot := make(map[string]string, len(f.entries))
	for _, e := range f.entries {
		if e.Value != "" {
			snapshot[e.Key] = e.Value
		}
	}

	entries := make([]FeedbackEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, FeedbackEntry{
			Key:   key,
			Field: feedbackFieldName(key),
			Value: snapshot[key],
		})
	}
	f.entries = entries
}

// Set writes value into every editor with key. It reports whether any
// editor matched.
func (f *FeedbackIndex) Set(key, value string) bool {
	found := false
	for i := range f.entries {
		if f.entries[i].Key == key {
			f.entries[i].Value = value
			found = true
		}
	}
	return found
}

func (f *FeedbackIndex) Value(key string) string {
	for _, e := range f.entries {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}

func (f *FeedbackIndex) Entries() []FeedbackEntry {
	out := make([]FeedbackEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Map returns the non-empty feedback values.
func (f *FeedbackIndex) Map() models.FeedbackMap {
	out := make(models.FeedbackMap, len(f.entries))
	for _, e := range f.entries {
		if e.Value != "" {
			out[e.Key] = e.Value
		}
	}
	return out
}

func feedbackFieldName(key string) string {
	return fmt.Sprintf("question_feedback[%s]", key)
}
