package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

// History caps. The search history list keeps more entries than the
// recent-searches list shown next to suggestions.
const (
	DefaultHistoryMaxItems           = 50
	DefaultSuggestionHistoryMaxItems = 10
)

// History is a most-recent-first, capped list of searched queries, deduped
// case-insensitively and persisted to a Store. Persistence problems are
// logged and never returned; the in-memory list keeps working.
type History struct {
	mu       sync.Mutex
	items    []models.SearchHistoryItem
	maxItems int
	store    Store
	key      string
	logger   *logrus.Logger
	now      func() time.Time
}

// NewHistory creates a history and hydrates it from store. Missing, corrupt
// or wrongly shaped data yields an empty history. A nil logger discards.
func NewHistory(ctx context.Context, store Store, key string, maxItems int, logger *logrus.Logger) *History {
	if maxItems <= 0 {
		maxItems = DefaultHistoryMaxItems
	}
	if store == nil {
		store = NewMemoryStore()
	}
	h := &History{
		items:    []models.SearchHistoryItem{},
		maxItems: maxItems,
		store:    store,
		key:      key,
		logger:   loggerOrDiscard(logger),
		now:      time.Now,
	}
	h.hydrate(ctx)
	return h
}

// loggerOrDiscard returns logger, or a logger that writes nowhere when it is nil.
func loggerOrDiscard(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

func (h *History) hydrate(ctx context.Context) {
	data, err := h.store.Load(ctx, h.key)
	if err != nil {
		if !errors.Is(err, ErrStoreKeyNotFound) {
			h.logger.WithError(err).WithField("key", h.key).Warn("Failed to load search history, starting empty")
		}
		return
	}

	var stored []models.SearchHistoryItem
	if err := json.Unmarshal(data, &stored); err != nil {
		h.logger.WithError(err).WithField("key", h.key).Warn("Discarding corrupt search history")
		return
	}

	seen := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		q := strings.TrimSpace(item.Query)
		if q == "" {
			continue
		}
		k := Fold(q)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if item.Count < 1 {
			item.Count = 1
		}
		item.Query = q
		h.items = append(h.items, item)
		if len(h.items) == h.maxItems {
			break
		}
	}
}

// Add records query. A repeat moves the existing entry to the front and
// bumps its count; entries beyond the cap are dropped from the tail.
func (h *History) Add(ctx context.Context, query string) ([]models.SearchHistoryItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidArgument)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := models.SearchHistoryItem{Query: query, Count: 1}
	k := Fold(query)
	for i, item := range h.items {
		if Fold(item.Query) == k {
			entry.Count = item.Count + 1
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}
	entry.Timestamp = h.now()

	h.items = append([]models.SearchHistoryItem{entry}, h.items...)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}

	h.persist(ctx)
	return h.snapshot(), nil
}

// Remove deletes query from the history if present.
func (h *History) Remove(ctx context.Context, query string) []models.SearchHistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	k := Fold(strings.TrimSpace(query))
	for i, item := range h.items {
		if Fold(item.Query) == k {
			h.items = append(h.items[:i], h.items[i+1:]...)
			h.persist(ctx)
			break
		}
	}
	return h.snapshot()
}

// Clear empties the history and persists the empty state.
func (h *History) Clear(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = []models.SearchHistoryItem{}
	h.persist(ctx)
}

// Items returns a copy of the history, most recent first.
func (h *History) Items() []models.SearchHistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot()
}

// MaxItems returns the cap.
func (h *History) MaxItems() int {
	return h.maxItems
}

func (h *History) snapshot() []models.SearchHistoryItem {
	out := make([]models.SearchHistoryItem, len(h.items))
	copy(out, h.items)
	return out
}

// persist must be called with h.mu held.
func (h *History) persist(ctx context.Context) {
	data, err := json.Marshal(h.items)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to encode search history")
		return
	}
	if err := h.store.Save(ctx, h.key, data); err != nil {
		h.logger.WithError(err).WithField("key", h.key).Warn("Failed to persist search history")
	}
}
