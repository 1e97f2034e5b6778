package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

const DefaultPopularMaxTracked = 100

// PopularSearches tallies how often each query was searched. Queries are
// matched case-insensitively; the first spelling seen is kept for display.
type PopularSearches struct {
	mu         sync.Mutex
	entries    map[string]*models.PopularSearch
	maxTracked int
	store      Store
	key        string
	logger     *logrus.Logger
	now        func() time.Time
}

// NewPopularSearches creates the tally and hydrates it from store.
func NewPopularSearches(ctx context.Context, store Store, key string, maxTracked int, logger *logrus.Logger) *PopularSearches {
	if maxTracked <= 0 {
		maxTracked = DefaultPopularMaxTracked
	}
	if store == nil {
		store = NewMemoryStore()
	}
	p := &PopularSearches{
		entries:    make(map[string]*models.PopularSearch),
		maxTracked: maxTracked,
		store:      store,
		key:        key,
		logger:     loggerOrDiscard(logger),
		now:        time.Now,
	}
	p.hydrate(ctx)
	return p
}

func (p *PopularSearches) hydrate(ctx context.Context) {
	data, err := p.store.Load(ctx, p.key)
	if err != nil {
		if !errors.Is(err, ErrStoreKeyNotFound) {
			p.logger.WithError(err).WithField("key", p.key).Warn("Failed to load popular searches, starting empty")
		}
		return
	}

	var stored []models.PopularSearch
	if err := json.Unmarshal(data, &stored); err != nil {
		p.logger.WithError(err).WithField("key", p.key).Warn("Discarding corrupt popular searches")
		return
	}

	for _, item := range stored {
		q := strings.TrimSpace(item.Query)
		if q == "" || item.Count < 1 {
			continue
		}
		k := Fold(q)
		if existing, ok := p.entries[k]; ok {
			existing.Count += item.Count
			if item.LastSearched.After(existing.LastSearched) {
				existing.LastSearched = item.LastSearched
			}
			continue
		}
		entry := models.PopularSearch{Query: q, Count: item.Count, LastSearched: item.LastSearched}
		p.entries[k] = &entry
	}
	p.evict()
}

// Record counts one more search for query.
func (p *PopularSearches) Record(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("%w: empty query", ErrInvalidArgument)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	k := Fold(query)
	entry, ok := p.entries[k]
	if !ok {
		entry = &models.PopularSearch{Query: query}
		p.entries[k] = entry
	}
	entry.Count++
	entry.LastSearched = p.now()

	p.evict()
	p.persist(ctx)
	return nil
}

// Top returns up to n queries ordered by count, then by most recent search.
// n <= 0 returns all of them.
func (p *PopularSearches) Top(n int) []models.PopularSearch {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.sorted()
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Clear drops the tally and persists the empty state.
func (p *PopularSearches) Clear(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = make(map[string]*models.PopularSearch)
	p.persist(ctx)
}

func (p *PopularSearches) sorted() []models.PopularSearch {
	out := make([]models.PopularSearch, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if !out[i].LastSearched.Equal(out[j].LastSearched) {
			return out[i].LastSearched.After(out[j].LastSearched)
		}
		return out[i].Query < out[j].Query
	})
	return out
}

// evict drops the least popular, oldest entries beyond maxTracked.
func (p *PopularSearches) evict() {
	if len(p.entries) <= p.maxTracked {
		return
	}
	ranked := p.sorted()
	for _, e := range ranked[p.maxTracked:] {
		delete(p.entries, Fold(e.Query))
	}
}

func (p *PopularSearches) persist(ctx context.Context) {
	data, err := json.Marshal(p.sorted())
	if err != nil {
		p.logger.WithError(err).Warn("Failed to encode popular searches")
		return
	}
	if err := p.store.Save(ctx, p.key, data); err != nil {
		p.logger.WithError(err).WithField("key", p.key).Warn("Failed to persist popular searches")
	}
}
