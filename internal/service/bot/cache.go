package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/domain"
)

const cacheTimeout = 250 * time.Millisecond

// ResultCache stores finished searches. The engine is deterministic, so a
// stored result is exactly what a fresh search would return.
type ResultCache interface {
	Load(ctx context.Context, key string) (Result, bool, error)
	Store(ctx context.Context, key string, result Result) error
}

func CacheKey(namespace string, board *domain.Board, player domain.PlayerID, depth int) string {
	return fmt.Sprintf("search:%s:%d:%d:%s", namespace, player, depth, board.Key())
}

// MemoryCache is a bounded in-process ResultCache that evicts oldest first.
type MemoryCache struct {
	mu      sync.Mutex
	limit   int
	entries map[string]Result
	order   []string
}

func NewMemoryCache(limit int) *MemoryCache {
	if limit < 1 {
		limit = 1
	}
	return &MemoryCache{
		limit:   limit,
		entries: make(map[string]Result, limit),
	}
}

func (m *MemoryCache) Load(_ context.Context, key string) (Result, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.entries[key]
	return r, ok, nil
}

func (m *MemoryCache) Store(_ context.Context, key string, result Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.entries[key] = result
		return nil
	}
	for len(m.order) >= m.limit {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = result
	m.order = append(m.order, key)
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// CachedSearcher consults a ResultCache before delegating to the wrapped
// Searcher. Cache failures are logged and never fail a search.
type CachedSearcher struct {
	next      Searcher
	namespace string
	cache     ResultCache
	logger    *zap.SugaredLogger
}

func NewCachedSearcher(next Searcher, namespace string, cache ResultCache, logger *zap.SugaredLogger) *CachedSearcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CachedSearcher{
		next:      next,
		namespace: namespace,
		cache:     cache,
		logger:    logger,
	}
}

func (c *CachedSearcher) Search(board *domain.Board, player domain.PlayerID, depth int) (Result, error) {
	key := CacheKey(c.namespace, board, player, depth)

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	cached, ok, err := c.cache.Load(ctx, key)
	if err != nil {
		c.logger.Warnw("[CACHE] load failed, searching uncached", "key", key, "error", err)
	} else if ok {
		cached.Cached = true
		return cached, nil
	}

	result, err := c.next.Search(board, player, depth)
	if err != nil {
		return result, err
	}

	storeCtx, storeCancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer storeCancel()
	if err := c.cache.Store(storeCtx, key, result); err != nil {
		c.logger.Warnw("[CACHE] store failed", "key", key, "error", err)
	}
	return result, nil
}
