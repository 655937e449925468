package classify

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/NaiHeeeee/repkg-gui/internal/logging"
)

// RatingReader resolves the content rating for one cache key. An empty string
// means the bundle carries no rating; that result is cached just like any
// other.
type RatingReader interface {
	ReadRating(ctx context.Context, key string) (string, error)
}

// RatingReaderFunc adapts a function to the RatingReader interface.
type RatingReaderFunc func(ctx context.Context, key string) (string, error)

func (f RatingReaderFunc) ReadRating(ctx context.Context, key string) (string, error) {
	return f(ctx, key)
}

type inflight struct {
	done   chan struct{}
	rating string
}

// Cache memoizes rating lookups per key. Concurrent Get calls for the same
// unresolved key coalesce onto a single reader invocation; every result,
// including "no rating", is terminal until Clear.
type Cache struct {
	reader RatingReader
	logger *slog.Logger

	mu       sync.Mutex
	resolved map[string]string
	pending  map[string]*inflight
}

func NewCache(reader RatingReader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cache{
		reader:   reader,
		logger:   logging.NewComponentLogger(logger, "classify"),
		resolved: make(map[string]string),
		pending:  make(map[string]*inflight),
	}
}

// Get returns the rating for key, lowercased, resolving it through the reader
// on first use. A reader failure resolves the key to the empty rating rather
// than leaving it retryable; the original attribute source is a static file,
// so a failed read will not succeed moments later.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	if rating, ok := c.resolved[key]; ok {
		c.mu.Unlock()
		return rating, nil
	}
	if flight, ok := c.pending[key]; ok {
		c.mu.Unlock()
		select {
		case <-flight.done:
			return flight.rating, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	flight := &inflight{done: make(chan struct{})}
	c.pending[key] = flight
	c.mu.Unlock()

	rating, err := c.reader.ReadRating(ctx, key)
	if err != nil {
		c.logger.Warn("rating lookup failed", logging.String("key", key), logging.Error(err))
		rating = ""
	}
	rating = strings.ToLower(strings.TrimSpace(rating))

	c.mu.Lock()
	c.resolved[key] = rating
	delete(c.pending, key)
	c.mu.Unlock()

	flight.rating = rating
	close(flight.done)
	return rating, nil
}

// Peek reports the cached rating without triggering resolution. The second
// return distinguishes "resolved to no rating" from "never looked up".
func (c *Cache) Peek(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rating, ok := c.resolved[key]
	return rating, ok
}

// Clear drops every cached rating. In-flight lookups complete and repopulate
// their own key.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolved = make(map[string]string)
}

// Len reports how many keys have resolved.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.resolved)
}
