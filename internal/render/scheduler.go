package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NaiHeeeee/repkg-gui/internal/catalog"
	"github.com/NaiHeeeee/repkg-gui/internal/logging"
	"github.com/NaiHeeeee/repkg-gui/internal/preview"
)

// EncodeFunc produces the preview handle for one entry.
type EncodeFunc func(ctx context.Context, entry catalog.Entry) preview.Handle

// Result is a completed encode, stamped with the generation it was scheduled
// under so consumers can spot work that a rescan has since invalidated.
type Result struct {
	Key        string
	Handle     preview.Handle
	Generation uint64
}

// Options tunes the scheduler. Zero values fall back to the defaults the
// interactive surface uses.
type Options struct {
	// PreloadCount entries at the top of the catalog are encoded eagerly
	// on Reset, without waiting for a proximity report.
	PreloadCount int
	// PreloadStagger spaces the eager encodes so they do not land as one
	// burst of filesystem reads.
	PreloadStagger time.Duration
	// ProximityMargin is the distance, in rows, at which the observer
	// should start reporting entries. The scheduler only carries it;
	// observation itself happens in the presentation layer.
	ProximityMargin int
}

const (
	defaultPreloadCount    = 6
	defaultPreloadStagger  = 150 * time.Millisecond
	defaultProximityMargin = 100
)

// Scheduler coordinates lazy preview encoding. Each registered entry is
// encoded at most once per generation: the first proximity report wins and
// deregisters the entry. Reset starts a new generation; results finishing
// under an old one are dropped before delivery.
type Scheduler struct {
	encode  EncodeFunc
	deliver func(Result)
	opts    Options
	logger  *slog.Logger

	mu         sync.Mutex
	generation uint64
	registered map[string]catalog.Entry
	wg         sync.WaitGroup
}

func NewScheduler(encode EncodeFunc, deliver func(Result), opts Options, logger *slog.Logger) *Scheduler {
	if opts.PreloadCount <= 0 {
		opts.PreloadCount = defaultPreloadCount
	}
	if opts.PreloadStagger <= 0 {
		opts.PreloadStagger = defaultPreloadStagger
	}
	if opts.ProximityMargin <= 0 {
		opts.ProximityMargin = defaultProximityMargin
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		encode:     encode,
		deliver:    deliver,
		opts:       opts,
		logger:     logging.NewComponentLogger(logger, "render"),
		registered: make(map[string]catalog.Entry),
	}
}

// ProximityMargin reports the configured observation distance.
func (s *Scheduler) ProximityMargin() int { return s.opts.ProximityMargin }

// Reset installs a fresh catalog under a new generation and eagerly encodes
// the first PreloadCount entries, staggered by PreloadStagger per index.
// Returns the new generation.
func (s *Scheduler) Reset(ctx context.Context, entries []catalog.Entry) uint64 {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.registered = make(map[string]catalog.Entry, len(entries))
	for _, entry := range entries {
		s.registered[entry.CacheKey()] = entry
	}
	s.mu.Unlock()

	preloadCount := min(s.opts.PreloadCount, len(entries))
	for i := 0; i < preloadCount; i++ {
		delay := time.Duration(i) * s.opts.PreloadStagger
		s.trigger(ctx, gen, entries[i].CacheKey(), delay)
	}
	return gen
}

// Observe handles a proximity report for key. The first report schedules the
// encode and deregisters the entry; later reports are no-ops. Returns whether
// this report scheduled work.
func (s *Scheduler) Observe(ctx context.Context, key string) bool {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	return s.trigger(ctx, gen, key, 0)
}

func (s *Scheduler) trigger(ctx context.Context, gen uint64, key string, delay time.Duration) bool {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}
	entry, ok := s.registered[key]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.registered, key)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return
			}
		}

		handle := s.encode(ctx, entry)

		s.mu.Lock()
		current := gen == s.generation
		s.mu.Unlock()
		if !current {
			s.logger.Debug("dropping stale preview",
				logging.String("key", key), logging.Int("generation", int(gen)))
			return
		}
		s.deliver(Result{Key: key, Handle: handle, Generation: gen})
	}()
	return true
}

// Wait blocks until every scheduled encode has finished or been discarded.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
