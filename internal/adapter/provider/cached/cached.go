// Package cached wraps a dictionary source with an expiring LRU cache.
// Found and not-found results are cached; errors are not.
package cached

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

type source interface {
	Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error)
}

// Source is a caching dictionary source. Concurrent misses for the same
// word share one upstream call.
type Source struct {
	next  source
	cache *expirable.LRU[string, *domain.DictionaryEntry]
	group singleflight.Group
	log   *slog.Logger
}

// New wraps next with a cache of size entries kept for ttl.
func New(next source, size int, ttl time.Duration, logger *slog.Logger) *Source {
	return &Source{
		next:  next,
		cache: expirable.NewLRU[string, *domain.DictionaryEntry](size, nil, ttl),
		log:   logger.With("adapter", "dictionary_cache"),
	}
}

// Lookup returns the cached result for word or asks the wrapped source.
func (s *Source) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	if e, ok := s.cache.Get(word); ok {
		s.log.DebugContext(ctx, "dictionary cache hit", slog.String("word", word), slog.Bool("found", e != nil))
		return clone(e), nil
	}

	// The upstream call is shared, so it must not die with the first caller.
	shareCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(word, func() (any, error) {
		if e, ok := s.cache.Get(word); ok {
			return e, nil
		}
		e, err := s.next.Lookup(shareCtx, word)
		if err != nil {
			return nil, err
		}
		s.cache.Add(word, e)
		return e, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return clone(res.Val.(*domain.DictionaryEntry)), nil
	}
}

// Len returns the number of cached words.
func (s *Source) Len() int { return s.cache.Len() }

func clone(e *domain.DictionaryEntry) *domain.DictionaryEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Synonyms = slices.Clone(e.Synonyms)
	return &c
}
