package cached

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

type sourceMock struct {
	LookupFunc func(ctx context.Context, word string) (*domain.DictionaryEntry, error)
	calls      atomic.Int32
}

func (m *sourceMock) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	m.calls.Add(1)
	return m.LookupFunc(ctx, word)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSource_CachesFoundAndNotFound(t *testing.T) {
	t.Parallel()

	next := &sourceMock{LookupFunc: func(_ context.Context, word string) (*domain.DictionaryEntry, error) {
		if word == "ephemeral" {
			return &domain.DictionaryEntry{Headword: word, Definition: "Lasting for a very short time.", Synonyms: []string{"fleeting"}}, nil
		}
		return nil, nil
	}}
	src := New(next, 10, time.Hour, newTestLogger())
	ctx := context.Background()

	for range 3 {
		e, err := src.Lookup(ctx, "ephemeral")
		require.NoError(t, err)
		require.NotNil(t, e)
		e.Synonyms[0] = "mutated"

		missing, err := src.Lookup(ctx, "zzz")
		require.NoError(t, err)
		assert.Nil(t, missing)
	}

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, 2, src.Len())

	e, _ := src.Lookup(ctx, "ephemeral")
	assert.Equal(t, "fleeting", e.Synonyms[0], "callers get copies")
}

func TestSource_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	next := &sourceMock{LookupFunc: func(_ context.Context, word string) (*domain.DictionaryEntry, error) {
		if fail.Load() {
			return nil, domain.ErrNetworkUnavailable
		}
		return &domain.DictionaryEntry{Headword: word, Definition: "d"}, nil
	}}
	src := New(next, 10, time.Hour, newTestLogger())
	ctx := context.Background()

	_, err := src.Lookup(ctx, "word")
	assert.True(t, errors.Is(err, domain.ErrNetworkUnavailable))
	assert.Equal(t, 0, src.Len())

	fail.Store(false)
	e, err := src.Lookup(ctx, "word")
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestSource_ConcurrentMissesShareCall(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	next := &sourceMock{LookupFunc: func(_ context.Context, word string) (*domain.DictionaryEntry, error) {
		<-release
		return &domain.DictionaryEntry{Headword: word, Definition: "d"}, nil
	}}
	src := New(next, 10, time.Hour, newTestLogger())

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := src.Lookup(context.Background(), "same")
			assert.NoError(t, err)
			assert.NotNil(t, e)
		}()
	}

	require.Eventually(t, func() bool { return next.calls.Load() >= 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	// Goroutines that arrive after the first call completes hit the cache.
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestSource_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	next := &sourceMock{LookupFunc: func(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
		select {
		case <-release:
			return &domain.DictionaryEntry{Headword: word, Definition: "d"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	src := New(next, 10, time.Hour, newTestLogger())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := src.Lookup(firstCtx, "shared")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return next.calls.Load() == 1 }, time.Second, time.Millisecond)

	second := make(chan *domain.DictionaryEntry, 1)
	go func() {
		e, err := src.Lookup(context.Background(), "shared")
		assert.NoError(t, err)
		second <- e
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	e := <-second
	require.NotNil(t, e)
	assert.Equal(t, "shared", e.Headword)
	assert.Equal(t, int32(1), next.calls.Load())
}
