package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/dictionary"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: domain.NewValidationError("email", "required"), want: http.StatusBadRequest},
		{err: domain.ErrEmptyQuery, want: http.StatusBadRequest},
		{err: domain.ErrNoAnswerSelected, want: http.StatusBadRequest},
		{err: domain.ErrInvalidOption, want: http.StatusBadRequest},
		{err: fmt.Errorf("start: %w", domain.ErrCategoryNotFound), want: http.StatusNotFound},
		{err: domain.ErrWordNotFound, want: http.StatusNotFound},
		{err: domain.ErrQuizComplete, want: http.StatusConflict},
		{err: fmt.Errorf("lookup: %w", domain.ErrNetworkUnavailable), want: http.StatusServiceUnavailable},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestWriteError_InternalIsGeneric(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)

	writeError(rec, req, newTestLogger(), errors.New("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.Equal(t, domain.MsgInternal, notificationOf(t, rec).Message)
}

func TestWriteError_Canceled(t *testing.T) {
	t.Parallel()

	t.Run("client gone", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/x", nil).WithContext(ctx)

		writeError(rec, req, newTestLogger(), fmt.Errorf("wait: %w", context.Canceled))

		assert.Empty(t, rec.Body.String())
	})

	t.Run("client still connected", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/x", nil)

		writeError(rec, req, newTestLogger(), fmt.Errorf("wait: %w", context.Canceled))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, domain.MsgInternal, notificationOf(t, rec).Message)
	})
}

type dictionaryServiceMock struct {
	LookupFunc        func(ctx context.Context, query string) (domain.LookupResult, error)
	PronounceWordFunc func(ctx context.Context, query string) (dictionary.PronounceOutcome, error)
}

func (m *dictionaryServiceMock) Lookup(ctx context.Context, query string) (domain.LookupResult, error) {
	return m.LookupFunc(ctx, query)
}

func (m *dictionaryServiceMock) PronounceWord(ctx context.Context, query string) (dictionary.PronounceOutcome, error) {
	return m.PronounceWordFunc(ctx, query)
}

func TestDictionaryHandler_NetworkUnavailable(t *testing.T) {
	t.Parallel()

	unavailable := fmt.Errorf("lookup: %w", domain.ErrNetworkUnavailable)
	h := NewDictionaryHandler(newTestLogger(), &dictionaryServiceMock{
		LookupFunc: func(context.Context, string) (domain.LookupResult, error) {
			return domain.LookupResult{}, unavailable
		},
		PronounceWordFunc: func(context.Context, string) (dictionary.PronounceOutcome, error) {
			return dictionary.PronounceOutcome{}, unavailable
		},
	})

	for _, serve := range []http.HandlerFunc{h.Lookup, h.Pronounce} {
		rec := httptest.NewRecorder()
		serve(rec, httptest.NewRequest(http.MethodGet, "/?q=ephemeral", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, domain.MsgNetworkUnavailable, notificationOf(t, rec).Message)
	}
}
