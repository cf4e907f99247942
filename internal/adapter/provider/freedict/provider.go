// Package freedict looks words up in the FreeDictionary API, optionally
// through a relay that forwards the request.
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

const (
	defaultBaseURL    = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

// Config configures a Provider. Zero values fall back to the public API
// with a 10s timeout and a 500ms retry delay.
type Config struct {
	BaseURL string
	// RelayURL, when set, is prefixed to the query-escaped target URL,
	// e.g. "https://relay.example/raw?url=".
	RelayURL   string
	Timeout    time.Duration
	RetryDelay time.Duration
}

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	relayURL   string
	retryDelay time.Duration
	httpClient *http.Client
	clock      clockwork.Clock
	log        *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(logger *slog.Logger, clock clockwork.Clock, cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	return &Provider{
		baseURL:    cfg.BaseURL,
		relayURL:   cfg.RelayURL,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		clock:      clock,
		log:        logger.With("adapter", "freedict"),
	}
}

// Lookup fetches the entry for word.
// Returns nil, nil if the word is not found (HTTP 404). Transport failures
// and server errors are reported as domain.ErrNetworkUnavailable.
func (p *Provider) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	reqURL := p.requestURL(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("freedict: %w", ctxErr)
		}
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: %w: %w", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("freedict: %w: unexpected status %d", domain.ErrNetworkUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: %w: read body: %v", domain.ErrNetworkUnavailable, err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entry := mapAPIEntry(word, entries[0])

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("entries", len(entries)),
		slog.Bool("audio", entry.HasAudio()),
	)

	return entry, nil
}

// requestURL builds the API URL for word, wrapped in the relay if configured.
func (p *Provider) requestURL(word string) string {
	target := p.baseURL + "/" + url.PathEscape(word)
	if p.relayURL == "" {
		return target
	}
	return p.relayURL + url.QueryEscape(target)
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.clock.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

// mapAPIEntry keeps what the word card shows: the first definition of the
// first meaning, its example and synonyms, the phonetic spelling and the
// first available audio clip.
func mapAPIEntry(query string, e apiEntry) *domain.DictionaryEntry {
	entry := &domain.DictionaryEntry{
		Headword: e.Word,
		Phonetic: e.Phonetic,
		Synonyms: []string{},
	}
	if entry.Headword == "" {
		entry.Headword = query
	}

	for _, ph := range e.Phonetics {
		if entry.Phonetic == "" && ph.Text != "" {
			entry.Phonetic = ph.Text
		}
		if entry.AudioURL == "" && ph.Audio != "" {
			entry.AudioURL = ph.Audio
		}
	}

	if len(e.Meanings) == 0 {
		return entry
	}
	meaning := e.Meanings[0]
	if len(meaning.Definitions) > 0 {
		def := meaning.Definitions[0]
		entry.Definition = def.Definition
		entry.Example = def.Example
		entry.Synonyms = append(entry.Synonyms, def.Synonyms...)
	}
	if len(entry.Synonyms) == 0 {
		entry.Synonyms = append(entry.Synonyms, meaning.Synonyms...)
	}

	return entry
}
