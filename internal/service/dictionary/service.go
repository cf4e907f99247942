// Package dictionary implements word lookup and pronunciation on top of a
// pluggable definition source.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// source resolves a normalized word. It returns nil, nil when the word is unknown.
type source interface {
	Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the dictionary business logic.
type Service struct {
	source        source
	speechEnabled bool
	log           *slog.Logger
}

// NewService creates a new dictionary service. With speechEnabled, entries
// without audio are voiced by the client's speech synthesis.
func NewService(log *slog.Logger, src source, speechEnabled bool) *Service {
	return &Service{
		source:        src,
		speechEnabled: speechEnabled,
		log:           log.With("service", "dictionary"),
	}
}

// Normalize trims and case-folds a query.
func (s *Service) Normalize(query string) (string, error) {
	return domain.NormalizeQuery(query)
}

// Lookup resolves query against the source. An unknown word is a NotFound
// result, not an error. Source failures are reported as
// domain.ErrNetworkUnavailable.
func (s *Service) Lookup(ctx context.Context, query string) (domain.LookupResult, error) {
	key, err := s.Normalize(query)
	if err != nil {
		return domain.LookupResult{}, err
	}
	display := domain.DisplayQuery(query)

	entry, err := s.source.Lookup(ctx, key)
	if err != nil {
		s.log.ErrorContext(ctx, "dictionary lookup failed",
			slog.String("word", key),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, domain.ErrNetworkUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return domain.LookupResult{}, err
		}
		return domain.LookupResult{}, fmt.Errorf("lookup %q: %w: %w", key, domain.ErrNetworkUnavailable, err)
	}

	if entry == nil {
		s.log.DebugContext(ctx, "dictionary miss", slog.String("word", key))
		return domain.NotFound(display), nil
	}
	return domain.Found(display, entry), nil
}

// PronounceOutcome is either a pronunciation to play or a notification
// explaining that none is available.
type PronounceOutcome struct {
	Pronunciation *domain.Pronunciation
	Notification  *domain.Notification
}

// Pronounce decides how to voice entry. It never fails: a missing clip
// falls back to speech synthesis when enabled, otherwise to an
// "audio unavailable" notification.
func (s *Service) Pronounce(entry *domain.DictionaryEntry) PronounceOutcome {
	switch {
	case entry.HasAudio():
		return PronounceOutcome{Pronunciation: &domain.Pronunciation{
			Headword: entry.Headword,
			AudioURL: entry.AudioURL,
		}}
	case entry != nil && s.speechEnabled:
		return PronounceOutcome{Pronunciation: &domain.Pronunciation{
			Headword: entry.Headword,
			Speech:   true,
		}}
	}

	n, _ := domain.NotificationFor(domain.ErrAudioUnavailable)
	return PronounceOutcome{Notification: &n}
}

// PronounceWord looks query up and pronounces the result. A word that is
// not in the source yields the "audio unavailable" notification.
func (s *Service) PronounceWord(ctx context.Context, query string) (PronounceOutcome, error) {
	res, err := s.Lookup(ctx, query)
	if err != nil {
		return PronounceOutcome{}, err
	}
	return s.Pronounce(res.Entry), nil
}
