package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/englishmaster-backend/internal/adapter/provider/cached"
	"github.com/heartmarshall/englishmaster-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/englishmaster-backend/internal/adapter/provider/static"
	"github.com/heartmarshall/englishmaster-backend/internal/config"
	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/dictionary"
)

type dictionarySource interface {
	Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error)
}

// probeWord is looked up by the dictionary health check.
const probeWord = "ephemeral"

// NewDictionaryService builds the dictionary service over the configured
// source. The remote source is fronted by an LRU cache when cache_size > 0.
func NewDictionaryService(cfg config.DictionaryConfig, logger *slog.Logger, clock clockwork.Clock) (*dictionary.Service, error) {
	var src dictionarySource

	switch cfg.Source {
	case config.DictionarySourceRemote:
		src = freedict.NewProvider(logger, clock, freedict.Config{
			BaseURL:    cfg.BaseURL,
			RelayURL:   cfg.RelayURL,
			Timeout:    cfg.Timeout,
			RetryDelay: cfg.RetryDelay,
		})
		if cfg.CacheSize > 0 {
			src = cached.New(src, cfg.CacheSize, cfg.CacheTTL, logger)
		}
	default:
		table, err := static.Load(cfg.TablePath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary table: %w", err)
		}
		logger.Info("dictionary table loaded", slog.String("adapter", "static"), slog.Int("words", table.Len()))
		src = table
	}

	return dictionary.NewService(logger, src, cfg.SpeechEnabled), nil
}
