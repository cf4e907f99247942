// Command lookup prints the dictionary card for a single word as JSON.
// It uses the same dictionary source the server is configured with.
//
// Exit codes: 0 = found, 1 = error, 2 = word not found.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/englishmaster-backend/internal/app"
	"github.com/heartmarshall/englishmaster-backend/internal/config"
	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

func main() {
	word := flag.String("word", "", "word to look up")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	if *word == "" {
		log.Fatal("-word is required")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	dict, err := app.NewDictionaryService(cfg.Dictionary, logger, clockwork.NewRealClock())
	if err != nil {
		logger.Error("build dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := dict.Lookup(ctx, *word)
	if err != nil {
		logger.Error("lookup failed", slog.String("word", *word), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !res.Found {
		printJSON(respond.ToNotificationDTO(domain.Failure(domain.MsgWordNotFound)))
		os.Exit(2)
	}

	printJSON(respond.ToEntryDTO(res.Entry))
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
