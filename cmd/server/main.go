// Command server runs the EnglishMaster Academy API: quiz sessions over
// HTTP and WebSocket, dictionary lookup, payment and registration stubs.
//
// Configuration comes from CONFIG_PATH (YAML) or the environment. A .env
// file in the working directory is loaded first when present.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/englishmaster-backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
