package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/englishmaster-backend/internal/adapter/quizbank"
	"github.com/heartmarshall/englishmaster-backend/internal/config"
	"github.com/heartmarshall/englishmaster-backend/internal/service/payment"
	"github.com/heartmarshall/englishmaster-backend/internal/service/quiz"
	"github.com/heartmarshall/englishmaster-backend/internal/service/registration"
	"github.com/heartmarshall/englishmaster-backend/internal/service/site"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/middleware"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/rest"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, wires every service and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("dictionary_source", cfg.Dictionary.Source),
	)

	a, err := New(cfg, logger, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	return a.Serve(ctx)
}

// App holds the wired services and the HTTP server.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	quiz    *quiz.Service
	hub     *ws.Hub
	handler http.Handler
}

// New wires every component from cfg.
func New(cfg *config.Config, logger *slog.Logger, clock clockwork.Clock) (*App, error) {
	bank, err := quizbank.Load(cfg.Quiz.BankPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load quiz bank: %w", err)
	}

	dict, err := NewDictionaryService(cfg.Dictionary, logger, clock)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)
	quizSvc := quiz.NewService(logger, bank, hub, clock, quiz.Config{
		TickInterval: cfg.Quiz.TickInterval,
		MaxSessions:  cfg.Quiz.MaxSessions,
		SessionTTL:   cfg.Quiz.SessionTTL,
	})
	paymentSvc := payment.NewService(logger, clock, payment.Config{
		BasicPrice:      cfg.Payment.BasicPrice,
		PremiumPrice:    cfg.Payment.PremiumPrice,
		TaxRate:         cfg.Payment.TaxRate,
		ProcessingDelay: cfg.Payment.ProcessingDelay,
	})
	registrationSvc := registration.NewService(logger, clock, cfg.Registration.Delay)
	siteSvc := site.NewService(logger, site.DefaultSections, site.DefaultStories)

	checks := map[string]rest.Checker{
		"quiz_bank": rest.CheckFunc(func(context.Context) error {
			if len(bank.Categories()) == 0 {
				return errors.New("quiz bank is empty")
			}
			return nil
		}),
		"dictionary": rest.CheckFunc(func(ctx context.Context) error {
			_, err := dict.Lookup(ctx, probeWord)
			return err
		}),
	}

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(checks, Version),
		Quiz:       rest.NewQuizHandler(logger, quizSvc, hub, cfg.Quiz.TimeLimit),
		Stream:     ws.NewHandler(logger, hub, quizSvc, splitOrigins(cfg.CORS.AllowedOrigins)),
		Dictionary: rest.NewDictionaryHandler(logger, dict),
		Payment:    rest.NewPaymentHandler(logger, paymentSvc),
		Site:       rest.NewSiteHandler(logger, siteSvc, registrationSvc),
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit, clock)

	return &App{
		cfg:     cfg,
		log:     logger,
		quiz:    quizSvc,
		hub:     hub,
		handler: rest.NewRouter(logger, cfg.CORS, limiter, handlers),
	}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Serve listens on the configured address until ctx is cancelled, then
// drains requests, disconnects streams and stops every quiz countdown.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down", slog.Duration("timeout", a.cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		a.Close()
		if err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close disconnects all streams and stops every quiz countdown.
func (a *App) Close() {
	a.hub.Close()
	a.quiz.Close()
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
