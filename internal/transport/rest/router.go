package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/englishmaster-backend/internal/config"
	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/middleware"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Quiz       *QuizHandler
	Stream     http.Handler
	Dictionary *DictionaryHandler
	Payment    *PaymentHandler
	Site       *SiteHandler
}

// NewRouter builds the HTTP API. Probes are not rate limited.
func NewRouter(log *slog.Logger, cors config.CORSConfig, limiter *middleware.RateLimiter, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cors),
	))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Notification(w, http.StatusNotFound, domain.Failure("Page not found."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Notification(w, http.StatusMethodNotAllowed, domain.Failure("Method not allowed."))
	})

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Limit())

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/categories", h.Quiz.Categories)
			r.Post("/sessions", h.Quiz.Start)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", h.Quiz.Get)
				r.Delete("/", h.Quiz.Restart)
				r.Post("/answer", h.Quiz.Answer)
				r.Post("/advance", h.Quiz.Advance)
				r.Post("/retreat", h.Quiz.Retreat)
				r.Get("/timer", h.Quiz.Timer)
				r.Get("/score", h.Quiz.Score)
				r.Method(http.MethodGet, "/ws", h.Stream)
			})
		})

		r.Route("/dictionary", func(r chi.Router) {
			r.Get("/lookup", h.Dictionary.Lookup)
			r.Get("/pronounce", h.Dictionary.Pronounce)
		})

		r.Get("/payment/plans/{plan}", h.Payment.Plan)
		r.Post("/payment", h.Payment.Pay)

		r.Post("/registration", h.Site.Register)
		r.Get("/sections", h.Site.Sections)
		r.Post("/sections/{id}/show", h.Site.ShowSection)
		r.Post("/slider", h.Site.Slide)
	})

	return r
}
