package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

const maxBodyBytes = 1 << 20

// writeError maps err to its notification and status. Errors that are not
// meant for the user are logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	n, ok := domain.NotificationFor(err)
	if !ok {
		// The client is gone; nobody reads the response.
		if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
			return
		}
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		respond.Notification(w, http.StatusInternalServerError, domain.Failure(domain.MsgInternal))
		return
	}
	respond.Notification(w, statusFor(err), n)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNoAnswerSelected):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAudioUnavailable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrQuizComplete), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into v. Malformed bodies are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}
