package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/quiz"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

const maxMessageSize = 1024

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type quizService interface {
	Get(ctx context.Context, id uuid.UUID) (quiz.Snapshot, error)
	SelectAnswer(ctx context.Context, input quiz.SelectAnswerInput) (domain.QuestionView, error)
	Advance(ctx context.Context, id uuid.UUID) (quiz.AdvanceResult, error)
	Retreat(ctx context.Context, id uuid.UUID) (domain.QuestionView, error)
}

// ---------------------------------------------------------------------------
// Handler
// ---------------------------------------------------------------------------

// Handler upgrades /api/quiz/sessions/{id}/ws and relays page actions to
// the quiz service. Events flow back through the Hub.
type Handler struct {
	hub      *Hub
	quiz     quizService
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates a WebSocket handler. allowedOrigins follows the CORS
// setting; "*" accepts any origin.
func NewHandler(log *slog.Logger, hub *Hub, quizSvc quizService, allowedOrigins []string) *Handler {
	return &Handler{
		hub:  hub,
		quiz: quizSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		log: log.With("handler", "ws"),
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Notification(w, http.StatusNotFound, domain.Failure(domain.MsgSessionNotFound))
		return
	}

	snap, err := h.quiz.Get(r.Context(), id)
	if err != nil {
		respond.Notification(w, http.StatusNotFound, domain.Failure(domain.MsgSessionNotFound))
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	wsConn.SetReadLimit(maxMessageSize)

	c := &Conn{session: id, ws: wsConn}
	h.hub.register(c)
	defer h.hub.drop(c)

	h.log.InfoContext(r.Context(), "page connected", slog.String("session_id", id.String()))

	if err := h.sendSnapshot(c, snap); err != nil {
		return
	}
	h.readLoop(r.Context(), c)
}

func (h *Handler) sendSnapshot(c *Conn, snap quiz.Snapshot) error {
	dto := respond.ToSessionDTO(snap)
	if dto.Score != nil {
		if err := h.hub.send(c, ServerMessage{Type: MessageTypeScore, Score: dto.Score}); err != nil {
			return err
		}
	}
	if dto.Question != nil {
		if err := h.hub.send(c, ServerMessage{Type: MessageTypeQuestion, Question: dto.Question}); err != nil {
			return err
		}
	}
	return h.hub.send(c, ServerMessage{Type: MessageTypeTimer, Timer: &dto.Timer})
}

func (h *Handler) readLoop(ctx context.Context, c *Conn) {
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WarnContext(ctx, "websocket read failed",
					slog.String("session_id", c.session.String()),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(c, domain.NewValidationError("message", "invalid JSON"))
			continue
		}

		if err := h.dispatch(ctx, c, msg); errors.Is(err, domain.ErrSessionNotFound) {
			h.reply(c, err)
			return
		}
	}
}

// dispatch runs one page action. Errors the quiz service reports through
// the hub are not repeated here.
func (h *Handler) dispatch(ctx context.Context, c *Conn, msg ClientMessage) error {
	switch msg.Action {
	case ActionAnswer:
		if msg.Option == nil {
			h.reply(c, domain.ErrNoAnswerSelected)
			return nil
		}
		_, err := h.quiz.SelectAnswer(ctx, quiz.SelectAnswerInput{SessionID: c.session, Option: *msg.Option})
		return err
	case ActionAdvance:
		_, err := h.quiz.Advance(ctx, c.session)
		return err
	case ActionRetreat:
		_, err := h.quiz.Retreat(ctx, c.session)
		return err
	default:
		h.reply(c, domain.NewValidationError("action", "must be answer, advance or retreat"))
		return nil
	}
}

func (h *Handler) reply(c *Conn, err error) {
	n, ok := domain.NotificationFor(err)
	if !ok {
		n = domain.Failure(domain.MsgInternal)
	}
	dto := respond.ToNotificationDTO(n)
	if err := h.hub.send(c, ServerMessage{Type: MessageTypeNotification, Notification: &dto}); err != nil {
		h.hub.drop(c)
	}
}
