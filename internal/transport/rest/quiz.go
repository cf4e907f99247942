package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/quiz"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type quizService interface {
	Categories(ctx context.Context) []string
	Start(ctx context.Context, input quiz.StartInput) (quiz.Snapshot, error)
	Get(ctx context.Context, id uuid.UUID) (quiz.Snapshot, error)
	SelectAnswer(ctx context.Context, input quiz.SelectAnswerInput) (domain.QuestionView, error)
	Advance(ctx context.Context, id uuid.UUID) (quiz.AdvanceResult, error)
	Retreat(ctx context.Context, id uuid.UUID) (domain.QuestionView, error)
	Timer(ctx context.Context, id uuid.UUID) (domain.TimerOutcome, error)
	Score(ctx context.Context, id uuid.UUID) (domain.ScoreSummary, error)
	Restart(ctx context.Context, id uuid.UUID) error
}

// sessionCloser disconnects live streams of a session.
type sessionCloser interface {
	CloseSession(id uuid.UUID)
}

// ---------------------------------------------------------------------------
// Handler
// ---------------------------------------------------------------------------

// QuizHandler serves /api/quiz.
type QuizHandler struct {
	quiz      quizService
	streams   sessionCloser
	timeLimit func(layout string) time.Duration
	log       *slog.Logger
}

// NewQuizHandler creates a QuizHandler. timeLimit picks the countdown for
// the client's layout.
func NewQuizHandler(log *slog.Logger, quizSvc quizService, streams sessionCloser, timeLimit func(layout string) time.Duration) *QuizHandler {
	return &QuizHandler{
		quiz:      quizSvc,
		streams:   streams,
		timeLimit: timeLimit,
		log:       log.With("handler", "quiz"),
	}
}

type startRequest struct {
	Category string `json:"category"`
	Layout   string `json:"layout"`
}

type answerRequest struct {
	Option *int `json:"option"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type advanceResponse struct {
	Outcome  string               `json:"outcome"`
	Question *respond.QuestionDTO `json:"question,omitempty"`
	Score    *respond.ScoreDTO    `json:"score,omitempty"`
}

func (h *QuizHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, categoriesResponse{Categories: h.quiz.Categories(r.Context())})
}

func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	snap, err := h.quiz.Start(r.Context(), quiz.StartInput{
		Category:  req.Category,
		TimeLimit: h.timeLimit(req.Layout),
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, respond.ToSessionDTO(snap))
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.quiz.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.ToSessionDTO(snap))
}

func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Option == nil {
		writeError(w, r, h.log, domain.ErrNoAnswerSelected)
		return
	}

	view, err := h.quiz.SelectAnswer(r.Context(), quiz.SelectAnswerInput{SessionID: id, Option: *req.Option})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.ToQuestionDTO(view))
}

func (h *QuizHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	res, err := h.quiz.Advance(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	out := advanceResponse{Outcome: string(res.Outcome.Kind)}
	if res.Question != nil {
		q := respond.ToQuestionDTO(*res.Question)
		out.Question = &q
	}
	if res.Score != nil {
		s := respond.ToScoreDTO(*res.Score)
		out.Score = &s
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h *QuizHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.quiz.Retreat(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.ToQuestionDTO(view))
}

func (h *QuizHandler) Timer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	out, err := h.quiz.Timer(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.ToTimerDTO(out))
}

func (h *QuizHandler) Score(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	score, err := h.quiz.Score(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.ToScoreDTO(score))
}

// Restart discards the session and disconnects its streams.
func (h *QuizHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.quiz.Restart(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.streams.CloseSession(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuizHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, domain.ErrSessionNotFound)
		return uuid.Nil, false
	}
	return id, true
}
