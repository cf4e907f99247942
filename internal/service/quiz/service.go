// Package quiz runs live quiz sessions: it owns the session store, the
// per-session countdown and the presenter notifications.
package quiz

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type questionBank interface {
	Questions(category string) ([]domain.Question, error)
	Categories() []string
}

type presenter interface {
	RenderQuestion(sessionID uuid.UUID, view domain.QuestionView)
	RenderTimer(sessionID uuid.UUID, timer domain.TimerOutcome)
	RenderScore(sessionID uuid.UUID, score domain.ScoreSummary)
	ShowNotification(sessionID uuid.UUID, n domain.Notification)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the session store and countdown settings.
type Config struct {
	TickInterval time.Duration
	MaxSessions  int
	SessionTTL   time.Duration
}

// Service implements the quiz session business logic.
type Service struct {
	bank      questionBank
	presenter presenter
	clock     clockwork.Clock
	log       *slog.Logger
	tick      time.Duration

	sessions *expirable.LRU[uuid.UUID, *liveSession]
	wg       sync.WaitGroup
}

// NewService creates a new quiz service. A nil presenter discards display events.
func NewService(
	log *slog.Logger,
	bank questionBank,
	p presenter,
	clock clockwork.Clock,
	cfg Config,
) *Service {
	if p == nil {
		p = nopPresenter{}
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}

	s := &Service{
		bank:      bank,
		presenter: p,
		clock:     clock,
		log:       log.With("service", "quiz"),
		tick:      cfg.TickInterval,
	}
	s.sessions = expirable.NewLRU[uuid.UUID, *liveSession](cfg.MaxSessions, s.onEvict, cfg.SessionTTL)
	return s
}

func (s *Service) onEvict(id uuid.UUID, ls *liveSession) {
	ls.stopCountdown()
	s.log.Debug("quiz session evicted", slog.String("session_id", id.String()))
}

// Categories returns the available quiz categories.
func (s *Service) Categories(_ context.Context) []string {
	return s.bank.Categories()
}

// Start creates a session for the category and starts its countdown.
func (s *Service) Start(ctx context.Context, input StartInput) (Snapshot, error) {
	if err := input.Validate(); err != nil {
		return Snapshot{}, err
	}

	questions, err := s.bank.Questions(input.Category)
	if err != nil {
		return Snapshot{}, err
	}

	now := s.clock.Now()
	qs, err := domain.NewQuizSession(uuid.New(), input.Category, questions, input.TimeLimit, now)
	if err != nil {
		return Snapshot{}, err
	}

	ls := newLiveSession(qs)
	s.sessions.Add(qs.ID, ls)

	s.wg.Add(1)
	go s.runCountdown(ls)

	snap := ls.snapshot(now)
	if snap.Question != nil {
		s.presenter.RenderQuestion(qs.ID, *snap.Question)
	}

	s.log.InfoContext(ctx, "quiz started",
		slog.String("session_id", qs.ID.String()),
		slog.String("category", qs.Category),
		slog.Duration("time_limit", input.TimeLimit),
	)
	return snap, nil
}

// Get returns the current state of a session.
func (s *Service) Get(_ context.Context, id uuid.UUID) (Snapshot, error) {
	ls, err := s.session(id)
	if err != nil {
		return Snapshot{}, err
	}

	now := s.clock.Now()
	ls.mu.Lock()
	timedOut := ls.expire(now)
	snap := ls.snapshot(now)
	ls.mu.Unlock()

	if timedOut {
		s.finish(ls, *snap.Score)
	}
	return snap, nil
}

// SelectAnswer records the chosen option for the current question.
func (s *Service) SelectAnswer(ctx context.Context, input SelectAnswerInput) (domain.QuestionView, error) {
	if err := input.Validate(); err != nil {
		return domain.QuestionView{}, err
	}

	ls, err := s.session(input.SessionID)
	if err != nil {
		return domain.QuestionView{}, err
	}

	now := s.clock.Now()
	ls.mu.Lock()
	timedOut := ls.expire(now)
	score := ls.session.Score(now)
	err = ls.session.SelectAnswer(input.Option)
	var view domain.QuestionView
	if err == nil {
		view, err = ls.session.View()
	}
	ls.mu.Unlock()

	if timedOut {
		s.finish(ls, score)
	}
	if err != nil {
		s.notify(ctx, input.SessionID, err)
		return domain.QuestionView{}, err
	}
	s.presenter.RenderQuestion(input.SessionID, view)
	return view, nil
}

// Advance moves to the next question, completing the quiz after the last one.
func (s *Service) Advance(ctx context.Context, id uuid.UUID) (AdvanceResult, error) {
	ls, err := s.session(id)
	if err != nil {
		return AdvanceResult{}, err
	}

	now := s.clock.Now()
	ls.mu.Lock()
	timedOut := ls.expire(now)
	outcome, err := ls.session.Advance(now)
	snap := ls.snapshot(now)
	ls.mu.Unlock()

	if timedOut {
		s.finish(ls, *snap.Score)
	}
	if err != nil {
		s.notify(ctx, id, err)
		return AdvanceResult{}, err
	}

	res := AdvanceResult{Outcome: outcome, Question: snap.Question, Score: snap.Score}
	switch outcome.Kind {
	case domain.AdvanceQuizComplete:
		s.finish(ls, *snap.Score)
		s.log.InfoContext(ctx, "quiz finished",
			slog.String("session_id", id.String()),
			slog.Int("correct", snap.Score.Correct),
			slog.Int("total", snap.Score.Total),
		)
	case domain.AdvanceNextQuestion:
		s.presenter.RenderQuestion(id, *snap.Question)
	}
	return res, nil
}

// Retreat moves back one question. It is a no-op on the first question.
func (s *Service) Retreat(ctx context.Context, id uuid.UUID) (domain.QuestionView, error) {
	ls, err := s.session(id)
	if err != nil {
		return domain.QuestionView{}, err
	}

	now := s.clock.Now()
	ls.mu.Lock()
	timedOut := ls.expire(now)
	score := ls.session.Score(now)
	err = ls.session.Retreat()
	var view domain.QuestionView
	if err == nil {
		view, err = ls.session.View()
	}
	ls.mu.Unlock()

	if timedOut {
		s.finish(ls, score)
	}
	if err != nil {
		s.notify(ctx, id, err)
		return domain.QuestionView{}, err
	}
	s.presenter.RenderQuestion(id, view)
	return view, nil
}

// Timer evaluates the countdown now.
func (s *Service) Timer(_ context.Context, id uuid.UUID) (domain.TimerOutcome, error) {
	ls, err := s.session(id)
	if err != nil {
		return domain.TimerOutcome{}, err
	}

	now := s.clock.Now()
	ls.mu.Lock()
	timedOut := ls.expire(now)
	outcome, err := ls.session.Tick(now)
	score := ls.session.Score(now)
	ls.mu.Unlock()

	if timedOut {
		s.finish(ls, score)
	}
	return outcome, err
}

// Score tallies the session. For a session still in progress the elapsed
// time runs to now.
func (s *Service) Score(_ context.Context, id uuid.UUID) (domain.ScoreSummary, error) {
	ls, err := s.session(id)
	if err != nil {
		return domain.ScoreSummary{}, err
	}

	now := s.clock.Now()
	ls.mu.Lock()
	timedOut := ls.expire(now)
	score := ls.session.Score(now)
	ls.mu.Unlock()

	if timedOut {
		s.finish(ls, score)
	}
	return score, nil
}

// Restart stops the session's countdown and discards it.
func (s *Service) Restart(ctx context.Context, id uuid.UUID) error {
	ls, ok := s.sessions.Peek(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	ls.stopCountdown()
	s.sessions.Remove(id)

	s.log.InfoContext(ctx, "quiz restarted", slog.String("session_id", id.String()))
	return nil
}

// Close stops every countdown and waits for them to exit.
func (s *Service) Close() {
	for _, ls := range s.sessions.Values() {
		ls.stopCountdown()
	}
	s.sessions.Purge()
	s.wg.Wait()
}

func (s *Service) session(id uuid.UUID) (*liveSession, error) {
	ls, ok := s.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return ls, nil
}

// finish stops the countdown and publishes the final score.
func (s *Service) finish(ls *liveSession, score domain.ScoreSummary) {
	ls.stopCountdown()
	s.presenter.RenderScore(ls.id, score)
}

func (s *Service) notify(ctx context.Context, id uuid.UUID, err error) {
	n, ok := domain.NotificationFor(err)
	if !ok {
		s.log.ErrorContext(ctx, "quiz operation failed",
			slog.String("session_id", id.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.presenter.ShowNotification(id, n)
}

type nopPresenter struct{}

func (nopPresenter) RenderQuestion(uuid.UUID, domain.QuestionView)   {}
func (nopPresenter) RenderTimer(uuid.UUID, domain.TimerOutcome)      {}
func (nopPresenter) RenderScore(uuid.UUID, domain.ScoreSummary)      {}
func (nopPresenter) ShowNotification(uuid.UUID, domain.Notification) {}
