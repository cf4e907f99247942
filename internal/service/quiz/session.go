package quiz

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// Snapshot is a read-only view of a session at one instant.
type Snapshot struct {
	ID       uuid.UUID
	Category string
	Status   domain.QuizStatus
	Reason   domain.CompletionReason
	Deadline time.Time
	Timer    domain.TimerOutcome
	Question *domain.QuestionView // nil once complete
	Score    *domain.ScoreSummary // set once complete
}

// AdvanceResult is the outcome of Advance plus what the UI shows next.
type AdvanceResult struct {
	Outcome  domain.AdvanceOutcome
	Question *domain.QuestionView
	Score    *domain.ScoreSummary
}

// liveSession pairs a session with its lock and countdown stop signal.
type liveSession struct {
	id uuid.UUID

	mu      sync.Mutex
	session *domain.QuizSession

	stop     chan struct{}
	stopOnce sync.Once
}

func newLiveSession(qs *domain.QuizSession) *liveSession {
	return &liveSession{
		id:      qs.ID,
		session: qs,
		stop:    make(chan struct{}),
	}
}

func (ls *liveSession) stopCountdown() {
	ls.stopOnce.Do(func() { close(ls.stop) })
}

// expire applies the deadline at now and reports whether this call timed
// the session out. Caller holds mu.
func (ls *liveSession) expire(now time.Time) bool {
	if ls.session.IsComplete() {
		return false
	}
	out, err := ls.session.Tick(now)
	return err == nil && out.Kind == domain.TimerTimedOut
}

// snapshot builds a Snapshot. Caller holds mu and has called expire.
func (ls *liveSession) snapshot(now time.Time) Snapshot {
	qs := ls.session
	snap := Snapshot{
		ID:       qs.ID,
		Category: qs.Category,
		Status:   qs.Status,
		Reason:   qs.Reason,
		Deadline: qs.Deadline,
	}

	if qs.IsComplete() {
		if qs.Reason == domain.CompletionTimedOut {
			snap.Timer = domain.TimerOutcome{Kind: domain.TimerTimedOut}
		}
		score := qs.Score(now)
		snap.Score = &score
		return snap
	}

	snap.Timer, _ = qs.Tick(now)
	if view, err := qs.View(); err == nil {
		snap.Question = &view
	}
	return snap
}

// runCountdown ticks the session until it completes or is stopped.
func (s *Service) runCountdown(ls *liveSession) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ls.stop:
			return
		case <-ticker.Chan():
			if done := s.countdownTick(ls); done {
				return
			}
		}
	}
}

// countdownTick publishes the remaining time and reports whether the
// countdown is over.
func (s *Service) countdownTick(ls *liveSession) bool {
	now := s.clock.Now()

	ls.mu.Lock()
	if ls.session.IsComplete() {
		ls.mu.Unlock()
		return true
	}
	outcome, err := ls.session.Tick(now)
	score := ls.session.Score(now)
	ls.mu.Unlock()

	if err != nil {
		return true
	}

	s.presenter.RenderTimer(ls.id, outcome)
	if outcome.Kind != domain.TimerTimedOut {
		return false
	}

	s.presenter.RenderScore(ls.id, score)
	ls.stopCountdown()
	s.log.Info("quiz timed out",
		slog.String("session_id", ls.id.String()),
		slog.Int("correct", score.Correct),
		slog.Int("total", score.Total),
	)
	return true
}
