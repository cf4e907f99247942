package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// QuizStatus is the lifecycle state of a quiz session.
type QuizStatus string

const (
	QuizStatusNotStarted QuizStatus = "NOT_STARTED"
	QuizStatusInProgress QuizStatus = "IN_PROGRESS"
	QuizStatusComplete   QuizStatus = "COMPLETE"
)

func (s QuizStatus) String() string { return string(s) }

func (s QuizStatus) IsValid() bool {
	switch s {
	case QuizStatusNotStarted, QuizStatusInProgress, QuizStatusComplete:
		return true
	}
	return false
}

// CompletionReason records how a session reached COMPLETE.
type CompletionReason string

const (
	CompletionFinished CompletionReason = "FINISHED"
	CompletionTimedOut CompletionReason = "TIMED_OUT"
)

func (r CompletionReason) String() string { return string(r) }

// Question is an immutable multiple-choice question from a quiz bank.
type Question struct {
	Prompt        string
	Options       [OptionCount]string
	CorrectOption int
}

// Validate checks the prompt, options and the correct index.
func (q Question) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, FieldError{Field: "prompt", Message: "required"})
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("options[%d]", i), Message: "required"})
		}
	}
	if !validOption(q.CorrectOption) {
		errs = append(errs, FieldError{Field: "correct", Message: "must be between 0 and 3"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func validOption(i int) bool { return i >= 0 && i < OptionCount }

// QuizSession is the in-memory state of one quiz attempt. It is mutated only
// through its methods and is not safe for concurrent use.
//
// Invariants: 0 <= CurrentIndex <= len(Questions); every key of Answers is a
// question index; CurrentIndex == len(Questions) only once every question is
// answered or the deadline has passed.
type QuizSession struct {
	ID           uuid.UUID
	Category     string
	Questions    []Question
	CurrentIndex int
	Answers      map[int]int
	Status       QuizStatus
	Reason       CompletionReason
	StartedAt    time.Time
	Deadline     time.Time
	CompletedAt  *time.Time
}

// NewQuizSession starts a session over questions with a deadline of
// now+timeLimit. The question slice is copied.
func NewQuizSession(id uuid.UUID, category string, questions []Question, timeLimit time.Duration, now time.Time) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, NewValidationError("questions", "at least one question required")
	}
	if timeLimit <= 0 {
		return nil, NewValidationError("time_limit", "must be positive")
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &QuizSession{
		ID:        id,
		Category:  category,
		Questions: qs,
		Answers:   make(map[int]int, len(qs)),
		Status:    QuizStatusInProgress,
		StartedAt: now,
		Deadline:  now.Add(timeLimit),
	}, nil
}

// IsComplete reports whether the session reached its terminal state.
func (s *QuizSession) IsComplete() bool {
	return s.Status == QuizStatusComplete
}

// Answer returns the option chosen for question i, if any.
func (s *QuizSession) Answer(i int) (int, bool) {
	opt, ok := s.Answers[i]
	return opt, ok
}

// SelectAnswer records option for the current question, replacing any
// earlier choice.
func (s *QuizSession) SelectAnswer(option int) error {
	if s.IsComplete() {
		return ErrQuizComplete
	}
	if !validOption(option) {
		return ErrInvalidOption
	}
	s.Answers[s.CurrentIndex] = option
	return nil
}

// Advance moves past the current question. The current question must be
// answered. Moving past the last question completes the session.
func (s *QuizSession) Advance(now time.Time) (AdvanceOutcome, error) {
	if s.IsComplete() {
		return AdvanceOutcome{}, ErrQuizComplete
	}
	if _, ok := s.Answers[s.CurrentIndex]; !ok {
		return AdvanceOutcome{}, ErrNoAnswerSelected
	}

	s.CurrentIndex++
	if s.CurrentIndex == len(s.Questions) {
		s.complete(CompletionFinished, now)
		return AdvanceOutcome{Kind: AdvanceQuizComplete, Index: s.CurrentIndex}, nil
	}
	return AdvanceOutcome{Kind: AdvanceNextQuestion, Index: s.CurrentIndex}, nil
}

// Retreat moves back one question. It is a no-op on the first question.
func (s *QuizSession) Retreat() error {
	if s.IsComplete() {
		return ErrQuizComplete
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
	return nil
}

// Tick evaluates the countdown at now. Once the deadline is reached the
// session completes regardless of position, and every later Tick keeps
// reporting the timeout.
func (s *QuizSession) Tick(now time.Time) (TimerOutcome, error) {
	if s.IsComplete() {
		if s.Reason == CompletionTimedOut {
			return TimerOutcome{Kind: TimerTimedOut}, nil
		}
		return TimerOutcome{}, ErrQuizComplete
	}

	remaining := s.Deadline.Sub(now)
	if remaining <= 0 {
		s.complete(CompletionTimedOut, now)
		return TimerOutcome{Kind: TimerTimedOut}, nil
	}

	// Round partial seconds up so the display only reads 00:00 at timeout.
	secs := int((remaining + time.Second - 1) / time.Second)
	return TimerOutcome{Kind: TimerRemaining, Seconds: secs}, nil
}

// Score tallies the session. Unanswered questions count as incorrect. The
// percentage is rounded half up. Elapsed time runs to completion, or to now
// for a session still in progress.
func (s *QuizSession) Score(now time.Time) ScoreSummary {
	total := len(s.Questions)
	correct := 0
	for i, q := range s.Questions {
		if opt, ok := s.Answers[i]; ok && opt == q.CorrectOption {
			correct++
		}
	}

	end := now
	if s.CompletedAt != nil {
		end = *s.CompletedAt
	}
	elapsed := int(end.Sub(s.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	return ScoreSummary{
		Correct:        correct,
		Incorrect:      total - correct,
		Total:          total,
		Percentage:     percentRoundHalfUp(correct, total),
		ElapsedSeconds: elapsed,
	}
}

// View returns the current question as the UI renders it.
func (s *QuizSession) View() (QuestionView, error) {
	if s.IsComplete() || s.CurrentIndex >= len(s.Questions) {
		return QuestionView{}, ErrQuizComplete
	}
	q := s.Questions[s.CurrentIndex]
	v := QuestionView{
		Index:      s.CurrentIndex,
		Total:      len(s.Questions),
		Prompt:     q.Prompt,
		Options:    q.Options,
		CanRetreat: s.CurrentIndex > 0,
	}
	if opt, ok := s.Answers[s.CurrentIndex]; ok {
		v.Selected = &opt
	}
	return v, nil
}

func (s *QuizSession) complete(reason CompletionReason, now time.Time) {
	s.Status = QuizStatusComplete
	s.Reason = reason
	s.CompletedAt = &now
}

// percentRoundHalfUp returns round(100*part/total) with halves rounded up,
// using integer arithmetic only.
func percentRoundHalfUp(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// AdvanceKind distinguishes the outcomes of Advance.
type AdvanceKind string

const (
	AdvanceNextQuestion AdvanceKind = "NEXT_QUESTION"
	AdvanceQuizComplete AdvanceKind = "QUIZ_COMPLETE"
)

// AdvanceOutcome is the result of a successful Advance. Index is the new
// current index.
type AdvanceOutcome struct {
	Kind  AdvanceKind
	Index int
}

// TimerKind distinguishes the outcomes of Tick.
type TimerKind string

const (
	TimerRemaining TimerKind = "REMAINING"
	TimerTimedOut  TimerKind = "TIMED_OUT"
)

// TimerOutcome is the countdown state at one tick.
type TimerOutcome struct {
	Kind    TimerKind
	Seconds int
}

// Display renders the remaining time as zero-padded MM:SS.
func (o TimerOutcome) Display() string {
	secs := o.Seconds
	if o.Kind == TimerTimedOut || secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ScoreSummary is the result shown when a quiz completes.
type ScoreSummary struct {
	Correct        int
	Incorrect      int
	Total          int
	Percentage     int
	ElapsedSeconds int
}

// ElapsedDisplay renders the elapsed time as M:SS.
func (s ScoreSummary) ElapsedDisplay() string {
	return fmt.Sprintf("%d:%02d", s.ElapsedSeconds/60, s.ElapsedSeconds%60)
}

// QuestionView is the current question together with the stored choice.
type QuestionView struct {
	Index      int
	Total      int
	Prompt     string
	Options    [OptionCount]string
	Selected   *int
	CanRetreat bool
}
