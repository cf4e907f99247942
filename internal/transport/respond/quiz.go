package respond

import (
	"time"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/quiz"
)

// QuestionDTO is the current question as shown to the student.
type QuestionDTO struct {
	Index      int      `json:"index"`
	Number     int      `json:"number"`
	Total      int      `json:"total"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Selected   *int     `json:"selected"`
	CanRetreat bool     `json:"can_retreat"`
	IsLast     bool     `json:"is_last"`
}

// TimerDTO is the countdown state.
type TimerDTO struct {
	Kind    string `json:"kind"`
	Seconds int    `json:"seconds"`
	Display string `json:"display"`
}

// ScoreDTO is the final result.
type ScoreDTO struct {
	Correct        int    `json:"correct"`
	Incorrect      int    `json:"incorrect"`
	Total          int    `json:"total"`
	Percentage     int    `json:"percentage"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Elapsed        string `json:"elapsed"`
}

// SessionDTO is a quiz session snapshot.
type SessionDTO struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Status   string       `json:"status"`
	Reason   string       `json:"reason,omitempty"`
	Deadline time.Time    `json:"deadline"`
	Timer    TimerDTO     `json:"timer"`
	Question *QuestionDTO `json:"question,omitempty"`
	Score    *ScoreDTO    `json:"score,omitempty"`
}

func ToQuestionDTO(v domain.QuestionView) QuestionDTO {
	return QuestionDTO{
		Index:      v.Index,
		Number:     v.Index + 1,
		Total:      v.Total,
		Prompt:     v.Prompt,
		Options:    v.Options[:],
		Selected:   v.Selected,
		CanRetreat: v.CanRetreat,
		IsLast:     v.Index == v.Total-1,
	}
}

func ToTimerDTO(t domain.TimerOutcome) TimerDTO {
	return TimerDTO{Kind: string(t.Kind), Seconds: t.Seconds, Display: t.Display()}
}

func ToScoreDTO(s domain.ScoreSummary) ScoreDTO {
	return ScoreDTO{
		Correct:        s.Correct,
		Incorrect:      s.Incorrect,
		Total:          s.Total,
		Percentage:     s.Percentage,
		ElapsedSeconds: s.ElapsedSeconds,
		Elapsed:        s.ElapsedDisplay(),
	}
}

func ToSessionDTO(s quiz.Snapshot) SessionDTO {
	out := SessionDTO{
		ID:       s.ID.String(),
		Category: s.Category,
		Status:   s.Status.String(),
		Reason:   s.Reason.String(),
		Deadline: s.Deadline,
		Timer:    ToTimerDTO(s.Timer),
	}
	if s.Question != nil {
		q := ToQuestionDTO(*s.Question)
		out.Question = &q
	}
	if s.Score != nil {
		sc := ToScoreDTO(*s.Score)
		out.Score = &sc
	}
	return out
}
