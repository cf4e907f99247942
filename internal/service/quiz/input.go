package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// StartInput holds the parameters for starting a quiz.
type StartInput struct {
	Category  string
	TimeLimit time.Duration
}

// Validate checks all fields and collects all errors. The category is
// resolved against the bank, so a blank one is reported as not found.
func (i *StartInput) Validate() error {
	var errs []domain.FieldError

	if i.TimeLimit <= 0 {
		errs = append(errs, domain.FieldError{Field: "time_limit", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SelectAnswerInput holds the parameters for answering the current question.
type SelectAnswerInput struct {
	SessionID uuid.UUID
	Option    int
}

// Validate checks all fields and collects all errors. The option range is
// checked by the session itself so that it reports ErrInvalidOption.
func (i *SelectAnswerInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
