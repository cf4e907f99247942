// Package registration simulates student sign-up.
package registration

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// Service completes registrations after a simulated delay.
type Service struct {
	delay time.Duration
	clock clockwork.Clock
	log   *slog.Logger

	inflight singleflight.Group
}

// NewService creates a new registration service.
func NewService(log *slog.Logger, clock clockwork.Clock, delay time.Duration) *Service {
	return &Service{
		delay: delay,
		clock: clock,
		log:   log.With("service", "registration"),
	}
}

// CompleteInput holds the sign-up form.
type CompleteInput struct {
	FullName string
	Email    string
}

// Validate checks all fields and collects all errors.
func (i *CompleteInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.FullName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	} else if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "max 100 characters"})
	}

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid address"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Complete registers the student and returns the dashboard greeting.
// Repeated submissions for the same e-mail while one is pending share its result.
func (s *Service) Complete(ctx context.Context, input CompleteInput) (domain.RegistrationResult, error) {
	if err := input.Validate(); err != nil {
		return domain.RegistrationResult{}, err
	}

	name := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	ch := s.inflight.DoChan(email, func() (any, error) {
		if s.delay > 0 {
			<-s.clock.After(s.delay)
		}
		return domain.RegistrationResult{
			FullName:       name,
			Email:          email,
			DashboardTitle: "Welcome back, " + name,
			RegisteredAt:   s.clock.Now(),
		}, nil
	})

	// A caller that gives up leaves the shared registration running for the rest.
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.RegistrationResult{}, fmt.Errorf("complete registration: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return domain.RegistrationResult{}, fmt.Errorf("complete registration: %w", res.Err)
	}

	s.log.InfoContext(ctx, "registration completed", slog.Bool("shared", res.Shared))
	return res.Val.(domain.RegistrationResult), nil
}
