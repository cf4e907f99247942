// Package payment quotes course plans and simulates card processing.
// No money moves: processing waits a configured delay and issues a receipt.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// Config holds the price list and the simulated processing delay.
type Config struct {
	BasicPrice      decimal.Decimal
	PremiumPrice    decimal.Decimal
	TaxRate         decimal.Decimal
	ProcessingDelay time.Duration
}

// Service implements plan quoting and payment processing.
type Service struct {
	prices  map[domain.Plan]decimal.Decimal
	taxRate decimal.Decimal
	delay   time.Duration
	clock   clockwork.Clock
	log     *slog.Logger

	inflight singleflight.Group
}

// NewService creates a new payment service.
func NewService(log *slog.Logger, clock clockwork.Clock, cfg Config) *Service {
	return &Service{
		prices: map[domain.Plan]decimal.Decimal{
			domain.PlanBasic:   cfg.BasicPrice,
			domain.PlanPremium: cfg.PremiumPrice,
		},
		taxRate: cfg.TaxRate,
		delay:   cfg.ProcessingDelay,
		clock:   clock,
		log:     log.With("service", "payment"),
	}
}

// SelectPlan returns the price breakdown for plan. Tax is rounded to cents.
func (s *Service) SelectPlan(_ context.Context, plan domain.Plan) (domain.Quote, error) {
	price, ok := s.prices[plan]
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: %q", domain.ErrPlanNotFound, plan)
	}

	tax := price.Mul(s.taxRate).Round(2)
	return domain.Quote{
		Plan:     plan,
		Label:    plan.Label(),
		Price:    price,
		Subtotal: price,
		Tax:      tax,
		Total:    price.Add(tax),
	}, nil
}

// ProcessPayment validates the card details, waits the processing delay and
// returns a receipt. A submission identical to one still being processed
// shares that submission's receipt instead of charging twice.
func (s *Service) ProcessPayment(ctx context.Context, input ProcessPaymentInput) (domain.Receipt, error) {
	if err := input.Validate(s.clock.Now()); err != nil {
		return domain.Receipt{}, err
	}

	quote, err := s.SelectPlan(ctx, input.Plan)
	if err != nil {
		return domain.Receipt{}, err
	}

	// The shared charge outlives any single caller; each caller stops
	// waiting on its own context.
	shareCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(input.dedupKey(), func() (any, error) {
		if err := s.wait(shareCtx); err != nil {
			return domain.Receipt{}, err
		}
		digits := input.cardDigits()
		return domain.Receipt{
			ID:          uuid.New(),
			Quote:       quote,
			Cardholder:  input.Cardholder,
			CardLast4:   digits[len(digits)-4:],
			ProcessedAt: s.clock.Now(),
		}, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.Receipt{}, fmt.Errorf("process payment: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return domain.Receipt{}, fmt.Errorf("process payment: %w", res.Err)
	}

	receipt, shared := res.Val.(domain.Receipt), res.Shared
	s.log.InfoContext(ctx, "payment processed",
		slog.String("receipt_id", receipt.ID.String()),
		slog.String("plan", string(quote.Plan)),
		slog.String("total", quote.Total.StringFixed(2)),
		slog.Bool("shared", shared),
	)
	return receipt, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.delay):
		return nil
	}
}
