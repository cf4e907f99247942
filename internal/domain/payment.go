package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan is a course subscription tier.
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

func (p Plan) String() string { return string(p) }

func (p Plan) IsValid() bool {
	switch p {
	case PlanBasic, PlanPremium:
		return true
	}
	return false
}

// Label returns the plan name as shown on the payment form: "Basic Plan".
func (p Plan) Label() string {
	s := string(p)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Plan"
}

// Quote is the price breakdown for a plan. All amounts have two decimals.
type Quote struct {
	Plan     Plan
	Label    string
	Price    decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Receipt confirms a simulated payment.
type Receipt struct {
	ID          uuid.UUID
	Quote       Quote
	Cardholder  string
	CardLast4   string
	ProcessedAt time.Time
}
