package payment

import (
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
)

// ProcessPaymentInput holds the payment form.
type ProcessPaymentInput struct {
	Plan       domain.Plan
	Cardholder string
	CardNumber string
	Expiry     string // MM/YY
	CVC        string
}

// Validate checks all fields and collects all errors. now is used to reject
// expired cards.
func (i *ProcessPaymentInput) Validate(now time.Time) error {
	var errs []domain.FieldError

	if !i.Plan.IsValid() {
		errs = append(errs, domain.FieldError{Field: "plan", Message: "must be basic or premium"})
	}
	if strings.TrimSpace(i.Cardholder) == "" {
		errs = append(errs, domain.FieldError{Field: "cardholder", Message: "required"})
	} else if len(i.Cardholder) > 100 {
		errs = append(errs, domain.FieldError{Field: "cardholder", Message: "max 100 characters"})
	}

	digits := i.cardDigits()
	if len(digits) < 13 || len(digits) > 19 || !allDigits(digits) {
		errs = append(errs, domain.FieldError{Field: "card_number", Message: "must be 13 to 19 digits"})
	}

	if msg := checkExpiry(i.Expiry, now); msg != "" {
		errs = append(errs, domain.FieldError{Field: "expiry", Message: msg})
	}

	if n := len(i.CVC); (n != 3 && n != 4) || !allDigits(i.CVC) {
		errs = append(errs, domain.FieldError{Field: "cvc", Message: "must be 3 or 4 digits"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// cardDigits strips spaces and dashes from the card number.
func (i *ProcessPaymentInput) cardDigits() string {
	return strings.NewReplacer(" ", "", "-", "").Replace(i.CardNumber)
}

func (i *ProcessPaymentInput) dedupKey() string {
	return string(i.Plan) + "|" + strings.ToLower(strings.TrimSpace(i.Cardholder)) + "|" + i.cardDigits()
}

// checkExpiry returns an error message, or "" when expiry is a valid
// MM/YY not before the current month.
func checkExpiry(expiry string, now time.Time) string {
	mm, yy, ok := strings.Cut(strings.TrimSpace(expiry), "/")
	if !ok || len(mm) != 2 || len(yy) != 2 {
		return "must be MM/YY"
	}
	month, err1 := strconv.Atoi(mm)
	year, err2 := strconv.Atoi(yy)
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return "must be MM/YY"
	}

	year += 2000
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return "card expired"
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
