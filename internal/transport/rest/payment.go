package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/englishmaster-backend/internal/domain"
	"github.com/heartmarshall/englishmaster-backend/internal/service/payment"
	"github.com/heartmarshall/englishmaster-backend/internal/transport/respond"
)

type paymentService interface {
	SelectPlan(ctx context.Context, plan domain.Plan) (domain.Quote, error)
	ProcessPayment(ctx context.Context, input payment.ProcessPaymentInput) (domain.Receipt, error)
}

// PaymentHandler serves /api/payment.
type PaymentHandler struct {
	payment paymentService
	log     *slog.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(log *slog.Logger, svc paymentService) *PaymentHandler {
	return &PaymentHandler{payment: svc, log: log.With("handler", "payment")}
}

type quoteDTO struct {
	Plan     string `json:"plan"`
	Label    string `json:"label"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type paymentRequest struct {
	Plan       string `json:"plan"`
	Cardholder string `json:"cardholder"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type receiptDTO struct {
	ID          string    `json:"id"`
	Quote       quoteDTO  `json:"quote"`
	Cardholder  string    `json:"cardholder"`
	CardLast4   string    `json:"card_last4"`
	ProcessedAt time.Time `json:"processed_at"`
}

type paymentResponse struct {
	Receipt      receiptDTO              `json:"receipt"`
	Notification respond.NotificationDTO `json:"notification"`
}

func toQuoteDTO(q domain.Quote) quoteDTO {
	return quoteDTO{
		Plan:     q.Plan.String(),
		Label:    q.Label,
		Price:    q.Price.StringFixed(2),
		Subtotal: q.Subtotal.StringFixed(2),
		Tax:      q.Tax.StringFixed(2),
		Total:    q.Total.StringFixed(2),
	}
}

// Plan quotes /api/payment/plans/{plan}.
func (h *PaymentHandler) Plan(w http.ResponseWriter, r *http.Request) {
	q, err := h.payment.SelectPlan(r.Context(), domain.Plan(chi.URLParam(r, "plan")))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toQuoteDTO(q))
}

// Pay processes the payment form. It blocks for the simulated processing time.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	rc, err := h.payment.ProcessPayment(r.Context(), payment.ProcessPaymentInput{
		Plan:       domain.Plan(req.Plan),
		Cardholder: req.Cardholder,
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVC:        req.CVC,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	respond.JSON(w, http.StatusOK, paymentResponse{
		Receipt: receiptDTO{
			ID:          rc.ID.String(),
			Quote:       toQuoteDTO(rc.Quote),
			Cardholder:  rc.Cardholder,
			CardLast4:   rc.CardLast4,
			ProcessedAt: rc.ProcessedAt,
		},
		Notification: respond.ToNotificationDTO(domain.Success(domain.MsgPaymentOK)),
	})
}
