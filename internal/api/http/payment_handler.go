package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Register(r *mux.Router) {
	r.HandleFunc("/payments", h.create).Methods(http.MethodPost)
	r.HandleFunc("/payments", h.list).Methods(http.MethodGet)
	r.HandleFunc("/payments/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/payments/overdue", h.listOverdue).Methods(http.MethodGet)
	r.HandleFunc("/payments/revenue/{year}", h.monthlyRevenue).Methods(http.MethodGet)
	r.HandleFunc("/payments/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/payments/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/payments/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/payments/{id}/pay", h.markPaid).Methods(http.MethodPost)
	r.HandleFunc("/payments/{id}/cancel", h.cancel).Methods(http.MethodPost)
}

// RegisterSelf mounts the boarder's own payment history.
func (h *PaymentHandler) RegisterSelf(r *mux.Router) {
	r.HandleFunc("/me/payments", h.listOwn).Methods(http.MethodGet)
}

func (h *PaymentHandler) create(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreatePaymentCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.payments.CreatePayment(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := paymentFilterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	payments, err := h.payments.ListPayments(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func paymentFilterFromQuery(r *http.Request) (repository.PaymentFilter, error) {
	var filter repository.PaymentFilter
	filter.BoarderID = r.URL.Query().Get("boarder_id")

	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.PaymentStatus(v)
		if !status.Valid() {
			return filter, domain.NewValidationError("unknown payment status " + v)
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("type"); v != "" {
		paymentType := domain.PaymentType(v)
		if !paymentType.Valid() {
			return filter, domain.NewValidationError("unknown payment type " + v)
		}
		filter.Type = &paymentType
	}
	if v := r.URL.Query().Get("due_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, domain.NewValidationError("due_from must be an RFC 3339 timestamp")
		}
		filter.DueFrom = &t
	}
	if v := r.URL.Query().Get("due_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, domain.NewValidationError("due_to must be an RFC 3339 timestamp")
		}
		filter.DueTo = &t
	}
	return filter, nil
}

func (h *PaymentHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	payments, err := h.payments.ListPayments(r.Context(), repository.PaymentFilter{BoarderID: claims.SubjectID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.payments.GetPaymentStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *PaymentHandler) listOverdue(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListOverduePayments(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) monthlyRevenue(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeError(w, domain.NewValidationError("year must be a number"))
		return
	}

	revenue, err := h.payments.GetMonthlyRevenue(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revenue)
}

func (h *PaymentHandler) get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) update(w http.ResponseWriter, r *http.Request) {
	var cmd service.UpdatePaymentCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.payments.UpdatePayment(r.Context(), mux.Vars(r)["id"], cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.DeletePayment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *PaymentHandler) markPaid(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaidDate *time.Time `json:"paid_date"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, err)
			return
		}
	}

	payment, err := h.payments.MarkPaymentPaid(r.Context(), mux.Vars(r)["id"], body.PaidDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) cancel(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.CancelPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
