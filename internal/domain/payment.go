package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) IsPaid() bool      { return s == PaymentStatusPaid }
func (s PaymentStatus) IsCancelled() bool { return s == PaymentStatusCancelled }

type PaymentType string

const (
	PaymentTypeRent    PaymentType = "RENT"
	PaymentTypeUtility PaymentType = "UTILITY"
	PaymentTypeDeposit PaymentType = "DEPOSIT"
	PaymentTypeOther   PaymentType = "OTHER"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeUtility, PaymentTypeDeposit, PaymentTypeOther:
		return true
	}
	return false
}

type Payment struct {
	recorder

	ID            string        `json:"id"`
	BoarderID     string        `json:"boarder_id"`
	AmountCents   int64         `json:"amount_cents"`
	Type          PaymentType   `json:"type"`
	Status        PaymentStatus `json:"status"`
	DueDate       time.Time     `json:"due_date"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	ReceiptNumber string        `json:"receipt_number,omitempty"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewPayment validates every creation rule and reports all failures
// together. Payments start PENDING. The due-date rule compares calendar
// days, so a payment due later today is accepted.
func NewPayment(boarderID string, amountCents int64, paymentType PaymentType, dueDate time.Time, description string) (*Payment, error) {
	if violations := validatePaymentFields(boarderID, amountCents, paymentType, dueDate); len(violations) > 0 {
		return nil, NewValidationError(violations...)
	}
	now := time.Now()
	return &Payment{
		ID:          uuid.NewString(),
		BoarderID:   boarderID,
		AmountCents: amountCents,
		Type:        paymentType,
		Status:      PaymentStatusPending,
		DueDate:     dueDate,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func validatePaymentFields(boarderID string, amountCents int64, paymentType PaymentType, dueDate time.Time) []string {
	var violations []string
	if strings.TrimSpace(boarderID) == "" {
		violations = append(violations, "boarder id is required")
	}
	if amountCents <= 0 {
		violations = append(violations, "amount must be a positive value")
	}
	if !paymentType.Valid() {
		violations = append(violations, fmt.Sprintf("unknown payment type %q", string(paymentType)))
	}
	if startOfDay(dueDate).Before(startOfDay(time.Now())) {
		violations = append(violations, "due date cannot be in the past")
	}
	return violations
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UpdateDetails changes amount, type, due date and description. Only
// unsettled payments can change; PAID and CANCELLED payments are frozen.
// The past-due-date rule applies only when the due date itself moves, so
// an elapsed payment can still have its amount or description corrected.
func (p *Payment) UpdateDetails(amountCents int64, paymentType PaymentType, dueDate time.Time, description string) error {
	if p.Status == PaymentStatusPaid || p.Status == PaymentStatusCancelled {
		return NewInvalidTransitionError("a %s payment cannot be modified", strings.ToLower(string(p.Status)))
	}
	var violations []string
	if amountCents <= 0 {
		violations = append(violations, "amount must be a positive value")
	}
	if !paymentType.Valid() {
		violations = append(violations, fmt.Sprintf("unknown payment type %q", string(paymentType)))
	}
	if !dueDate.Equal(p.DueDate) && startOfDay(dueDate).Before(startOfDay(time.Now())) {
		violations = append(violations, "due date cannot be in the past")
	}
	if len(violations) > 0 {
		return NewValidationError(violations...)
	}
	p.AmountCents = amountCents
	p.Type = paymentType
	p.DueDate = dueDate
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// CanMarkAsPaid reports whether the payment is still collectible. Only
// PENDING and OVERDUE payments can be settled.
func (p *Payment) CanMarkAsPaid() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}

// MarkAsPaid settles the payment, stamping the paid date and a freshly
// generated receipt number together. A second call is a no-op and never
// regenerates the receipt. The paid date defaults to now.
func (p *Payment) MarkAsPaid(paidDate *time.Time) error {
	if p.Status == PaymentStatusPaid {
		return nil
	}
	if p.Status == PaymentStatusCancelled {
		return NewInvalidTransitionError("a cancelled payment cannot be marked as paid")
	}
	when := time.Now()
	if paidDate != nil {
		when = *paidDate
	}
	p.Status = PaymentStatusPaid
	p.PaidDate = &when
	p.ReceiptNumber = generateReceiptNumber(when)
	p.UpdatedAt = time.Now()
	p.record(EventPaymentPaid, map[string]string{
		"payment_id":     p.ID,
		"boarder_id":     p.BoarderID,
		"amount_cents":   strconv.FormatInt(p.AmountCents, 10),
		"receipt_number": p.ReceiptNumber,
	})
	return nil
}

// Cancel voids the payment. Paid funds cannot be unwound by cancellation.
func (p *Payment) Cancel() error {
	if p.Status == PaymentStatusPaid {
		return NewInvalidTransitionError("a paid payment cannot be cancelled")
	}
	if p.Status == PaymentStatusCancelled {
		return nil
	}
	p.Status = PaymentStatusCancelled
	p.UpdatedAt = time.Now()
	p.record(EventPaymentCancelled, map[string]string{
		"payment_id": p.ID,
		"boarder_id": p.BoarderID,
	})
	return nil
}

// IsOverdue is the authoritative overdue check, evaluated at read time. A
// persisted OVERDUE status is only a cache of this predicate.
func (p *Payment) IsOverdue(now time.Time) bool {
	if p.Status == PaymentStatusOverdue {
		return true
	}
	return p.Status == PaymentStatusPending && p.DueDate.Before(now)
}

// generateReceiptNumber stamps RCP-<year>-<base36 millis>.
func generateReceiptNumber(paidAt time.Time) string {
	return fmt.Sprintf("RCP-%04d-%s", paidAt.Year(), strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36)))
}
