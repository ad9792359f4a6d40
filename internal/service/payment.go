package service

import (
	"context"
	"strings"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	boarderRepo repository.BoarderRepository
	emailSvc    EmailService
	notifier    NotificationService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	boarderRepo repository.BoarderRepository,
	emailSvc EmailService,
	notifier NotificationService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		boarderRepo: boarderRepo,
		emailSvc:    emailSvc,
		notifier:    notifier,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error) {
	if _, err := s.boarderRepo.GetByID(ctx, cmd.BoarderID); err != nil {
		return nil, err
	}

	payment, err := domain.NewPayment(cmd.BoarderID, cmd.AmountCents, cmd.Type, cmd.DueDate, cmd.Description)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("payment created", "payment_id", payment.ID, "boarder_id", payment.BoarderID, "amount_cents", payment.AmountCents)
	return payment, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, id string, cmd UpdatePaymentCommand) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.UpdateDetails(cmd.AmountCents, cmd.Type, cmd.DueDate, cmd.Description); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment.Status == domain.PaymentStatusPaid {
		return domain.NewConflictError("paid payments cannot be deleted")
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("payment deleted", "payment_id", id)
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) ListPayments(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx, filter)
}

func (s *paymentService) MarkPaymentPaid(ctx context.Context, id string, paidDate *time.Time) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !payment.CanMarkAsPaid() {
		return nil, domain.NewInvalidTransitionError(
			"a %s payment cannot be marked as paid", strings.ToLower(string(payment.Status)))
	}
	if err := payment.MarkAsPaid(paidDate); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, payment.DrainEvents())
	if boarder, err := s.boarderRepo.GetByID(ctx, payment.BoarderID); err == nil {
		_ = s.emailSvc.SendPaymentReceipt(ctx, boarder.Email, boarder.FullName(), payment.ReceiptNumber, payment.AmountCents)
	}

	logger.Info("payment marked paid", "payment_id", payment.ID, "receipt_number", payment.ReceiptNumber)
	return payment, nil
}

func (s *paymentService) CancelPayment(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.Cancel(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, payment.DrainEvents())
	return payment, nil
}

func (s *paymentService) GetPaymentStats(ctx context.Context) (*domain.PaymentStats, error) {
	return s.paymentRepo.GetStats(ctx, time.Now())
}

func (s *paymentService) GetMonthlyRevenue(ctx context.Context, year int) (*domain.MonthlyRevenue, error) {
	return s.paymentRepo.GetMonthlyRevenue(ctx, year)
}

func (s *paymentService) MarkOverduePayments(ctx context.Context, asOf time.Time) ([]domain.Payment, error) {
	ids, err := s.paymentRepo.MarkOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	marked := make([]domain.Payment, 0, len(ids))
	for _, id := range ids {
		payment, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			logger.Error("failed to load overdue payment", "payment_id", id, "error", err)
			continue
		}
		s.notifier.Dispatch(ctx, []domain.Event{{
			Name:       domain.EventPaymentOverdue,
			OccurredAt: asOf,
			Attributes: map[string]string{
				"payment_id": payment.ID,
				"boarder_id": payment.BoarderID,
			},
		}})
		marked = append(marked, *payment)
	}

	if len(marked) > 0 {
		logger.Info("payments marked overdue", "count", len(marked), "as_of", asOf)
	}
	return marked, nil
}

func (s *paymentService) ListOverduePayments(ctx context.Context, asOf time.Time) ([]domain.Payment, error) {
	return s.paymentRepo.ListOverdue(ctx, asOf)
}
