package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/logger"
)

type sendgridEmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &sendgridEmailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *sendgridEmailService) SendWelcome(ctx context.Context, email, name, accessCode string) error {
	subject := "Welcome to the boarding house"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour boarder account is ready. Use access code %s to sign in to the self-service portal.\n\nKeep this code private; you can ask the staff to regenerate it at any time.",
		name, accessCode,
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendgridEmailService) SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amountCents int64) error {
	subject := fmt.Sprintf("Payment received - receipt %s", receiptNumber)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your payment of %s. Your receipt number is %s.\n\nThank you.",
		name, formatAmount(amountCents), receiptNumber,
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendgridEmailService) SendOverdueReminder(ctx context.Context, email, name string, amountCents int64, dueDate time.Time) error {
	subject := "Payment overdue"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour payment of %s was due on %s and is now overdue. Please settle it as soon as possible.",
		name, formatAmount(amountCents), dueDate.Format("January 2, 2006"),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendgridEmailService) SendMoveOutConfirmation(ctx context.Context, email, name string, moveOutDate time.Time) error {
	subject := "Move-out confirmation"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour move-out was recorded for %s. We hope you enjoyed your stay.",
		name, moveOutDate.Format("January 2, 2006"),
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *sendgridEmailService) send(ctx context.Context, toEmail, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.Error("failed to send email", "to", toEmail, "subject", subject, "error", err)
		return err
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
		logger.Error("failed to send email", "to", toEmail, "subject", subject, "error", err)
		return err
	}

	logger.Debug("email sent", "to", toEmail, "subject", subject)
	return nil
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
