package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository"
)

// StaffInboxID is the recipient for events that concern the house rather
// than a specific boarder (room status changes, maintenance).
const StaffInboxID = "staff"

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Dispatch(ctx context.Context, events []domain.Event) {
	for _, ev := range events {
		note := &domain.Notification{
			ID:          uuid.NewString(),
			RecipientID: recipientFor(ev),
			Title:       titleFor(ev),
			Message:     messageFor(ev),
			Attributes:  ev.Attributes,
			CreatedAt:   time.Now(),
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Error("failed to persist notification", "event", ev.Name, "error", err)
		}
	}
}

func (s *notificationService) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.noteRepo.List(ctx, recipientID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, recipientID string) error {
	return s.noteRepo.MarkAsRead(ctx, id, recipientID)
}

func recipientFor(ev domain.Event) string {
	if id := ev.Attributes["boarder_id"]; id != "" {
		return id
	}
	return StaffInboxID
}

func titleFor(ev domain.Event) string {
	switch ev.Name {
	case domain.EventRoomStatusChanged:
		return "Room status changed"
	case domain.EventRoomAssigned:
		return "Room assigned"
	case domain.EventRoomVacated:
		return "Room vacated"
	case domain.EventBoarderCreated:
		return "Welcome to the house"
	case domain.EventBoarderDeactivated:
		return "Move-out recorded"
	case domain.EventBoarderReactivated:
		return "Account reactivated"
	case domain.EventPaymentPaid:
		return "Payment received"
	case domain.EventPaymentCancelled:
		return "Payment cancelled"
	case domain.EventPaymentOverdue:
		return "Payment overdue"
	case domain.EventUtilityReadingRecorded:
		return "Utility reading recorded"
	}
	return ev.Name
}

func messageFor(ev domain.Event) string {
	switch ev.Name {
	case domain.EventRoomStatusChanged:
		return fmt.Sprintf("Room status changed from %s to %s.", ev.Attributes["from"], ev.Attributes["to"])
	case domain.EventRoomAssigned:
		return "You have been assigned to a room."
	case domain.EventRoomVacated:
		return "Your room assignment has been removed."
	case domain.EventBoarderCreated:
		return "Your boarder account has been created. Check your email for the access code."
	case domain.EventBoarderDeactivated:
		return fmt.Sprintf("Your move-out was recorded for %s.", ev.Attributes["move_out_date"])
	case domain.EventBoarderReactivated:
		return "Your boarder account has been reactivated."
	case domain.EventPaymentPaid:
		return fmt.Sprintf("Your payment was received. Receipt %s.", ev.Attributes["receipt_number"])
	case domain.EventPaymentCancelled:
		return "A payment on your account was cancelled."
	case domain.EventPaymentOverdue:
		return "You have an overdue payment. Please settle it as soon as possible."
	case domain.EventUtilityReadingRecorded:
		return fmt.Sprintf("A %s reading was recorded for your room.", ev.Attributes["type"])
	}
	return ev.Name
}
