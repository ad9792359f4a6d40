package service

import (
	"context"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository"
)

type boarderService struct {
	boarderRepo repository.BoarderRepository
	roomRepo    repository.RoomRepository
	paymentRepo repository.PaymentRepository
	emailSvc    EmailService
	notifier    NotificationService
}

func NewBoarderService(
	boarderRepo repository.BoarderRepository,
	roomRepo repository.RoomRepository,
	paymentRepo repository.PaymentRepository,
	emailSvc EmailService,
	notifier NotificationService,
) BoarderService {
	return &boarderService{
		boarderRepo: boarderRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
		emailSvc:    emailSvc,
		notifier:    notifier,
	}
}

func (s *boarderService) CreateBoarder(ctx context.Context, cmd CreateBoarderCommand) (*domain.Boarder, error) {
	boarder, err := domain.NewBoarder(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Phone, cmd.EmergencyContact, cmd.EmergencyPhone, cmd.MoveInDate)
	if err != nil {
		return nil, err
	}

	taken, err := s.boarderRepo.ExistsByEmail(ctx, boarder.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("email %s is already registered", boarder.Email)
	}

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, boarder.DrainEvents())
	_ = s.emailSvc.SendWelcome(ctx, boarder.Email, boarder.FullName(), boarder.AccessCode)

	logger.Info("boarder created", "boarder_id", boarder.ID, "email", boarder.Email)
	return boarder, nil
}

func (s *boarderService) UpdateBoarder(ctx context.Context, id string, cmd UpdateBoarderCommand) (*domain.Boarder, error) {
	boarder, err := s.boarderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.boarderRepo.ExistsByEmail(ctx, cmd.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("email %s is already registered", cmd.Email)
	}

	if err := boarder.Update(cmd.FirstName, cmd.LastName, cmd.Email, cmd.Phone, cmd.EmergencyContact, cmd.EmergencyPhone, cmd.MoveInDate); err != nil {
		return nil, err
	}

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return nil, err
	}
	return boarder, nil
}

func (s *boarderService) DeleteBoarder(ctx context.Context, id string) error {
	boarder, err := s.boarderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if boarder.IsActive {
		return domain.NewInvalidTransitionError("boarder %s is still active", boarder.FullName())
	}

	if err := s.boarderRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("boarder deleted", "boarder_id", id)
	return nil
}

func (s *boarderService) GetBoarder(ctx context.Context, id string) (*domain.Boarder, error) {
	return s.boarderRepo.GetByID(ctx, id)
}

func (s *boarderService) ListBoarders(ctx context.Context, filter repository.BoarderFilter) ([]domain.Boarder, error) {
	return s.boarderRepo.List(ctx, filter)
}

func (s *boarderService) AssignRoom(ctx context.Context, boarderID, roomID string) (*domain.Boarder, error) {
	boarder, err := s.boarderRepo.GetByID(ctx, boarderID)
	if err != nil {
		return nil, err
	}
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status.IsUnderMaintenance() {
		return nil, domain.NewConflictError("room %s is under maintenance", room.RoomNumber)
	}
	occupancy, err := s.boarderRepo.CountActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.IsAtCapacity(occupancy) {
		return nil, domain.NewConflictError("room %s is at capacity (%d)", room.RoomNumber, room.Capacity)
	}

	previousRoomID := boarder.RoomID
	if err := boarder.AssignRoom(roomID); err != nil {
		return nil, err
	}

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return nil, err
	}

	if _, err := refreshRoomOccupancy(ctx, s.roomRepo, s.boarderRepo, roomID); err != nil {
		logger.Error("failed to refresh room occupancy", "room_id", roomID, "error", err)
	}
	if previousRoomID != nil && *previousRoomID != roomID {
		if _, err := refreshRoomOccupancy(ctx, s.roomRepo, s.boarderRepo, *previousRoomID); err != nil {
			logger.Error("failed to refresh room occupancy", "room_id", *previousRoomID, "error", err)
		}
	}

	s.notifier.Dispatch(ctx, boarder.DrainEvents())
	return boarder, nil
}

func (s *boarderService) RemoveRoom(ctx context.Context, boarderID string) (*domain.Boarder, error) {
	boarder, err := s.boarderRepo.GetByID(ctx, boarderID)
	if err != nil {
		return nil, err
	}

	previousRoomID := boarder.RoomID
	if err := boarder.RemoveRoom(); err != nil {
		return nil, err
	}

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return nil, err
	}

	if previousRoomID != nil {
		if _, err := refreshRoomOccupancy(ctx, s.roomRepo, s.boarderRepo, *previousRoomID); err != nil {
			logger.Error("failed to refresh room occupancy", "room_id", *previousRoomID, "error", err)
		}
	}

	s.notifier.Dispatch(ctx, boarder.DrainEvents())
	return boarder, nil
}

func (s *boarderService) DeactivateBoarder(ctx context.Context, id string, moveOutDate *time.Time) (*domain.Boarder, error) {
	boarder, err := s.boarderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payments, err := s.paymentRepo.List(ctx, repository.PaymentFilter{BoarderID: id}); err == nil {
		unsettled := 0
		for _, p := range payments {
			if p.CanMarkAsPaid() {
				unsettled++
			}
		}
		if unsettled > 0 {
			logger.Warn("boarder deactivated with unsettled payments", "boarder_id", id, "count", unsettled)
		}
	} else {
		logger.Error("failed to check payments before deactivation", "boarder_id", id, "error", err)
	}

	previousRoomID := boarder.RoomID
	if boarder.IsActive {
		if err := boarder.RemoveRoom(); err != nil {
			return nil, err
		}
	}
	boarder.Deactivate(moveOutDate)

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return nil, err
	}

	if previousRoomID != nil {
		if _, err := refreshRoomOccupancy(ctx, s.roomRepo, s.boarderRepo, *previousRoomID); err != nil {
			logger.Error("failed to refresh room occupancy", "room_id", *previousRoomID, "error", err)
		}
	}

	s.notifier.Dispatch(ctx, boarder.DrainEvents())
	if boarder.MoveOutDate != nil {
		_ = s.emailSvc.SendMoveOutConfirmation(ctx, boarder.Email, boarder.FullName(), *boarder.MoveOutDate)
	}

	logger.Info("boarder deactivated", "boarder_id", id)
	return boarder, nil
}

func (s *boarderService) ReactivateBoarder(ctx context.Context, id string) (*domain.Boarder, error) {
	boarder, err := s.boarderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	boarder.Reactivate()

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, boarder.DrainEvents())
	return boarder, nil
}

func (s *boarderService) RegenerateAccessCode(ctx context.Context, id string) (string, error) {
	boarder, err := s.boarderRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	boarder.RegenerateAccessCode()

	if err := s.boarderRepo.Save(ctx, boarder); err != nil {
		return "", err
	}

	_ = s.emailSvc.SendWelcome(ctx, boarder.Email, boarder.FullName(), boarder.AccessCode)
	return boarder.AccessCode, nil
}

func (s *boarderService) GetBoarderStats(ctx context.Context) (*domain.BoarderStats, error) {
	return s.boarderRepo.GetStats(ctx)
}
