package service

import (
	"context"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository"
)

type utilityService struct {
	utilityRepo          repository.UtilityRepository
	roomRepo             repository.RoomRepository
	notifier             NotificationService
	defaultSummaryMonths int
}

func NewUtilityService(utilityRepo repository.UtilityRepository, roomRepo repository.RoomRepository, notifier NotificationService, defaultSummaryMonths int) UtilityService {
	if defaultSummaryMonths <= 0 {
		defaultSummaryMonths = 6
	}
	return &utilityService{
		utilityRepo:          utilityRepo,
		roomRepo:             roomRepo,
		notifier:             notifier,
		defaultSummaryMonths: defaultSummaryMonths,
	}
}

func (s *utilityService) CreateReading(ctx context.Context, cmd CreateUtilityReadingCommand) (*domain.UtilityReading, error) {
	if _, err := s.roomRepo.GetByID(ctx, cmd.RoomID); err != nil {
		return nil, err
	}

	// A new reading must continue the meter where the last one left off.
	latest, err := s.utilityRepo.GetLatestByRoomAndType(ctx, cmd.RoomID, cmd.Type)
	if err != nil {
		return nil, err
	}
	if latest != nil && cmd.PreviousReading < latest.CurrentReading {
		return nil, domain.NewConflictError(
			"previous reading %.2f is below the last recorded reading %.2f",
			cmd.PreviousReading, latest.CurrentReading,
		)
	}

	reading, err := domain.NewUtilityReading(cmd.RoomID, cmd.Type, cmd.PreviousReading, cmd.CurrentReading, cmd.RatePerUnitCents, cmd.ReadingDate, cmd.PeriodStart, cmd.PeriodEnd)
	if err != nil {
		return nil, err
	}

	if err := s.utilityRepo.Save(ctx, reading); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, reading.DrainEvents())

	logger.Info("utility reading recorded",
		"reading_id", reading.ID,
		"room_id", reading.RoomID,
		"type", reading.Type,
		"cost_cents", reading.CostCents(),
	)
	return reading, nil
}

func (s *utilityService) GetReading(ctx context.Context, id string) (*domain.UtilityReading, error) {
	return s.utilityRepo.GetByID(ctx, id)
}

func (s *utilityService) ListReadings(ctx context.Context, filter repository.UtilityFilter) ([]domain.UtilityReading, error) {
	return s.utilityRepo.List(ctx, filter)
}

func (s *utilityService) DeleteReading(ctx context.Context, id string) error {
	if _, err := s.utilityRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.utilityRepo.Delete(ctx, id)
}

func (s *utilityService) GetLatestReading(ctx context.Context, roomID string, utilityType domain.UtilityType) (*domain.UtilityReading, error) {
	reading, err := s.utilityRepo.GetLatestByRoomAndType(ctx, roomID, utilityType)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, domain.NewNotFoundError("utility reading", roomID+"/"+string(utilityType))
	}
	return reading, nil
}

// GetConsumptionSummary reports per-reading consumption and cost over the
// trailing window. An empty roomID spans every room.
func (s *utilityService) GetConsumptionSummary(ctx context.Context, roomID string, utilityType *domain.UtilityType, months int) ([]domain.ConsumptionSummaryItem, error) {
	if roomID != "" {
		if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
			return nil, err
		}
	}
	if months <= 0 {
		months = s.defaultSummaryMonths
	}
	since := time.Now().AddDate(0, -months, 0)
	return s.utilityRepo.ListForSummary(ctx, roomID, utilityType, since)
}

func (s *utilityService) GetUtilityStats(ctx context.Context) (*domain.UtilityStats, error) {
	return s.utilityRepo.GetStats(ctx)
}
