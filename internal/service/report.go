package service

import (
	"context"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/utils"
)

type reportService struct {
	roomRepo    repository.RoomRepository
	boarderRepo repository.BoarderRepository
	utilityRepo repository.UtilityRepository
}

func NewReportService(roomRepo repository.RoomRepository, boarderRepo repository.BoarderRepository, utilityRepo repository.UtilityRepository) ReportService {
	return &reportService{
		roomRepo:    roomRepo,
		boarderRepo: boarderRepo,
		utilityRepo: utilityRepo,
	}
}

func (s *reportService) GetOccupancySummary(ctx context.Context) (*domain.OccupancySummary, error) {
	stats, err := s.roomRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	capacity, err := s.roomRepo.TotalCapacity(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.boarderRepo.CountActiveAssigned(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.OccupancySummary{
		TotalRooms:    stats.Total,
		TotalCapacity: capacity,
		OccupiedBeds:  occupied,
		RatePercent:   utils.OccupancyRatePercent(occupied, capacity),
	}, nil
}

func (s *reportService) GetUtilitySplit(ctx context.Context, periodStart, periodEnd time.Time) (*domain.UtilitySplit, error) {
	if periodEnd.Before(periodStart) {
		return nil, domain.NewValidationError("period end cannot be before period start")
	}

	total, err := s.utilityRepo.TotalCostForPeriod(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	active, err := s.boarderRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.UtilitySplit{
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		TotalCents:     total,
		ActiveBoarders: active,
		PerHeadCents:   utils.SplitPerHead(total, active),
	}, nil
}
