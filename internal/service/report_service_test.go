package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/service"
)

func TestGetOccupancySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Computes the occupancy rate", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := service.NewReportService(roomRepo, boarderRepo, new(MockUtilityRepo))

		roomRepo.On("GetStats", ctx).Return(&domain.RoomStats{Total: 10, Available: 4, Occupied: 5, Maintenance: 1}, nil)
		roomRepo.On("TotalCapacity", ctx).Return(40, nil)
		boarderRepo.On("CountActiveAssigned", ctx).Return(30, nil)

		summary, err := svc.GetOccupancySummary(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 10, summary.TotalRooms)
		assert.Equal(t, 40, summary.TotalCapacity)
		assert.Equal(t, 30, summary.OccupiedBeds)
		assert.Equal(t, 75, summary.RatePercent)
	})

	t.Run("Empty house reports zero", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := service.NewReportService(roomRepo, boarderRepo, new(MockUtilityRepo))

		roomRepo.On("GetStats", ctx).Return(&domain.RoomStats{}, nil)
		roomRepo.On("TotalCapacity", ctx).Return(0, nil)
		boarderRepo.On("CountActiveAssigned", ctx).Return(0, nil)

		summary, err := svc.GetOccupancySummary(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.RatePercent)
	})
}

func TestGetUtilitySplit(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	t.Run("Splits evenly with the remainder covered", func(t *testing.T) {
		utilityRepo := new(MockUtilityRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := service.NewReportService(new(MockRoomRepo), boarderRepo, utilityRepo)

		utilityRepo.On("TotalCostForPeriod", ctx, start, end).Return(int64(2500), nil)
		boarderRepo.On("CountActive", ctx).Return(4, nil)

		split, err := svc.GetUtilitySplit(ctx, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int64(2500), split.TotalCents)
		assert.Equal(t, 4, split.ActiveBoarders)
		assert.Equal(t, int64(625), split.PerHeadCents)
	})

	t.Run("No active boarders splits to zero", func(t *testing.T) {
		utilityRepo := new(MockUtilityRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := service.NewReportService(new(MockRoomRepo), boarderRepo, utilityRepo)

		utilityRepo.On("TotalCostForPeriod", ctx, start, end).Return(int64(2500), nil)
		boarderRepo.On("CountActive", ctx).Return(0, nil)

		split, err := svc.GetUtilitySplit(ctx, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), split.PerHeadCents)
	})

	t.Run("Inverted period is rejected", func(t *testing.T) {
		svc := service.NewReportService(new(MockRoomRepo), new(MockBoarderRepo), new(MockUtilityRepo))

		_, err := svc.GetUtilitySplit(ctx, end, start)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
