package service

import (
	"context"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/logger"
	"boardinghouse-backend/internal/repository"
)

type roomService struct {
	roomRepo    repository.RoomRepository
	boarderRepo repository.BoarderRepository
	notifier    NotificationService
}

func NewRoomService(roomRepo repository.RoomRepository, boarderRepo repository.BoarderRepository, notifier NotificationService) RoomService {
	return &roomService{
		roomRepo:    roomRepo,
		boarderRepo: boarderRepo,
		notifier:    notifier,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, cmd CreateRoomCommand) (*domain.Room, error) {
	room, err := domain.NewRoom(cmd.RoomNumber, cmd.Floor, cmd.Capacity, cmd.MonthlyRateCents, cmd.Amenities)
	if err != nil {
		return nil, err
	}

	taken, err := s.roomRepo.ExistsByNumber(ctx, room.RoomNumber, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("room number %s is already in use", room.RoomNumber)
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	logger.Info("room created", "room_id", room.ID, "room_number", room.RoomNumber)
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id string, cmd UpdateRoomCommand) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.roomRepo.ExistsByNumber(ctx, cmd.RoomNumber, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("room number %s is already in use", cmd.RoomNumber)
	}

	occupancy, err := s.boarderRepo.CountActiveByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Capacity < occupancy {
		return nil, domain.NewConflictError("capacity %d is below current occupancy %d", cmd.Capacity, occupancy)
	}

	if err := room.Update(cmd.RoomNumber, cmd.Floor, cmd.Capacity, cmd.MonthlyRateCents, cmd.Amenities); err != nil {
		return nil, err
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	occupancy, err := s.boarderRepo.CountActiveByRoom(ctx, id)
	if err != nil {
		return err
	}
	if occupancy > 0 {
		return domain.NewInvalidTransitionError("room %s still has %d active boarders", room.RoomNumber, occupancy)
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("room deleted", "room_id", id, "room_number", room.RoomNumber)
	return nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*domain.Room, int, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	occupancy, err := s.boarderRepo.CountActiveByRoom(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return room, occupancy, nil
}

func (s *roomService) ListRooms(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, error) {
	return s.roomRepo.List(ctx, filter)
}

func (s *roomService) MarkRoomAvailable(ctx context.Context, id string) (*domain.Room, error) {
	return s.transition(ctx, id, (*domain.Room).MarkAsAvailable)
}

func (s *roomService) MarkRoomOccupied(ctx context.Context, id string) (*domain.Room, error) {
	return s.transition(ctx, id, (*domain.Room).MarkAsOccupied)
}

func (s *roomService) MarkRoomMaintenance(ctx context.Context, id string) (*domain.Room, error) {
	return s.transition(ctx, id, (*domain.Room).MarkAsMaintenance)
}

func (s *roomService) transition(ctx context.Context, id string, apply func(*domain.Room)) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(room)

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, room.DrainEvents())
	return room, nil
}

func (s *roomService) RefreshOccupancy(ctx context.Context, id string) (*domain.Room, error) {
	room, err := refreshRoomOccupancy(ctx, s.roomRepo, s.boarderRepo, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Dispatch(ctx, room.DrainEvents())
	return room, nil
}

func (s *roomService) GetRoomStats(ctx context.Context) (*domain.RoomStats, error) {
	return s.roomRepo.GetStats(ctx)
}

// refreshRoomOccupancy re-derives a room's status from the live active
// boarder count and persists it when it changed. A room stays AVAILABLE
// while beds remain and becomes OCCUPIED only at capacity. Rooms under
// maintenance are left alone.
func refreshRoomOccupancy(ctx context.Context, roomRepo repository.RoomRepository, boarderRepo repository.BoarderRepository, roomID string) (*domain.Room, error) {
	room, err := roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status.IsUnderMaintenance() {
		return room, nil
	}

	occupancy, err := boarderRepo.CountActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	before := room.Status
	if room.IsAtCapacity(occupancy) {
		room.MarkAsOccupied()
	} else {
		room.MarkAsAvailable()
	}
	if room.Status == before {
		return room, nil
	}

	if err := roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}
