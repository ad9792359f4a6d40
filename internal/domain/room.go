package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

func (s RoomStatus) IsAvailable() bool        { return s == RoomStatusAvailable }
func (s RoomStatus) IsOccupied() bool         { return s == RoomStatusOccupied }
func (s RoomStatus) IsUnderMaintenance() bool { return s == RoomStatusMaintenance }

type Room struct {
	recorder

	ID               string     `json:"id"`
	RoomNumber       string     `json:"room_number"`
	Floor            int        `json:"floor"`
	Capacity         int        `json:"capacity"`
	MonthlyRateCents int64      `json:"monthly_rate_cents"`
	Amenities        []string   `json:"amenities"`
	Status           RoomStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewRoom validates every creation rule and reports all failures together.
// Rooms start AVAILABLE.
func NewRoom(roomNumber string, floor, capacity int, monthlyRateCents int64, amenities []string) (*Room, error) {
	if violations := validateRoomFields(roomNumber, floor, capacity, monthlyRateCents); len(violations) > 0 {
		return nil, NewValidationError(violations...)
	}
	now := time.Now()
	return &Room{
		ID:               uuid.NewString(),
		RoomNumber:       strings.TrimSpace(roomNumber),
		Floor:            floor,
		Capacity:         capacity,
		MonthlyRateCents: monthlyRateCents,
		Amenities:        amenities,
		Status:           RoomStatusAvailable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func validateRoomFields(roomNumber string, floor, capacity int, monthlyRateCents int64) []string {
	var violations []string
	if strings.TrimSpace(roomNumber) == "" {
		violations = append(violations, "room number is required")
	}
	if floor <= 0 {
		violations = append(violations, "floor must be a positive number")
	}
	if capacity <= 0 {
		violations = append(violations, "capacity must be a positive number")
	}
	if monthlyRateCents <= 0 {
		violations = append(violations, "monthly rate must be a positive amount")
	}
	return violations
}

// Update changes the room's attributes, re-validating the creation rules.
// Status transitions go through the explicit Mark* methods.
func (r *Room) Update(roomNumber string, floor, capacity int, monthlyRateCents int64, amenities []string) error {
	if violations := validateRoomFields(roomNumber, floor, capacity, monthlyRateCents); len(violations) > 0 {
		return NewValidationError(violations...)
	}
	r.RoomNumber = strings.TrimSpace(roomNumber)
	r.Floor = floor
	r.Capacity = capacity
	r.MonthlyRateCents = monthlyRateCents
	r.Amenities = amenities
	r.UpdatedAt = time.Now()
	return nil
}

// IsAtCapacity compares the supplied live occupancy against capacity. The
// room does not track occupancy itself; callers count active boarders.
func (r *Room) IsAtCapacity(currentOccupancy int) bool {
	return currentOccupancy >= r.Capacity
}

func (r *Room) MarkAsAvailable()   { r.setStatus(RoomStatusAvailable) }
func (r *Room) MarkAsOccupied()    { r.setStatus(RoomStatusOccupied) }
func (r *Room) MarkAsMaintenance() { r.setStatus(RoomStatusMaintenance) }

// setStatus is a no-op when the room is already in the target state.
func (r *Room) setStatus(status RoomStatus) {
	if r.Status == status {
		return
	}
	prev := r.Status
	r.Status = status
	r.UpdatedAt = time.Now()
	r.record(EventRoomStatusChanged, map[string]string{
		"room_id":     r.ID,
		"room_number": r.RoomNumber,
		"from":        string(prev),
		"to":          string(status),
	})
}
