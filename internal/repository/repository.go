package repository

import (
	"context"
	"time"

	"boardinghouse-backend/internal/domain"
)

// Filters are optional, entity-specific list restrictions. Nil/zero fields
// are ignored.

type RoomFilter struct {
	Status *domain.RoomStatus
	Floor  *int
	Search string // matches room number, case-insensitive substring
}

type BoarderFilter struct {
	Active *bool
	RoomID string
	Search string // matches name or email, case-insensitive substring
}

type PaymentFilter struct {
	BoarderID string
	Status    *domain.PaymentStatus
	Type      *domain.PaymentType
	DueFrom   *time.Time
	DueTo     *time.Time
}

type UtilityFilter struct {
	RoomID string
	Type   *domain.UtilityType
	From   *time.Time
	To     *time.Time
}

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]domain.Room, error)
	// Save upserts: insert when the id is new, full update otherwise.
	Save(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id string) error
	ExistsByNumber(ctx context.Context, roomNumber, excludeID string) (bool, error)
	TotalCapacity(ctx context.Context) (int, error)
	GetStats(ctx context.Context) (*domain.RoomStats, error)
}

type BoarderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Boarder, error)
	GetByAccessCode(ctx context.Context, code string) (*domain.Boarder, error)
	List(ctx context.Context, filter BoarderFilter) ([]domain.Boarder, error)
	Save(ctx context.Context, boarder *domain.Boarder) error
	Delete(ctx context.Context, id string) error
	// ExistsByEmail checks active and inactive boarders alike; excludeID
	// skips the boarder being updated.
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	CountActiveByRoom(ctx context.Context, roomID string) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountActiveAssigned(ctx context.Context) (int, error)
	GetStats(ctx context.Context) (*domain.BoarderStats, error)
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
	Save(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id string) error
	// GetStats buckets PENDING payments past due under Overdue, so the
	// counts agree with the read-time predicate even before a sweep runs.
	GetStats(ctx context.Context, now time.Time) (*domain.PaymentStats, error)
	GetMonthlyRevenue(ctx context.Context, year int) (*domain.MonthlyRevenue, error)
	// ListOverdue returns payments overdue as of the given instant,
	// whether or not the OVERDUE status has been persisted yet.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Payment, error)
	// MarkOverdue persists the OVERDUE cache for PENDING payments past
	// due, returning the ids it flipped.
	MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error)
}

type UtilityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UtilityReading, error)
	List(ctx context.Context, filter UtilityFilter) ([]domain.UtilityReading, error)
	Save(ctx context.Context, reading *domain.UtilityReading) error
	Delete(ctx context.Context, id string) error
	// GetLatestByRoomAndType returns (nil, nil) when the room has no
	// reading of that type yet.
	GetLatestByRoomAndType(ctx context.Context, roomID string, utilityType domain.UtilityType) (*domain.UtilityReading, error)
	// ListForSummary projects readings within the window, ascending by
	// reading date for charting.
	ListForSummary(ctx context.Context, roomID string, utilityType *domain.UtilityType, since time.Time) ([]domain.ConsumptionSummaryItem, error)
	TotalCostForPeriod(ctx context.Context, start, end time.Time) (int64, error)
	GetStats(ctx context.Context) (*domain.UtilityStats, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, id, recipientID string) error
}
