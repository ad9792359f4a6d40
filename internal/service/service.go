package service

import (
	"context"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
)

// Commands are the validated shapes accepted by the application layer.
// Field constraints are enforced by the entity constructors; services add
// the cross-entity rules (uniqueness, eligibility, transition gates).

type CreateRoomCommand struct {
	RoomNumber       string   `json:"room_number"`
	Floor            int      `json:"floor"`
	Capacity         int      `json:"capacity"`
	MonthlyRateCents int64    `json:"monthly_rate_cents"`
	Amenities        []string `json:"amenities"`
}

type UpdateRoomCommand struct {
	RoomNumber       string   `json:"room_number"`
	Floor            int      `json:"floor"`
	Capacity         int      `json:"capacity"`
	MonthlyRateCents int64    `json:"monthly_rate_cents"`
	Amenities        []string `json:"amenities"`
}

type CreateBoarderCommand struct {
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	MoveInDate       time.Time `json:"move_in_date"`
}

type UpdateBoarderCommand struct {
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	MoveInDate       time.Time `json:"move_in_date"`
}

type CreatePaymentCommand struct {
	BoarderID   string             `json:"boarder_id"`
	AmountCents int64              `json:"amount_cents"`
	Type        domain.PaymentType `json:"type"`
	DueDate     time.Time          `json:"due_date"`
	Description string             `json:"description"`
}

type UpdatePaymentCommand struct {
	AmountCents int64              `json:"amount_cents"`
	Type        domain.PaymentType `json:"type"`
	DueDate     time.Time          `json:"due_date"`
	Description string             `json:"description"`
}

type CreateUtilityReadingCommand struct {
	RoomID           string             `json:"room_id"`
	Type             domain.UtilityType `json:"type"`
	PreviousReading  float64            `json:"previous_reading"`
	CurrentReading   float64            `json:"current_reading"`
	RatePerUnitCents int64              `json:"rate_per_unit_cents"`
	ReadingDate      time.Time          `json:"reading_date"`
	PeriodStart      time.Time          `json:"billing_period_start"`
	PeriodEnd        time.Time          `json:"billing_period_end"`
}

type RoomService interface {
	CreateRoom(ctx context.Context, cmd CreateRoomCommand) (*domain.Room, error)
	UpdateRoom(ctx context.Context, id string, cmd UpdateRoomCommand) (*domain.Room, error)
	DeleteRoom(ctx context.Context, id string) error
	// GetRoom returns the room together with its live occupancy.
	GetRoom(ctx context.Context, id string) (*domain.Room, int, error)
	ListRooms(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, error)
	MarkRoomAvailable(ctx context.Context, id string) (*domain.Room, error)
	MarkRoomOccupied(ctx context.Context, id string) (*domain.Room, error)
	MarkRoomMaintenance(ctx context.Context, id string) (*domain.Room, error)
	// RefreshOccupancy re-derives OCCUPIED/AVAILABLE from the live active
	// boarder count. MAINTENANCE is sticky.
	RefreshOccupancy(ctx context.Context, id string) (*domain.Room, error)
	GetRoomStats(ctx context.Context) (*domain.RoomStats, error)
}

type BoarderService interface {
	CreateBoarder(ctx context.Context, cmd CreateBoarderCommand) (*domain.Boarder, error)
	UpdateBoarder(ctx context.Context, id string, cmd UpdateBoarderCommand) (*domain.Boarder, error)
	DeleteBoarder(ctx context.Context, id string) error
	GetBoarder(ctx context.Context, id string) (*domain.Boarder, error)
	ListBoarders(ctx context.Context, filter repository.BoarderFilter) ([]domain.Boarder, error)
	AssignRoom(ctx context.Context, boarderID, roomID string) (*domain.Boarder, error)
	RemoveRoom(ctx context.Context, boarderID string) (*domain.Boarder, error)
	DeactivateBoarder(ctx context.Context, id string, moveOutDate *time.Time) (*domain.Boarder, error)
	ReactivateBoarder(ctx context.Context, id string) (*domain.Boarder, error)
	RegenerateAccessCode(ctx context.Context, id string) (string, error)
	GetBoarderStats(ctx context.Context) (*domain.BoarderStats, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, cmd CreatePaymentCommand) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id string, cmd UpdatePaymentCommand) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error)
	MarkPaymentPaid(ctx context.Context, id string, paidDate *time.Time) (*domain.Payment, error)
	CancelPayment(ctx context.Context, id string) (*domain.Payment, error)
	GetPaymentStats(ctx context.Context) (*domain.PaymentStats, error)
	GetMonthlyRevenue(ctx context.Context, year int) (*domain.MonthlyRevenue, error)
	// MarkOverduePayments persists the OVERDUE cache and returns the
	// payments it flipped.
	MarkOverduePayments(ctx context.Context, asOf time.Time) ([]domain.Payment, error)
	ListOverduePayments(ctx context.Context, asOf time.Time) ([]domain.Payment, error)
}

type UtilityService interface {
	CreateReading(ctx context.Context, cmd CreateUtilityReadingCommand) (*domain.UtilityReading, error)
	GetReading(ctx context.Context, id string) (*domain.UtilityReading, error)
	ListReadings(ctx context.Context, filter repository.UtilityFilter) ([]domain.UtilityReading, error)
	DeleteReading(ctx context.Context, id string) error
	GetLatestReading(ctx context.Context, roomID string, utilityType domain.UtilityType) (*domain.UtilityReading, error)
	GetConsumptionSummary(ctx context.Context, roomID string, utilityType *domain.UtilityType, months int) ([]domain.ConsumptionSummaryItem, error)
	GetUtilityStats(ctx context.Context) (*domain.UtilityStats, error)
}

type ReportService interface {
	GetOccupancySummary(ctx context.Context) (*domain.OccupancySummary, error)
	GetUtilitySplit(ctx context.Context, periodStart, periodEnd time.Time) (*domain.UtilitySplit, error)
}

type AuthService interface {
	// Login authenticates a staff user and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// LoginWithAccessCode is the passwordless boarder self-service entry.
	LoginWithAccessCode(ctx context.Context, accessCode string) (string, *domain.Boarder, error)
	CreateStaffUser(ctx context.Context, email, name, password string, role domain.UserRole) (*domain.User, error)
}

type NotificationService interface {
	// Dispatch persists one notification per domain event. Events are
	// handed over only after the triggering persist succeeded; failures
	// here are logged, never returned.
	Dispatch(ctx context.Context, events []domain.Event)
	List(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int, error)
	MarkAsRead(ctx context.Context, id, recipientID string) error
}

type EmailService interface {
	SendWelcome(ctx context.Context, email, name, accessCode string) error
	SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amountCents int64) error
	SendOverdueReminder(ctx context.Context, email, name string, amountCents int64, dueDate time.Time) error
	SendMoveOutConfirmation(ctx context.Context, email, name string, moveOutDate time.Time) error
}
