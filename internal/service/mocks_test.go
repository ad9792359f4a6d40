package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
)

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) List(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) Save(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRoomRepo) ExistsByNumber(ctx context.Context, roomNumber, excludeID string) (bool, error) {
	args := m.Called(ctx, roomNumber, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockRoomRepo) TotalCapacity(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockRoomRepo) GetStats(ctx context.Context) (*domain.RoomStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomStats), args.Error(1)
}

// MockBoarderRepo
type MockBoarderRepo struct {
	mock.Mock
}

func (m *MockBoarderRepo) GetByID(ctx context.Context, id string) (*domain.Boarder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boarder), args.Error(1)
}
func (m *MockBoarderRepo) GetByAccessCode(ctx context.Context, code string) (*domain.Boarder, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boarder), args.Error(1)
}
func (m *MockBoarderRepo) List(ctx context.Context, filter repository.BoarderFilter) ([]domain.Boarder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Boarder), args.Error(1)
}
func (m *MockBoarderRepo) Save(ctx context.Context, boarder *domain.Boarder) error {
	args := m.Called(ctx, boarder)
	return args.Error(0)
}
func (m *MockBoarderRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBoarderRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBoarderRepo) CountActiveByRoom(ctx context.Context, roomID string) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}
func (m *MockBoarderRepo) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockBoarderRepo) CountActiveAssigned(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockBoarderRepo) GetStats(ctx context.Context) (*domain.BoarderStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoarderStats), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Save(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetStats(ctx context.Context, now time.Time) (*domain.PaymentStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStats), args.Error(1)
}
func (m *MockPaymentRepo) GetMonthlyRevenue(ctx context.Context, year int) (*domain.MonthlyRevenue, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyRevenue), args.Error(1)
}
func (m *MockPaymentRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]string), args.Error(1)
}

// MockUtilityRepo
type MockUtilityRepo struct {
	mock.Mock
}

func (m *MockUtilityRepo) GetByID(ctx context.Context, id string) (*domain.UtilityReading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilityReading), args.Error(1)
}
func (m *MockUtilityRepo) List(ctx context.Context, filter repository.UtilityFilter) ([]domain.UtilityReading, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.UtilityReading), args.Error(1)
}
func (m *MockUtilityRepo) Save(ctx context.Context, reading *domain.UtilityReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}
func (m *MockUtilityRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUtilityRepo) GetLatestByRoomAndType(ctx context.Context, roomID string, utilityType domain.UtilityType) (*domain.UtilityReading, error) {
	args := m.Called(ctx, roomID, utilityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilityReading), args.Error(1)
}
func (m *MockUtilityRepo) ListForSummary(ctx context.Context, roomID string, utilityType *domain.UtilityType, since time.Time) ([]domain.ConsumptionSummaryItem, error) {
	args := m.Called(ctx, roomID, utilityType, since)
	return args.Get(0).([]domain.ConsumptionSummaryItem), args.Error(1)
}
func (m *MockUtilityRepo) TotalCostForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUtilityRepo) GetStats(ctx context.Context) (*domain.UtilityStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilityStats), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(ctx context.Context, email, name, accessCode string) error {
	args := m.Called(ctx, email, name, accessCode)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name, receiptNumber string, amountCents int64) error {
	args := m.Called(ctx, email, name, receiptNumber, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, name string, amountCents int64, dueDate time.Time) error {
	args := m.Called(ctx, email, name, amountCents, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendMoveOutConfirmation(ctx context.Context, email, name string, moveOutDate time.Time) error {
	args := m.Called(ctx, email, name, moveOutDate)
	return args.Error(0)
}

// fakeNotifier collects dispatched events without persisting anything.
type fakeNotifier struct {
	events []domain.Event
}

func (f *fakeNotifier) Dispatch(ctx context.Context, events []domain.Event) {
	f.events = append(f.events, events...)
}
func (f *fakeNotifier) List(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int, error) {
	return nil, 0, nil
}
func (f *fakeNotifier) MarkAsRead(ctx context.Context, id, recipientID string) error {
	return nil
}
