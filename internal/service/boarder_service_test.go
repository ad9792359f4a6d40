package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/service"
)

func testBoarder(t *testing.T) *domain.Boarder {
	t.Helper()
	boarder, err := domain.NewBoarder("Maria", "Santos", "maria@example.com", "0917", "", "", time.Now().AddDate(0, -1, 0))
	assert.NoError(t, err)
	boarder.DrainEvents()
	return boarder
}

func newBoarderService(roomRepo *MockRoomRepo, boarderRepo *MockBoarderRepo, emailSvc *MockEmailService, notifier *fakeNotifier) service.BoarderService {
	return service.NewBoarderService(boarderRepo, roomRepo, new(MockPaymentRepo), emailSvc, notifier)
}

func TestCreateBoarder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success sends welcome email with access code", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		emailSvc := new(MockEmailService)
		notifier := &fakeNotifier{}
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, emailSvc, notifier)

		boarderRepo.On("ExistsByEmail", ctx, "maria@example.com", "").Return(false, nil)
		boarderRepo.On("Save", ctx, mock.AnythingOfType("*domain.Boarder")).Return(nil)
		emailSvc.On("SendWelcome", ctx, "maria@example.com", "Maria Santos", mock.AnythingOfType("string")).Return(nil)

		boarder, err := svc.CreateBoarder(ctx, service.CreateBoarderCommand{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "Maria@Example.com",
			MoveInDate: time.Now().AddDate(0, -1, 0),
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, boarder.AccessCode)
		assert.Len(t, notifier.events, 1)
		assert.Equal(t, domain.EventBoarderCreated, notifier.events[0].Name)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarderRepo.On("ExistsByEmail", ctx, "maria@example.com", "").Return(true, nil)

		_, err := svc.CreateBoarder(ctx, service.CreateBoarderCommand{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "maria@example.com",
			MoveInDate: time.Now().AddDate(0, -1, 0),
		})

		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
		boarderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Email failure does not fail creation", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		emailSvc := new(MockEmailService)
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, emailSvc, &fakeNotifier{})

		boarderRepo.On("ExistsByEmail", ctx, "maria@example.com", "").Return(false, nil)
		boarderRepo.On("Save", ctx, mock.AnythingOfType("*domain.Boarder")).Return(nil)
		emailSvc.On("SendWelcome", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.CreateBoarder(ctx, service.CreateBoarderCommand{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "maria@example.com",
			MoveInDate: time.Now().AddDate(0, -1, 0),
		})
		assert.NoError(t, err)
	})
}

func TestUpdateBoarderEmailUniqueness(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeping own email is not a conflict", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		boarderRepo.On("ExistsByEmail", ctx, "maria@example.com", boarder.ID).Return(false, nil)
		boarderRepo.On("Save", ctx, boarder).Return(nil)

		updated, err := svc.UpdateBoarder(ctx, boarder.ID, service.UpdateBoarderCommand{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "maria@example.com",
			MoveInDate: boarder.MoveInDate,
		})
		assert.NoError(t, err)
		assert.Equal(t, "maria@example.com", updated.Email)
	})

	t.Run("Another boarder's email conflicts", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		boarderRepo.On("ExistsByEmail", ctx, "taken@example.com", boarder.ID).Return(true, nil)

		_, err := svc.UpdateBoarder(ctx, boarder.ID, service.UpdateBoarderCommand{
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "taken@example.com",
			MoveInDate: boarder.MoveInDate,
		})

		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})
}

func TestAssignRoomEligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("Room stays available while beds remain", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		notifier := &fakeNotifier{}
		svc := newBoarderService(roomRepo, boarderRepo, new(MockEmailService), notifier)

		boarder := testBoarder(t)
		room := testRoom(t)

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		roomRepo.On("GetByID", ctx, room.ID).Return(room, nil)
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(1, nil).Once()
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(2, nil).Once()
		boarderRepo.On("Save", ctx, boarder).Return(nil)

		assigned, err := svc.AssignRoom(ctx, boarder.ID, room.ID)
		assert.NoError(t, err)
		assert.Equal(t, room.ID, *assigned.RoomID)
		assert.Equal(t, domain.RoomStatusAvailable, room.Status)
		roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Len(t, notifier.events, 1)
		assert.Equal(t, domain.EventRoomAssigned, notifier.events[0].Name)
	})

	t.Run("Filling the last bed marks the room occupied", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		notifier := &fakeNotifier{}
		svc := newBoarderService(roomRepo, boarderRepo, new(MockEmailService), notifier)

		boarder := testBoarder(t)
		room := testRoom(t)

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		roomRepo.On("GetByID", ctx, room.ID).Return(room, nil)
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(room.Capacity-1, nil).Once()
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(room.Capacity, nil).Once()
		boarderRepo.On("Save", ctx, boarder).Return(nil)
		roomRepo.On("Save", ctx, room).Return(nil)

		assigned, err := svc.AssignRoom(ctx, boarder.ID, room.ID)
		assert.NoError(t, err)
		assert.Equal(t, room.ID, *assigned.RoomID)
		assert.Equal(t, domain.RoomStatusOccupied, room.Status)
		assert.Len(t, notifier.events, 1)
		assert.Equal(t, domain.EventRoomAssigned, notifier.events[0].Name)
	})

	t.Run("Room under maintenance", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(roomRepo, boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		room := testRoom(t)
		room.MarkAsMaintenance()
		room.DrainEvents()

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		roomRepo.On("GetByID", ctx, room.ID).Return(room, nil)

		_, err := svc.AssignRoom(ctx, boarder.ID, room.ID)

		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
		assert.Nil(t, boarder.RoomID)
	})

	t.Run("Room at capacity", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(roomRepo, boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		room := testRoom(t)

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		roomRepo.On("GetByID", ctx, room.ID).Return(room, nil)
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(room.Capacity, nil)

		_, err := svc.AssignRoom(ctx, boarder.ID, room.ID)

		var conflictErr *domain.ConflictError
		assert.ErrorAs(t, err, &conflictErr)
		boarderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Inactive boarder", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(roomRepo, boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		boarder.Deactivate(nil)
		boarder.DrainEvents()
		room := testRoom(t)

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		roomRepo.On("GetByID", ctx, room.ID).Return(room, nil)
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(0, nil)

		_, err := svc.AssignRoom(ctx, boarder.ID, room.ID)

		var transitionErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestDeactivateBoarder(t *testing.T) {
	ctx := context.Background()

	t.Run("Vacates room and confirms move-out", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		boarderRepo := new(MockBoarderRepo)
		paymentRepo := new(MockPaymentRepo)
		emailSvc := new(MockEmailService)
		notifier := &fakeNotifier{}
		svc := service.NewBoarderService(boarderRepo, roomRepo, paymentRepo, emailSvc, notifier)

		boarder := testBoarder(t)
		room := testRoom(t)
		assert.NoError(t, boarder.AssignRoom(room.ID))
		boarder.DrainEvents()

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		boarderRepo.On("Save", ctx, boarder).Return(nil)
		paymentRepo.On("List", ctx, repository.PaymentFilter{BoarderID: boarder.ID}).Return([]domain.Payment{}, nil)
		roomRepo.On("GetByID", ctx, room.ID).Return(room, nil)
		boarderRepo.On("CountActiveByRoom", ctx, room.ID).Return(0, nil)
		emailSvc.On("SendMoveOutConfirmation", ctx, boarder.Email, "Maria Santos", mock.AnythingOfType("time.Time")).Return(nil)

		deactivated, err := svc.DeactivateBoarder(ctx, boarder.ID, nil)
		assert.NoError(t, err)
		assert.False(t, deactivated.IsActive)
		assert.Nil(t, deactivated.RoomID)
		assert.Len(t, notifier.events, 2)
		assert.Equal(t, domain.EventRoomVacated, notifier.events[0].Name)
		assert.Equal(t, domain.EventBoarderDeactivated, notifier.events[1].Name)
	})

	t.Run("Unsettled payments do not block deactivation", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		paymentRepo := new(MockPaymentRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewBoarderService(boarderRepo, new(MockRoomRepo), paymentRepo, emailSvc, &fakeNotifier{})

		boarder := testBoarder(t)
		pending := testPayment(t)
		pending.BoarderID = boarder.ID

		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		boarderRepo.On("Save", ctx, boarder).Return(nil)
		paymentRepo.On("List", ctx, repository.PaymentFilter{BoarderID: boarder.ID}).Return([]domain.Payment{*pending}, nil)
		emailSvc.On("SendMoveOutConfirmation", ctx, boarder.Email, "Maria Santos", mock.AnythingOfType("time.Time")).Return(nil)

		deactivated, err := svc.DeactivateBoarder(ctx, boarder.ID, nil)
		assert.NoError(t, err)
		assert.False(t, deactivated.IsActive)
		paymentRepo.AssertExpectations(t)
	})
}

func TestDeleteBoarder(t *testing.T) {
	ctx := context.Background()

	t.Run("Active boarder cannot be deleted", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)

		err := svc.DeleteBoarder(ctx, boarder.ID)

		var transitionErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
		boarderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Inactive boarder deletes", func(t *testing.T) {
		boarderRepo := new(MockBoarderRepo)
		svc := newBoarderService(new(MockRoomRepo), boarderRepo, new(MockEmailService), &fakeNotifier{})

		boarder := testBoarder(t)
		boarder.Deactivate(nil)
		boarder.DrainEvents()
		boarderRepo.On("GetByID", ctx, boarder.ID).Return(boarder, nil)
		boarderRepo.On("Delete", ctx, boarder.ID).Return(nil)

		assert.NoError(t, svc.DeleteBoarder(ctx, boarder.ID))
		boarderRepo.AssertExpectations(t)
	})
}
