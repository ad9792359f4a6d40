package postgres

import (
	"database/sql"

	"boardinghouse-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RoomRepository
	repository.BoarderRepository
	repository.PaymentRepository
	repository.UtilityRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		RoomRepository:         NewRoomRepository(db),
		BoarderRepository:      NewBoarderRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		UtilityRepository:      NewUtilityRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
