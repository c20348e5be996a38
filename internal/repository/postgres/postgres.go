package postgres

import (
	"database/sql"

	"toolshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ToolRepository
	repository.RentalRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ToolRepository:         NewToolRepository(db),
		RentalRepository:       NewRentalRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
