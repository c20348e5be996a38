package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

var userTestColumns = []string{
	"id", "email", "name", "email_verified", "subscription_tier", "created_on", "updated_on",
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(userTestColumns).
			AddRow(3, "renter@example.com", "Renter", true, "STANDARD", now, now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.TierStandard, user.SubscriptionTier)
		assert.True(t, user.EmailVerified)
	})

	t.Run("NullTierReadsAsNone", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(userTestColumns).
			AddRow(3, "renter@example.com", "Renter", true, nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.TierNone, user.SubscriptionTier)
	})

	t.Run("EmptyTierReadsAsNone", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(userTestColumns).
			AddRow(3, "renter@example.com", "Renter", true, "", now, now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.TierNone, user.SubscriptionTier)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(userTestColumns))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
