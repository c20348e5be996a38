package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	var tier sql.NullString
	query := `SELECT id, email, name, email_verified, subscription_tier, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.EmailVerified, &tier, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// Rows written before the NOT NULL default, or by other services,
	// may carry NULL or '' here. Both mean "no subscription".
	u.SubscriptionTier = domain.TierNone
	if tier.Valid && tier.String != "" {
		u.SubscriptionTier = domain.SubscriptionTier(tier.String)
	}
	return u, nil
}
