package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	t := &domain.Tool{}
	query := `SELECT id, owner_id, name, description, daily_rate_pence, replacement_value_pence, status, created_on, updated_on
	          FROM tools WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.OwnerID, &t.Name, &t.Description, &t.DailyRatePence, &t.ReplacementValuePence, &t.Status, &t.CreatedOn, &t.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *toolRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int
	query := `SELECT count(*) FROM tools WHERE owner_id = $1 AND status <> 'UNAVAILABLE'`
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *toolRepository) SetStatus(ctx context.Context, id int64, status domain.ToolStatus) error {
	query := `UPDATE tools SET status = $2, updated_on = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
