package postgres

import (
	"context"
	"database/sql"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (recipient_email, recipient_name, subject, body, rental_id, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	n.Status = domain.NotificationStatusPending
	n.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query,
		n.RecipientEmail, n.RecipientName, n.Subject, n.Body, n.RentalID, n.Status, n.CreatedOn,
	).Scan(&n.ID)
}

func (r *notificationRepository) ListPending(ctx context.Context, limit int) ([]domain.Notification, error) {
	query := `SELECT id, recipient_email, recipient_name, subject, body, rental_id, status, failure_reason, created_on, sent_on
	          FROM notifications WHERE status = 'PENDING' ORDER BY created_on ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientEmail, &n.RecipientName, &n.Subject, &n.Body, &n.RentalID, &n.Status, &n.FailureReason, &n.CreatedOn, &n.SentOn); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	query := `UPDATE notifications SET status = 'SENT', sent_on = $2 WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, sentAt)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStateConflict
	}
	return nil
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	query := `UPDATE notifications SET status = 'FAILED', failure_reason = $2 WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, reason)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStateConflict
	}
	return nil
}
