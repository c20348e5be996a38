package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, tool_id, renter_id, owner_id, start_date, end_date,
	rental_cost_pence, deposit_pence, stripe_payment_intent_id,
	status, deposit_status, notes, rejection_reason,
	deposit_claim_reason, deposit_admin_notes, deposit_refund_id,
	return_confirmed_at, claim_window_ends_at, deposit_claimed_at, deposit_released_at,
	created_on, updated_on`

func scanRental(row interface{ Scan(...interface{}) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var depositStatus sql.NullString
	err := row.Scan(
		&rt.ID, &rt.ToolID, &rt.RenterID, &rt.OwnerID, &rt.StartDate, &rt.EndDate,
		&rt.RentalCostPence, &rt.DepositPence, &rt.StripePaymentIntentID,
		&rt.Status, &depositStatus, &rt.Notes, &rt.RejectionReason,
		&rt.DepositClaimReason, &rt.DepositAdminNotes, &rt.DepositRefundID,
		&rt.ReturnConfirmedAt, &rt.ClaimWindowEndsAt, &rt.DepositClaimedAt, &rt.DepositReleasedAt,
		&rt.CreatedOn, &rt.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if depositStatus.Valid {
		ds := domain.DepositStatus(depositStatus.String)
		rt.DepositStatus = &ds
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (tool_id, renter_id, owner_id, start_date, end_date,
	            rental_cost_pence, deposit_pence, stripe_payment_intent_id, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		rt.ToolID, rt.RenterID, rt.OwnerID, rt.StartDate, rt.EndDate,
		rt.RentalCostPence, rt.DepositPence, rt.StripePaymentIntentID, rt.Status, rt.Notes, now, now,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) CountApprovedByRenter(ctx context.Context, renterID int64) (int, error) {
	var count int
	query := `SELECT count(*) FROM rentals WHERE renter_id = $1 AND status = 'APPROVED'`
	if err := r.db.QueryRowContext(ctx, query, renterID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// exec runs a conditional transition and maps "no row matched" to
// ErrStateConflict. Callers load the row first, so a missing id has
// already surfaced as ErrNotFound by the time a transition runs.
func (r *rentalRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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

func (r *rentalRepository) Approve(ctx context.Context, id int64) error {
	query := `UPDATE rentals SET status = 'APPROVED', updated_on = $2
	          WHERE id = $1 AND status = 'PENDING_APPROVAL'`
	return r.exec(ctx, query, id, time.Now())
}

func (r *rentalRepository) Reject(ctx context.Context, id int64, reason string) error {
	query := `UPDATE rentals SET status = 'REJECTED', rejection_reason = $2, updated_on = $3
	          WHERE id = $1 AND status = 'PENDING_APPROVAL'`
	return r.exec(ctx, query, id, reason, time.Now())
}

func (r *rentalRepository) ConfirmReturn(ctx context.Context, id int64, returnedAt, claimWindowEndsAt time.Time) error {
	query := `UPDATE rentals SET status = 'RETURNED', deposit_status = 'HELD',
	            return_confirmed_at = $2, claim_window_ends_at = $3, updated_on = $4
	          WHERE id = $1 AND status IN ('APPROVED', 'ACTIVE')`
	return r.exec(ctx, query, id, returnedAt, claimWindowEndsAt, time.Now())
}

func (r *rentalRepository) ClaimDeposit(ctx context.Context, id int64, reason string, claimedAt time.Time) error {
	query := `UPDATE rentals SET deposit_status = 'CLAIMED', deposit_claim_reason = $2,
	            deposit_claimed_at = $3, updated_on = $4
	          WHERE id = $1 AND deposit_status IN ('HELD', 'PENDING_RELEASE')`
	return r.exec(ctx, query, id, reason, claimedAt, time.Now())
}

func (r *rentalRepository) ResolveDepositRefund(ctx context.Context, id int64, refundID, notes string, releasedAt time.Time) error {
	query := `UPDATE rentals SET deposit_status = 'REFUNDED', deposit_refund_id = $2,
	            deposit_admin_notes = $3, deposit_released_at = $4, updated_on = $5
	          WHERE id = $1 AND deposit_status = 'CLAIMED'`
	return r.exec(ctx, query, id, refundID, notes, releasedAt, time.Now())
}

func (r *rentalRepository) ResolveDepositForfeit(ctx context.Context, id int64, notes string) error {
	// No released timestamp: forfeited funds stay with the platform.
	query := `UPDATE rentals SET deposit_status = 'FORFEITED', deposit_admin_notes = $2, updated_on = $3
	          WHERE id = $1 AND deposit_status = 'CLAIMED'`
	return r.exec(ctx, query, id, notes, time.Now())
}

func (r *rentalRepository) HoldDeposit(ctx context.Context, id int64, notes string) error {
	query := `UPDATE rentals SET deposit_status = 'HELD', deposit_admin_notes = $2, updated_on = $3
	          WHERE id = $1 AND deposit_status = 'PENDING_RELEASE'`
	return r.exec(ctx, query, id, notes, time.Now())
}

func (r *rentalRepository) ReleaseDeposit(ctx context.Context, id int64, refundID string, releasedAt time.Time) error {
	query := `UPDATE rentals SET deposit_status = 'RELEASED', deposit_refund_id = $2,
	            deposit_released_at = $3, updated_on = $4
	          WHERE id = $1 AND deposit_status IN ('HELD', 'PENDING_RELEASE')
	            AND claim_window_ends_at <= $3`
	return r.exec(ctx, query, id, refundID, releasedAt, time.Now())
}

func (r *rentalRepository) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = 'PENDING_APPROVAL' AND created_on < $1
	          ORDER BY created_on ASC LIMIT $2`
	return r.list(ctx, query, createdBefore, limit)
}

func (r *rentalRepository) ListReleasableDeposits(ctx context.Context, now time.Time, limit int) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = 'RETURNED' AND deposit_status IN ('HELD', 'PENDING_RELEASE')
	            AND claim_window_ends_at <= $1
	          ORDER BY claim_window_ends_at ASC LIMIT $2`
	return r.list(ctx, query, now, limit)
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
