package service

import (
	"context"
	"fmt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

// outboxNotifier appends notification rows for later delivery by the
// dispatch job. It never returns errors to callers: a transition that
// already committed must not be disturbed by notification plumbing.
type outboxNotifier struct {
	noteRepo   repository.NotificationRepository
	userRepo   repository.UserRepository
	adminEmail string
}

func NewOutboxNotifier(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, adminEmail string) Notifier {
	return &outboxNotifier{
		noteRepo:   noteRepo,
		userRepo:   userRepo,
		adminEmail: adminEmail,
	}
}

func (n *outboxNotifier) append(ctx context.Context, rentalID int64, email, name, subject, body string) {
	if email == "" {
		return
	}
	note := &domain.Notification{
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        subject,
		Body:           body,
		RentalID:       &rentalID,
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to enqueue notification", "rental_id", rentalID, "subject", subject, "error", err)
	}
}

func (n *outboxNotifier) user(ctx context.Context, id int64) (email, name string) {
	u, err := n.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Warn("Failed to load notification recipient", "user_id", id, "error", err)
		return "", ""
	}
	return u.Email, u.Name
}

func (n *outboxNotifier) BorrowRequested(ctx context.Context, rt *domain.Rental) {
	email, name := n.user(ctx, rt.OwnerID)
	n.append(ctx, rt.ID, email, name,
		"New rental request",
		fmt.Sprintf("You have a new rental request for %s to %s. Approve or decline it from your dashboard.", rt.StartDate, rt.EndDate))
}

func (n *outboxNotifier) RentalApproved(ctx context.Context, rt *domain.Rental) {
	email, name := n.user(ctx, rt.RenterID)
	n.append(ctx, rt.ID, email, name,
		"Rental approved",
		fmt.Sprintf("Your rental request for %s to %s was approved by the owner.", rt.StartDate, rt.EndDate))
}

func (n *outboxNotifier) RentalDeclined(ctx context.Context, rt *domain.Rental, reason string) {
	email, name := n.user(ctx, rt.RenterID)
	body := "Your rental request was declined."
	if reason != "" {
		body += " Reason: " + reason
	}
	if rt.Paid() {
		body += " Your payment has been refunded in full."
	}
	n.append(ctx, rt.ID, email, name, "Rental declined", body)
}

func (n *outboxNotifier) ReturnConfirmed(ctx context.Context, rt *domain.Rental) {
	email, name := n.user(ctx, rt.RenterID)
	body := "The return of your rental has been confirmed."
	if rt.ClaimWindowEndsAt != nil {
		body += fmt.Sprintf(" Your deposit will be released after the owner's claim window ends on %s.",
			rt.ClaimWindowEndsAt.Format("2 Jan 2006"))
	}
	n.append(ctx, rt.ID, email, name, "Return confirmed", body)
}

func (n *outboxNotifier) DepositClaimed(ctx context.Context, rt *domain.Rental) {
	email, name := n.user(ctx, rt.RenterID)
	n.append(ctx, rt.ID, email, name,
		"Deposit claim filed",
		fmt.Sprintf("The owner has filed a claim against your deposit: %q. Our team will review it.", rt.DepositClaimReason))
	n.append(ctx, rt.ID, n.adminEmail, "Platform admin",
		"Deposit claim needs review",
		fmt.Sprintf("A deposit claim was filed on rental %d: %q.", rt.ID, rt.DepositClaimReason))
}

func (n *outboxNotifier) DepositRefunded(ctx context.Context, rt *domain.Rental) {
	renterEmail, renterName := n.user(ctx, rt.RenterID)
	n.append(ctx, rt.ID, renterEmail, renterName,
		"Deposit refunded",
		fmt.Sprintf("The claim on your deposit was resolved in your favour. £%.2f is on its way back to you.", float64(rt.DepositPence)/100))
	ownerEmail, ownerName := n.user(ctx, rt.OwnerID)
	n.append(ctx, rt.ID, ownerEmail, ownerName,
		"Deposit claim resolved",
		"The deposit claim you filed was resolved with a refund to the renter.")
}

func (n *outboxNotifier) DepositForfeited(ctx context.Context, rt *domain.Rental) {
	renterEmail, renterName := n.user(ctx, rt.RenterID)
	n.append(ctx, rt.ID, renterEmail, renterName,
		"Deposit forfeited",
		"The claim on your deposit was upheld and the deposit has been forfeited.")
	ownerEmail, ownerName := n.user(ctx, rt.OwnerID)
	n.append(ctx, rt.ID, ownerEmail, ownerName,
		"Deposit claim resolved",
		"The deposit claim you filed was upheld. Compensation will follow separately.")
}

func (n *outboxNotifier) DepositReleased(ctx context.Context, rt *domain.Rental) {
	email, name := n.user(ctx, rt.RenterID)
	n.append(ctx, rt.ID, email, name,
		"Deposit released",
		fmt.Sprintf("The claim window has closed with no claim. Your £%.2f deposit has been refunded.", float64(rt.DepositPence)/100))
}
