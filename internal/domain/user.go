package domain

import "time"

type User struct {
	ID               int64            `json:"id"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	EmailVerified    bool             `json:"email_verified"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	CreatedOn        time.Time        `json:"created_on"`
	UpdatedOn        time.Time        `json:"updated_on"`
}
