package database

import "gorm.io/gorm"

// Account carries the subscription state the result gating reads.
// Authentication and billing live outside this service; the Stripe
// customer id is only stored so the webhook processor can find the row.
type Account struct {
	gorm.Model
	Email            string `json:"email" gorm:"uniqueIndex;size:320"`
	Name             string `json:"name" gorm:"size:200"`
	Subscribed       bool   `json:"subscribed"`
	StripeCustomerID string `json:"-" gorm:"size:100"`
}
