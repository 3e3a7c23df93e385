package model

import (
	"time"
)

// Subscription plans. Upgrades are one-way: free -> pro.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Tenant represents an isolated organization account
// This is the core of our multi-tenant architecture: every user and note
// belongs to exactly one tenant. The slug is the public handle and never
// changes after creation.
type Tenant struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug             string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	SubscriptionPlan string    `json:"subscription_plan" gorm:"type:varchar(20);not null;default:'free'"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPro reports whether the tenant is on the paid plan.
func (t *Tenant) IsPro() bool {
	return t.SubscriptionPlan == PlanPro
}
