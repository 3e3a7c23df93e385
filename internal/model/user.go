package model

import (
	"time"
)

// Roles a user can hold within their tenant. Roles are assigned at
// provisioning time; there is no promotion flow.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a member of a single tenant. The password hash never
// leaves the server; the json tag keeps it out of every response.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TenantID     uint      `json:"tenant_id" gorm:"index;not null"`
	Email        string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	Role         string    `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	FirstName    string    `json:"first_name,omitempty" gorm:"type:varchar(100)"`
	LastName     string    `json:"last_name,omitempty" gorm:"type:varchar(100)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
