package model

import (
	"time"
)

// Session is the server-side record of an issued token. Only a keyed hash of
// the raw token is stored; deleting the row is the logout bookkeeping. Token
// verification itself stays stateless and never consults this table.
type Session struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	TokenHash string    `json:"-" gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
