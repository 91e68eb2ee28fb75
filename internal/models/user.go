package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq" // Needed for pq.StringArray
	"gorm.io/gorm"
)

// User represents a resident authenticated through the institute's Google
// OAuth. Email is the external identity; ID is our own surrogate key.
type User struct {
	ID    string         `gorm:"primaryKey" json:"id"`
	Email string         `gorm:"uniqueIndex;not null" json:"email"`
	Name  string         `json:"name"`
	Roles pq.StringArray `gorm:"type:text[]" json:"-"` // e.g. {"student"}, {"admin"}
}

// BeforeCreate is a GORM hook called before inserting a record.
// It generates a new UUID for the user if the ID is not set yet, and
// assigns the default role.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if len(u.Roles) == 0 {
		u.Roles = pq.StringArray{"student"}
	}
	return
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}
