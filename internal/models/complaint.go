package models

import "gorm.io/gorm"

// Complaint statuses, set by wardens via the admin CLI.
const (
	ComplaintStatusOpen     = "open"
	ComplaintStatusResolved = "resolved"
)

// Complaint is a facility complaint accepted by the submission pipeline.
// CreatedAt (from gorm.Model) is always server time; the timestamp a client
// sends alongside the form is advisory and never persisted.
type Complaint struct {
	gorm.Model

	UserID string `gorm:"type:text;not null;index" json:"user_id"`
	Name   string `gorm:"type:text;not null" json:"name"`
	RollNo string `gorm:"type:text;not null" json:"roll_no"`
	RoomNo string `gorm:"type:text;not null" json:"room_no"`
	Body   string `gorm:"type:text;not null" json:"body"`
	Status string `gorm:"type:text;not null;default:open" json:"status"`
}
