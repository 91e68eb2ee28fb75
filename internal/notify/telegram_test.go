package notify_test

import (
	"testing"

	"hosteldesk/backend/internal/models"
	"hosteldesk/backend/internal/notify"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// TestFormatComplaint verifies the message carries the id and the fields the
// maintenance desk needs to act on.
func TestFormatComplaint(t *testing.T) {
	complaint := &models.Complaint{
		Model:  gorm.Model{ID: 42},
		UserID: "user-uuid-1",
		Name:   "Arjun Mehta",
		RollNo: "ME21B042",
		RoomNo: "C-214",
		Body:   "The ceiling fan has stopped working.",
	}

	msg := notify.FormatComplaint(complaint)

	assert.Contains(t, msg, "#42")
	assert.Contains(t, msg, "Arjun Mehta")
	assert.Contains(t, msg, "ME21B042")
	assert.Contains(t, msg, "C-214")
	assert.Contains(t, msg, "The ceiling fan has stopped working.")
}
