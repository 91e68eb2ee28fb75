// Package complaint provides the core logic for admitting facility
// complaints: structural field validation, the admission pipeline, and the
// uniform result it produces.
package complaint

import (
	"fmt"
	"strings"

	"hosteldesk/backend/internal/config"
)

// Submission is the transient form input for one attempt. Timestamp is the
// client's advisory value and is never persisted; the stored record always
// carries server time.
type Submission struct {
	Name      string
	RollNo    string
	RoomNo    string
	Body      string
	Timestamp string
}

// Validate checks presence of the required fields and the minimum word count.
// It runs no I/O; the returned error message is safe to show to the client.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(s.RollNo) == "" {
		return fmt.Errorf("roll number is required")
	}
	if strings.TrimSpace(s.RoomNo) == "" {
		return fmt.Errorf("room number is required")
	}
	body := strings.TrimSpace(s.Body)
	if body == "" {
		return fmt.Errorf("complaint body is required")
	}
	// Strictly greater than 9: a 9-word body is rejected, 10 words pass.
	if CountWords(body) < config.MinComplaintWords {
		return fmt.Errorf("Complaint must contain at least %d words", config.MinComplaintWords)
	}
	return nil
}

// CountWords splits on runs of whitespace, dropping empty tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
