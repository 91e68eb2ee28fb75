package models

import "time"

// Session is the server-side record of a logged-in user, stored in Redis and
// keyed by an opaque session id held inside the client's cookie token.
// It is read-only for the submission pipeline.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
