package notify

import "time"

const (
	EventSessionApproved = "session_approved"
	EventSessionRejected = "session_rejected"
)

// Event is the JSON payload pushed over the websocket when an admin
// decides on a session.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	SessionID int64     `json:"session_id"`
	Title     string    `json:"title"`
	Reason    string    `json:"reason,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}
