package domain

import "time"

// Material is a study resource a tutor attaches to an approved session.
// The file itself lives on the external image host; we keep the link.
type Material struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id" validate:"required"`
	TutorEmail string    `json:"tutor_email"`
	Title      string    `json:"title" validate:"required"`
	Link       string    `json:"link" validate:"required,url"`
	CreatedAt  time.Time `json:"created_at"`
}
