package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service pushes moderation decisions to tutors. Delivery is best
// effort: an offline tutor simply misses the push and sees the status
// on their next session list.
type Service struct {
	hub     *Hub
	loggerf func(format string, args ...interface{})
}

func NewService(hub *Hub, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{hub: hub, loggerf: loggerf}
}

func (s *Service) NotifySessionApproved(ctx context.Context, tutorEmail string, sessionID int64, title string) error {
	return s.push(tutorEmail, Event{
		ID:        uuid.NewString(),
		Type:      EventSessionApproved,
		SessionID: sessionID,
		Title:     title,
		SentAt:    time.Now().UTC(),
	})
}

func (s *Service) NotifySessionRejected(ctx context.Context, tutorEmail string, sessionID int64, title, reason string) error {
	return s.push(tutorEmail, Event{
		ID:        uuid.NewString(),
		Type:      EventSessionRejected,
		SessionID: sessionID,
		Title:     title,
		Reason:    reason,
		SentAt:    time.Now().UTC(),
	})
}

func (s *Service) push(email string, ev Event) error {
	if !s.hub.SendToUser(email, ev) {
		s.loggerf("level=info msg=notification not delivered recipient=%s event=%s session_id=%d", email, ev.Type, ev.SessionID)
	}
	return nil
}
