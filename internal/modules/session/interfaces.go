package session

import (
	"context"

	"studysphere/internal/domain"
	"studysphere/internal/repository"
)

// SessionRepository defines the persistence operations the lifecycle
// service needs. The Update* transition methods are conditional on the
// current status so a concurrent decision loses cleanly.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, id int64) (*domain.StudySession, error)
	UpdateApproval(ctx context.Context, id int64, fee float64) error
	UpdateRejection(ctx context.Context, id int64, reason, feedback string) error
	UpdateResubmission(ctx context.Context, id int64) error
	Update(ctx context.Context, s *domain.StudySession) error
	Delete(ctx context.Context, id int64) error
	ListApproved(ctx context.Context, f repository.ApprovedFilter, limit, offset int) ([]domain.StudySession, int64, error)
	ListByTutor(ctx context.Context, tutorEmail string, limit, offset int) ([]domain.StudySession, int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]domain.StudySession, int64, error)
}

// UserReader resolves the owning tutor at creation time so the
// denormalized tutor fields come from the user store, not the token.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// BookingCounter guards deletion of sessions that already have
// enrollments.
type BookingCounter interface {
	CountBySession(ctx context.Context, sessionID int64) (int64, error)
}

// NotificationSender pushes moderation decisions to the owning tutor.
// Best effort; a failed notification never fails the transition.
type NotificationSender interface {
	NotifySessionApproved(ctx context.Context, tutorEmail string, sessionID int64, title string) error
	NotifySessionRejected(ctx context.Context, tutorEmail string, sessionID int64, title, reason string) error
}
