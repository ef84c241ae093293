package material

import (
	"context"

	"studysphere/internal/domain"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *domain.Material) error
	ListBySession(ctx context.Context, sessionID int64) ([]domain.Material, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]domain.Material, error)
	Delete(ctx context.Context, id int64, tutorEmail string) error
}

type SessionReader interface {
	GetByID(ctx context.Context, id int64) (*domain.StudySession, error)
}

// BookingChecker tells whether a student is enrolled; enrollment is
// what grants students access to a session's materials.
type BookingChecker interface {
	Exists(ctx context.Context, sessionID int64, studentEmail string) (bool, error)
}
