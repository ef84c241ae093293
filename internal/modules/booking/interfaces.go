package booking

import (
	"context"

	"studysphere/internal/domain"
	"studysphere/internal/repository"
)

// BookingRepository defines the persistence operations for enrollments.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Exists(ctx context.Context, sessionID int64, studentEmail string) (bool, error)
	ListByStudentWithDetails(ctx context.Context, studentEmail string, limit, offset int) ([]repository.StudentBookingDetails, error)
}

// SessionReader loads the session snapshot eligibility is computed on.
type SessionReader interface {
	GetByID(ctx context.Context, id int64) (*domain.StudySession, error)
}

// PaymentInitiator starts a gateway checkout for a paid session and
// returns the URL the student is redirected to.
type PaymentInitiator interface {
	InitCheckout(ctx context.Context, sess *domain.StudySession, studentID int64, studentEmail string) (string, error)
}
