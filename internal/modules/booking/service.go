package booking

import (
	"context"
	"errors"
	"time"

	"studysphere/internal/domain"
	"studysphere/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	sessions SessionReader
	payments PaymentInitiator
}

func NewService(bookings BookingRepository, sessions SessionReader, payments PaymentInitiator) *Service {
	return &Service{
		bookings: bookings,
		sessions: sessions,
		payments: payments,
	}
}

// SetPaymentInitiator wires the gateway after construction. The payment
// service needs this service to record confirmed bookings, so the two
// are linked in main once both exist.
func (s *Service) SetPaymentInitiator(p PaymentInitiator) {
	s.payments = p
}

// Enroll books the student into the session when eligible. Free
// sessions get a booking immediately; paid ones are deferred to the
// payment gateway and the booking is created by the payment callback.
func (s *Service) Enroll(ctx context.Context, req EnrollRequest, studentID int64, studentEmail string, role domain.UserRole) (*EnrollResult, error) {
	sess, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exists, err := s.bookings.Exists(ctx, sess.ID, studentEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !domain.IsEnrollmentEligible(sess, role, now, exists) {
		switch {
		case role != domain.RoleStudent:
			return nil, ErrForbidden
		case sess.Status != domain.SessionApproved:
			return nil, ErrNotBookable
		case exists:
			return nil, ErrAlreadyBooked
		default:
			return nil, ErrRegistrationClosed
		}
	}

	if sess.RegistrationFee > 0 {
		if s.payments == nil {
			return nil, errors.New("payment gateway is not configured")
		}
		url, err := s.payments.InitCheckout(ctx, sess, studentID, studentEmail)
		if err != nil {
			return nil, err
		}
		return &EnrollResult{PaymentRequired: true, PaymentURL: url}, nil
	}

	b := &domain.Booking{
		SessionID:     sess.ID,
		StudentID:     studentID,
		StudentEmail:  studentEmail,
		SessionTitle:  sess.Title,
		FeePaid:       0,
		PaymentStatus: domain.PaymentFree,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		// The unique index is the authority on double enrollment; our
		// Exists check above can lose a race against a concurrent click.
		if isUniqueViolation(err) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}

	return &EnrollResult{Booking: b}, nil
}

// CreatePaidBooking records the booking after the gateway confirmed
// payment. A duplicate insert means the callback was replayed.
func (s *Service) CreatePaidBooking(ctx context.Context, sessionID, studentID int64, studentEmail string, amount float64) (*domain.Booking, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		SessionID:     sessionID,
		StudentID:     studentID,
		StudentEmail:  studentEmail,
		SessionTitle:  sess.Title,
		FeePaid:       amount,
		PaymentStatus: domain.PaymentPaid,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	return b, nil
}

// CheckEligibility recomputes the enrollment predicate for display.
// Never cached; the UI calls it per render.
func (s *Service) CheckEligibility(ctx context.Context, sessionID int64, studentEmail string, role domain.UserRole) (*EligibilityResponse, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exists, err := s.bookings.Exists(ctx, sessionID, studentEmail)
	if err != nil {
		return nil, err
	}

	resp := &EligibilityResponse{SessionID: sessionID}
	now := time.Now()
	if domain.IsEnrollmentEligible(sess, role, now, exists) {
		resp.Eligible = true
		return resp, nil
	}

	switch {
	case role != domain.RoleStudent:
		resp.Reason = "only students can enroll"
	case sess.Status != domain.SessionApproved:
		resp.Reason = "session is not approved"
	case exists:
		resp.Reason = "already enrolled"
	case now.Before(sess.RegistrationStart):
		resp.Reason = "registration has not opened yet"
	default:
		resp.Reason = "registration is closed"
	}
	return resp, nil
}

func (s *Service) MyBookings(ctx context.Context, studentEmail string, page, limit int) ([]repository.StudentBookingDetails, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByStudentWithDetails(ctx, studentEmail, limit, (page-1)*limit)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
