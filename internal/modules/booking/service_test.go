package booking

import (
	"context"
	"testing"
	"time"

	"studysphere/internal/domain"
	"studysphere/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Exists(ctx context.Context, sessionID int64, studentEmail string) (bool, error) {
	args := m.Called(ctx, sessionID, studentEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByStudentWithDetails(ctx context.Context, studentEmail string, limit, offset int) ([]repository.StudentBookingDetails, error) {
	args := m.Called(ctx, studentEmail, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StudentBookingDetails), args.Error(1)
}

type MockSessionReader struct {
	mock.Mock
}

func (m *MockSessionReader) GetByID(ctx context.Context, id int64) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

type MockPaymentInitiator struct {
	mock.Mock
}

func (m *MockPaymentInitiator) InitCheckout(ctx context.Context, sess *domain.StudySession, studentID int64, studentEmail string) (string, error) {
	args := m.Called(ctx, sess, studentID, studentEmail)
	return args.String(0), args.Error(1)
}

func openSession(fee float64) *domain.StudySession {
	now := time.Now()
	return &domain.StudySession{
		ID:                7,
		TutorEmail:        "tutor@example.com",
		Title:             "Linear Algebra Crash Course",
		Status:            domain.SessionApproved,
		RegistrationFee:   fee,
		RegistrationStart: now.Add(-time.Hour),
		RegistrationEnd:   now.Add(time.Hour),
	}
}

func TestEnroll_FreeSessionCreatesBooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sess := openSession(0)
	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.SessionID == 7 &&
			b.StudentEmail == "student@example.com" &&
			b.PaymentStatus == domain.PaymentFree
	})).Return(nil)

	svc := NewService(bookings, sessions, nil)
	result, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 42, "student@example.com", domain.RoleStudent)

	assert.NoError(t, err)
	assert.False(t, result.PaymentRequired)
	assert.NotNil(t, result.Booking)
	assert.Equal(t, domain.PaymentFree, result.Booking.PaymentStatus)
	bookings.AssertExpectations(t)
}

func TestEnroll_PaidSessionReturnsCheckoutURL(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)
	payments := new(MockPaymentInitiator)

	sess := openSession(2500)
	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)
	payments.On("InitCheckout", mock.Anything, sess, int64(42), "student@example.com").
		Return("https://gateway.example.com/pay?InvId=1", nil)

	svc := NewService(bookings, sessions, payments)
	result, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 42, "student@example.com", domain.RoleStudent)

	assert.NoError(t, err)
	assert.True(t, result.PaymentRequired)
	assert.Equal(t, "https://gateway.example.com/pay?InvId=1", result.PaymentURL)
	assert.Nil(t, result.Booking)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnroll_TutorCannotEnroll(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sessions.On("GetByID", mock.Anything, int64(7)).Return(openSession(0), nil)
	bookings.On("Exists", mock.Anything, int64(7), "tutor@example.com").Return(false, nil)

	svc := NewService(bookings, sessions, nil)
	_, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 1, "tutor@example.com", domain.RoleTutor)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEnroll_PendingSessionNotBookable(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sess := openSession(0)
	sess.Status = domain.SessionPending
	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)

	svc := NewService(bookings, sessions, nil)
	_, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 42, "student@example.com", domain.RoleStudent)

	assert.ErrorIs(t, err, ErrNotBookable)
}

func TestEnroll_WindowClosed(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sess := openSession(0)
	sess.RegistrationStart = time.Now().Add(-2 * time.Hour)
	sess.RegistrationEnd = time.Now().Add(-time.Hour)
	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)

	svc := NewService(bookings, sessions, nil)
	_, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 42, "student@example.com", domain.RoleStudent)

	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestEnroll_AlreadyBooked(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sessions.On("GetByID", mock.Anything, int64(7)).Return(openSession(0), nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(true, nil)

	svc := NewService(bookings, sessions, nil)
	_, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 42, "student@example.com", domain.RoleStudent)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestEnroll_UniqueViolationMapsToAlreadyBooked(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sessions.On("GetByID", mock.Anything, int64(7)).Return(openSession(0), nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	svc := NewService(bookings, sessions, nil)
	_, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 7}, 42, "student@example.com", domain.RoleStudent)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestEnroll_SessionNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sessions.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(bookings, sessions, nil)
	_, err := svc.Enroll(context.Background(), EnrollRequest{SessionID: 99}, 42, "student@example.com", domain.RoleStudent)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckEligibility_Eligible(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sessions.On("GetByID", mock.Anything, int64(7)).Return(openSession(0), nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)

	svc := NewService(bookings, sessions, nil)
	resp, err := svc.CheckEligibility(context.Background(), 7, "student@example.com", domain.RoleStudent)

	assert.NoError(t, err)
	assert.True(t, resp.Eligible)
	assert.Empty(t, resp.Reason)
}

func TestCheckEligibility_NotOpenedYet(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sess := openSession(0)
	sess.RegistrationStart = time.Now().Add(time.Hour)
	sess.RegistrationEnd = time.Now().Add(2 * time.Hour)
	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil)
	bookings.On("Exists", mock.Anything, int64(7), "student@example.com").Return(false, nil)

	svc := NewService(bookings, sessions, nil)
	resp, err := svc.CheckEligibility(context.Background(), 7, "student@example.com", domain.RoleStudent)

	assert.NoError(t, err)
	assert.False(t, resp.Eligible)
	assert.Equal(t, "registration has not opened yet", resp.Reason)
}

func TestCreatePaidBooking_ReplayedCallback(t *testing.T) {
	bookings := new(MockBookingRepository)
	sessions := new(MockSessionReader)

	sessions.On("GetByID", mock.Anything, int64(7)).Return(openSession(2500), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	svc := NewService(bookings, sessions, nil)
	_, err := svc.CreatePaidBooking(context.Background(), 7, 42, "student@example.com", 2500)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}
