package session

import (
	"context"
	"testing"
	"time"

	"studysphere/internal/domain"
	"studysphere/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *domain.StudySession) error {
	args := m.Called(ctx, s)
	if s != nil {
		s.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id int64) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockSessionRepository) UpdateApproval(ctx context.Context, id int64, fee float64) error {
	args := m.Called(ctx, id, fee)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateRejection(ctx context.Context, id int64, reason, feedback string) error {
	args := m.Called(ctx, id, reason, feedback)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateResubmission(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *domain.StudySession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) ListApproved(ctx context.Context, f repository.ApprovedFilter, limit, offset int) ([]domain.StudySession, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]domain.StudySession), args.Get(1).(int64), args.Error(2)
}

func (m *MockSessionRepository) ListByTutor(ctx context.Context, tutorEmail string, limit, offset int) ([]domain.StudySession, int64, error) {
	args := m.Called(ctx, tutorEmail, limit, offset)
	return args.Get(0).([]domain.StudySession), args.Get(1).(int64), args.Error(2)
}

func (m *MockSessionRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.StudySession, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.StudySession), args.Get(1).(int64), args.Error(2)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBookingCounter struct {
	mock.Mock
}

func (m *MockBookingCounter) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifySessionApproved(ctx context.Context, tutorEmail string, sessionID int64, title string) error {
	args := m.Called(ctx, tutorEmail, sessionID, title)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifySessionRejected(ctx context.Context, tutorEmail string, sessionID int64, title, reason string) error {
	args := m.Called(ctx, tutorEmail, sessionID, title, reason)
	return args.Error(0)
}

func pendingSession(id int64) *domain.StudySession {
	regStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &domain.StudySession{
		ID:                id,
		Title:             "Calculus Bootcamp",
		TutorEmail:        "tutor@studysphere.app",
		TutorName:         "T. Utor",
		Status:            domain.SessionPending,
		RegistrationStart: regStart,
		RegistrationEnd:   regStart.AddDate(0, 0, 14),
		ClassStart:        regStart.AddDate(0, 0, 21),
		ClassEnd:          regStart.AddDate(0, 2, 21),
		RegistrationFee:   50,
	}
}

func TestApprove_FreeDecision(t *testing.T) {
	sessions := new(MockSessionRepository)
	notifs := new(MockNotificationSender)

	sess := pendingSession(7)
	approved := *sess
	approved.Status = domain.SessionApproved
	approved.RegistrationFee = 0

	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil).Once()
	sessions.On("UpdateApproval", mock.Anything, int64(7), 0.0).Return(nil)
	sessions.On("GetByID", mock.Anything, int64(7)).Return(&approved, nil).Once()
	notifs.On("NotifySessionApproved", mock.Anything, "tutor@studysphere.app", int64(7), "Calculus Bootcamp").Return(nil)

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), notifs)

	result, err := service.Approve(context.Background(), 7, FeeDecision{Type: "free"})

	assert.NoError(t, err)
	assert.Equal(t, domain.SessionApproved, result.Status)
	assert.Equal(t, 0.0, result.RegistrationFee)
	sessions.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestApprove_PaidDecisionSetsFee(t *testing.T) {
	sessions := new(MockSessionRepository)
	notifs := new(MockNotificationSender)

	sess := pendingSession(7)
	approved := *sess
	approved.Status = domain.SessionApproved
	approved.RegistrationFee = 120

	sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil).Once()
	sessions.On("UpdateApproval", mock.Anything, int64(7), 120.0).Return(nil)
	sessions.On("GetByID", mock.Anything, int64(7)).Return(&approved, nil).Once()
	notifs.On("NotifySessionApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), notifs)

	result, err := service.Approve(context.Background(), 7, FeeDecision{Type: "paid", Amount: 120})

	assert.NoError(t, err)
	assert.Equal(t, 120.0, result.RegistrationFee)
}

func TestApprove_PaidRequiresPositiveAmount(t *testing.T) {
	service := NewService(new(MockSessionRepository), new(MockUserReader), new(MockBookingCounter), nil)

	_, err := service.Approve(context.Background(), 7, FeeDecision{Type: "paid", Amount: 0})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestApprove_InvalidFromNonPending(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.SessionApproved, domain.SessionRejected} {
		sessions := new(MockSessionRepository)

		sess := pendingSession(7)
		sess.Status = status
		sessions.On("GetByID", mock.Anything, int64(7)).Return(sess, nil)

		service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), nil)

		_, err := service.Approve(context.Background(), 7, FeeDecision{Type: "free"})

		assert.ErrorIs(t, err, ErrInvalidTransition, "approve from %s must fail", status)
		sessions.AssertNotCalled(t, "UpdateApproval", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestReject_StoresReasonAndEmptyFeedback(t *testing.T) {
	sessions := new(MockSessionRepository)
	notifs := new(MockNotificationSender)

	sess := pendingSession(9)
	rejected := *sess
	rejected.Status = domain.SessionRejected
	rejected.RejectionReason = domain.ReasonIncompleteInformation
	rejected.RejectionFeedback = ""

	sessions.On("GetByID", mock.Anything, int64(9)).Return(sess, nil).Once()
	sessions.On("UpdateRejection", mock.Anything, int64(9), domain.ReasonIncompleteInformation, "").Return(nil)
	sessions.On("GetByID", mock.Anything, int64(9)).Return(&rejected, nil).Once()
	notifs.On("NotifySessionRejected", mock.Anything, "tutor@studysphere.app", int64(9), "Calculus Bootcamp", domain.ReasonIncompleteInformation).Return(nil)

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), notifs)

	result, err := service.Reject(context.Background(), 9, domain.ReasonIncompleteInformation, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.SessionRejected, result.Status)
	assert.Equal(t, domain.ReasonIncompleteInformation, result.RejectionReason)
	assert.Equal(t, "", result.RejectionFeedback)
	sessions.AssertExpectations(t)
}

func TestReject_RequiresKnownReasonCode(t *testing.T) {
	service := NewService(new(MockSessionRepository), new(MockUserReader), new(MockBookingCounter), nil)

	_, err := service.Reject(context.Background(), 9, "", "whatever")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Reject(context.Background(), 9, "Not A Real Reason", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReject_InvalidFromNonPending(t *testing.T) {
	sessions := new(MockSessionRepository)

	sess := pendingSession(9)
	sess.Status = domain.SessionApproved
	sessions.On("GetByID", mock.Anything, int64(9)).Return(sess, nil)

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), nil)

	_, err := service.Reject(context.Background(), 9, domain.ReasonOther, "x")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	sessions.AssertNotCalled(t, "UpdateRejection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResubmit_OwnerFromRejected(t *testing.T) {
	sessions := new(MockSessionRepository)

	sess := pendingSession(4)
	sess.Status = domain.SessionRejected
	sess.RejectionReason = domain.ReasonScheduleConflict
	sess.RejectionFeedback = "overlaps with another course"

	resubmitted := *sess
	resubmitted.Status = domain.SessionPending
	resubmitted.IsResubmitted = true

	sessions.On("GetByID", mock.Anything, int64(4)).Return(sess, nil).Once()
	sessions.On("UpdateResubmission", mock.Anything, int64(4)).Return(nil)
	sessions.On("GetByID", mock.Anything, int64(4)).Return(&resubmitted, nil).Once()

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), nil)

	result, err := service.Resubmit(context.Background(), 4, "tutor@studysphere.app")

	assert.NoError(t, err)
	assert.Equal(t, domain.SessionPending, result.Status)
	assert.True(t, result.IsResubmitted)
	// Rejection metadata stays readable after resubmission.
	assert.Equal(t, domain.ReasonScheduleConflict, result.RejectionReason)
	assert.Equal(t, "overlaps with another course", result.RejectionFeedback)
}

func TestResubmit_WrongTutorForbidden(t *testing.T) {
	sessions := new(MockSessionRepository)

	sess := pendingSession(4)
	sess.Status = domain.SessionRejected
	sessions.On("GetByID", mock.Anything, int64(4)).Return(sess, nil)

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), nil)

	_, err := service.Resubmit(context.Background(), 4, "someone-else@studysphere.app")

	assert.ErrorIs(t, err, ErrForbidden)
	sessions.AssertNotCalled(t, "UpdateResubmission", mock.Anything, mock.Anything)
}

func TestResubmit_InvalidFromNonRejected(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.SessionPending, domain.SessionApproved} {
		sessions := new(MockSessionRepository)

		sess := pendingSession(4)
		sess.Status = status
		sessions.On("GetByID", mock.Anything, int64(4)).Return(sess, nil)

		service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), nil)

		_, err := service.Resubmit(context.Background(), 4, "tutor@studysphere.app")

		assert.ErrorIs(t, err, ErrInvalidTransition, "resubmit from %s must fail", status)
	}
}

// A resubmitted session is pending again, so a second approve succeeds.
func TestResubmitThenApprove(t *testing.T) {
	sessions := new(MockSessionRepository)
	notifs := new(MockNotificationSender)

	resubmitted := pendingSession(4)
	resubmitted.IsResubmitted = true
	resubmitted.RejectionReason = domain.ReasonOther

	approved := *resubmitted
	approved.Status = domain.SessionApproved
	approved.RegistrationFee = 0

	sessions.On("GetByID", mock.Anything, int64(4)).Return(resubmitted, nil).Once()
	sessions.On("UpdateApproval", mock.Anything, int64(4), 0.0).Return(nil)
	sessions.On("GetByID", mock.Anything, int64(4)).Return(&approved, nil).Once()
	notifs.On("NotifySessionApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := NewService(sessions, new(MockUserReader), new(MockBookingCounter), notifs)

	result, err := service.Approve(context.Background(), 4, FeeDecision{Type: "free"})

	assert.NoError(t, err)
	assert.Equal(t, domain.SessionApproved, result.Status)
}

func TestCreateSession_InvalidWindows(t *testing.T) {
	service := NewService(new(MockSessionRepository), new(MockUserReader), new(MockBookingCounter), nil)

	regStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	req := CreateSessionRequest{
		Title:             "Backwards Window",
		RegistrationStart: regStart,
		RegistrationEnd:   regStart.AddDate(0, 0, -1),
		ClassStart:        regStart,
		ClassEnd:          regStart.AddDate(0, 1, 0),
	}

	_, err := service.CreateSession(context.Background(), "tutor@studysphere.app", req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateSession_Success(t *testing.T) {
	sessions := new(MockSessionRepository)
	users := new(MockUserReader)

	users.On("GetByEmail", mock.Anything, "tutor@studysphere.app").Return(&domain.User{
		ID:    3,
		Email: "tutor@studysphere.app",
		Name:  "T. Utor",
		Role:  domain.RoleTutor,
	}, nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(sessions, users, new(MockBookingCounter), nil)

	regStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	req := CreateSessionRequest{
		Title:             "Linear Algebra",
		RegistrationStart: regStart,
		RegistrationEnd:   regStart.AddDate(0, 0, 10),
		ClassStart:        regStart.AddDate(0, 0, 14),
		ClassEnd:          regStart.AddDate(0, 2, 14),
		DurationWeeks:     8,
		RegistrationFee:   40,
	}

	sess, err := service.CreateSession(context.Background(), "tutor@studysphere.app", req)

	assert.NoError(t, err)
	assert.Equal(t, domain.SessionPending, sess.Status)
	assert.False(t, sess.IsResubmitted)
	assert.Equal(t, int64(3), sess.TutorID)
	assert.Equal(t, "T. Utor", sess.TutorName)
}

func TestDeleteSession_BlockedByBookings(t *testing.T) {
	sessions := new(MockSessionRepository)
	bookings := new(MockBookingCounter)

	sessions.On("GetByID", mock.Anything, int64(11)).Return(pendingSession(11), nil)
	bookings.On("CountBySession", mock.Anything, int64(11)).Return(int64(3), nil)

	service := NewService(sessions, new(MockUserReader), bookings, nil)

	err := service.DeleteSession(context.Background(), 11)

	assert.ErrorIs(t, err, ErrHasBookings)
	sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteSession_Success(t *testing.T) {
	sessions := new(MockSessionRepository)
	bookings := new(MockBookingCounter)

	sessions.On("GetByID", mock.Anything, int64(11)).Return(pendingSession(11), nil)
	bookings.On("CountBySession", mock.Anything, int64(11)).Return(int64(0), nil)
	sessions.On("Delete", mock.Anything, int64(11)).Return(nil)

	service := NewService(sessions, new(MockUserReader), bookings, nil)

	err := service.DeleteSession(context.Background(), 11)

	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}
