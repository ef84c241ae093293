package session

import (
	"context"
	"errors"
	"strings"

	"studysphere/internal/domain"
	"studysphere/internal/pkg/validator"
	"studysphere/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	sessions SessionRepository
	users    UserReader
	bookings BookingCounter
	notifs   NotificationSender
}

func NewService(sessions SessionRepository, users UserReader, bookings BookingCounter, notifs NotificationSender) *Service {
	return &Service{
		sessions: sessions,
		users:    users,
		bookings: bookings,
		notifs:   notifs,
	}
}

func (s *Service) CreateSession(ctx context.Context, tutorEmail string, req CreateSessionRequest) (*domain.StudySession, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrValidation
	}
	if req.RegistrationEnd.Before(req.RegistrationStart) {
		return nil, ErrValidation
	}
	if req.ClassEnd.Before(req.ClassStart) {
		return nil, ErrValidation
	}
	if req.RegistrationFee < 0 || req.DurationWeeks < 0 {
		return nil, ErrValidation
	}

	tutor, err := s.users.GetByEmail(ctx, tutorEmail)
	if err != nil {
		return nil, err
	}

	sess := &domain.StudySession{
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		TutorID:           tutor.ID,
		TutorEmail:        tutor.Email,
		TutorName:         tutor.Name,
		Status:            domain.SessionPending,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		ClassStart:        req.ClassStart,
		ClassEnd:          req.ClassEnd,
		DurationWeeks:     req.DurationWeeks,
		RegistrationFee:   req.RegistrationFee,
	}

	if fields := validator.Validate(sess); fields != nil {
		return nil, ErrValidation
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.StudySession, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *Service) ListCatalog(ctx context.Context, q CatalogQuery) ([]domain.StudySession, int64, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	f := repository.ApprovedFilter{
		Search:     q.Search,
		TutorEmail: q.Tutor,
	}
	switch q.Sort {
	case "fee_asc":
		f.SortByFee = "asc"
	case "fee_desc":
		f.SortByFee = "desc"
	}

	return s.sessions.ListApproved(ctx, f, limit, (page-1)*limit)
}

func (s *Service) ListMine(ctx context.Context, tutorEmail string, page, limit int) ([]domain.StudySession, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.sessions.ListByTutor(ctx, tutorEmail, limit, (page-1)*limit)
}

func (s *Service) ListPending(ctx context.Context, page, limit int) ([]domain.StudySession, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.sessions.ListPending(ctx, limit, (page-1)*limit)
}

// Approve transitions pending -> approved and fixes the fee per the
// admin's decision. Any other source status is an invalid transition
// and leaves the record untouched.
func (s *Service) Approve(ctx context.Context, sessionID int64, decision FeeDecision) (*domain.StudySession, error) {
	var fee float64
	switch decision.Type {
	case "free":
		fee = 0
	case "paid":
		if decision.Amount <= 0 {
			return nil, ErrValidation
		}
		fee = decision.Amount
	default:
		return nil, ErrValidation
	}

	sess, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionPending {
		return nil, ErrInvalidTransition
	}

	if err := s.sessions.UpdateApproval(ctx, sessionID, fee); err != nil {
		// A concurrent decision already moved the session out of pending.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifySessionApproved(ctx, sess.TutorEmail, sess.ID, sess.Title)
	}

	return s.GetByID(ctx, sessionID)
}

// Reject transitions pending -> rejected, storing the reason code and
// optional free-text feedback. Feedback may be empty; the reason code
// may not.
func (s *Service) Reject(ctx context.Context, sessionID int64, reasonCode, feedback string) (*domain.StudySession, error) {
	if !domain.ValidRejectionReason(strings.TrimSpace(reasonCode)) {
		return nil, ErrValidation
	}

	sess, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionPending {
		return nil, ErrInvalidTransition
	}

	if err := s.sessions.UpdateRejection(ctx, sessionID, strings.TrimSpace(reasonCode), feedback); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifySessionRejected(ctx, sess.TutorEmail, sess.ID, sess.Title, reasonCode)
	}

	return s.GetByID(ctx, sessionID)
}

// Resubmit puts a rejected session back into the moderation queue.
// Only the owning tutor may resubmit, and only from rejected. The
// rejection metadata stays readable until the next decision.
func (s *Service) Resubmit(ctx context.Context, sessionID int64, tutorEmail string) (*domain.StudySession, error) {
	sess, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(sess.TutorEmail, tutorEmail) {
		return nil, ErrForbidden
	}
	if sess.Status != domain.SessionRejected {
		return nil, ErrInvalidTransition
	}

	if err := s.sessions.UpdateResubmission(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	return s.GetByID(ctx, sessionID)
}

// UpdateSession edits session fields. Approved sessions are admin-only
// territory; pending and rejected ones may be edited by the owning
// tutor as well.
func (s *Service) UpdateSession(ctx context.Context, sessionID int64, actorRole domain.UserRole, actorEmail string, req UpdateSessionRequest) (*domain.StudySession, error) {
	sess, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	isAdmin := actorRole == domain.RoleAdmin
	isOwner := actorRole == domain.RoleTutor && strings.EqualFold(sess.TutorEmail, actorEmail)

	if sess.Status == domain.SessionApproved {
		if !isAdmin {
			return nil, ErrForbidden
		}
	} else if !isAdmin && !isOwner {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrValidation
		}
		sess.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		sess.Description = *req.Description
	}
	if req.RegistrationStart != nil {
		sess.RegistrationStart = *req.RegistrationStart
	}
	if req.RegistrationEnd != nil {
		sess.RegistrationEnd = *req.RegistrationEnd
	}
	if req.ClassStart != nil {
		sess.ClassStart = *req.ClassStart
	}
	if req.ClassEnd != nil {
		sess.ClassEnd = *req.ClassEnd
	}
	if req.DurationWeeks != nil {
		if *req.DurationWeeks < 0 {
			return nil, ErrValidation
		}
		sess.DurationWeeks = *req.DurationWeeks
	}
	if req.RegistrationFee != nil {
		if *req.RegistrationFee < 0 {
			return nil, ErrValidation
		}
		sess.RegistrationFee = *req.RegistrationFee
	}

	if sess.RegistrationEnd.Before(sess.RegistrationStart) || sess.ClassEnd.Before(sess.ClassStart) {
		return nil, ErrValidation
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession removes a session, refusing while enrollments exist so
// booked students never lose a session silently.
func (s *Service) DeleteSession(ctx context.Context, sessionID int64) error {
	if _, err := s.GetByID(ctx, sessionID); err != nil {
		return err
	}

	cnt, err := s.bookings.CountBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrHasBookings
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}
