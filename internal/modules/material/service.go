package material

import (
	"context"
	"errors"
	"strings"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	materials MaterialRepository
	sessions  SessionReader
	bookings  BookingChecker
}

func NewService(materials MaterialRepository, sessions SessionReader, bookings BookingChecker) *Service {
	return &Service{
		materials: materials,
		sessions:  sessions,
		bookings:  bookings,
	}
}

// AddMaterial attaches a resource link to a session the tutor owns.
func (s *Service) AddMaterial(ctx context.Context, tutorEmail string, req AddMaterialRequest) (*domain.Material, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Link) == "" {
		return nil, ErrValidation
	}

	sess, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !strings.EqualFold(sess.TutorEmail, tutorEmail) {
		return nil, ErrForbidden
	}

	m := &domain.Material{
		SessionID:  sess.ID,
		TutorEmail: sess.TutorEmail,
		Title:      strings.TrimSpace(req.Title),
		Link:       strings.TrimSpace(req.Link),
	}
	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListForSession returns a session's materials. Admins and the owning
// tutor always see them; students only after enrolling.
func (s *Service) ListForSession(ctx context.Context, sessionID int64, email string, role domain.UserRole) ([]domain.Material, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	allowed := false
	switch role {
	case domain.RoleAdmin:
		allowed = true
	case domain.RoleTutor:
		allowed = strings.EqualFold(sess.TutorEmail, email)
	case domain.RoleStudent:
		booked, err := s.bookings.Exists(ctx, sessionID, email)
		if err != nil {
			return nil, err
		}
		allowed = booked
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return s.materials.ListBySession(ctx, sessionID)
}

func (s *Service) ListMine(ctx context.Context, tutorEmail string) ([]domain.Material, error) {
	return s.materials.ListByTutor(ctx, tutorEmail)
}

// DeleteMaterial removes a material; the repository enforces ownership
// by matching the tutor email in the delete predicate.
func (s *Service) DeleteMaterial(ctx context.Context, id int64, tutorEmail string) error {
	if err := s.materials.Delete(ctx, id, tutorEmail); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
