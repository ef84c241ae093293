package repository

import (
	"context"
	"strings"
	"time"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description;type:text"`

	TutorID    int64  `gorm:"column:tutor_id;index"`
	TutorEmail string `gorm:"column:tutor_email;index"`
	TutorName  string `gorm:"column:tutor_name"`

	Status string `gorm:"column:status;index"`

	RegistrationStart time.Time `gorm:"column:registration_start"`
	RegistrationEnd   time.Time `gorm:"column:registration_end"`
	ClassStart        time.Time `gorm:"column:class_start"`
	ClassEnd          time.Time `gorm:"column:class_end"`
	DurationWeeks     int       `gorm:"column:duration_weeks"`

	RegistrationFee float64 `gorm:"column:registration_fee"`

	IsResubmitted     bool   `gorm:"column:is_resubmitted"`
	RejectionReason   string `gorm:"column:rejection_reason"`
	RejectionFeedback string `gorm:"column:rejection_feedback;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string { return "study_sessions" }

func toDomainSession(m sessionModel) *domain.StudySession {
	return &domain.StudySession{
		ID:                m.ID,
		Title:             m.Title,
		Description:       m.Description,
		TutorID:           m.TutorID,
		TutorEmail:        m.TutorEmail,
		TutorName:         m.TutorName,
		Status:            domain.SessionStatus(m.Status),
		RegistrationStart: m.RegistrationStart,
		RegistrationEnd:   m.RegistrationEnd,
		ClassStart:        m.ClassStart,
		ClassEnd:          m.ClassEnd,
		DurationWeeks:     m.DurationWeeks,
		RegistrationFee:   m.RegistrationFee,
		IsResubmitted:     m.IsResubmitted,
		RejectionReason:   m.RejectionReason,
		RejectionFeedback: m.RejectionFeedback,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toSessionModel(s *domain.StudySession) sessionModel {
	return sessionModel{
		ID:                s.ID,
		Title:             s.Title,
		Description:       s.Description,
		TutorID:           s.TutorID,
		TutorEmail:        s.TutorEmail,
		TutorName:         s.TutorName,
		Status:            string(s.Status),
		RegistrationStart: s.RegistrationStart,
		RegistrationEnd:   s.RegistrationEnd,
		ClassStart:        s.ClassStart,
		ClassEnd:          s.ClassEnd,
		DurationWeeks:     s.DurationWeeks,
		RegistrationFee:   s.RegistrationFee,
		IsResubmitted:     s.IsResubmitted,
		RejectionReason:   s.RejectionReason,
		RejectionFeedback: s.RejectionFeedback,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (r *SessionRepository) DB() *gorm.DB { return r.db }

func (r *SessionRepository) Create(ctx context.Context, s *domain.StudySession) error {
	m := toSessionModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSession(m)
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.StudySession, error) {
	var m sessionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSession(m), nil
}

// UpdateApproval flips a session to approved with the decided fee in
// one statement; the WHERE on status makes the transition atomic.
func (r *SessionRepository) UpdateApproval(ctx context.Context, id int64, fee float64) error {
	tx := r.db.WithContext(ctx).
		Table("study_sessions").
		Where("id = ? AND status = ?", id, string(domain.SessionPending)).
		Updates(map[string]interface{}{
			"status":           string(domain.SessionApproved),
			"registration_fee": fee,
			"updated_at":       time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) UpdateRejection(ctx context.Context, id int64, reason, feedback string) error {
	tx := r.db.WithContext(ctx).
		Table("study_sessions").
		Where("id = ? AND status = ?", id, string(domain.SessionPending)).
		Updates(map[string]interface{}{
			"status":             string(domain.SessionRejected),
			"rejection_reason":   reason,
			"rejection_feedback": feedback,
			"updated_at":         time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateResubmission puts a rejected session back in the moderation
// queue. Rejection metadata is intentionally left in place.
func (r *SessionRepository) UpdateResubmission(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Table("study_sessions").
		Where("id = ? AND status = ?", id, string(domain.SessionRejected)).
		Updates(map[string]interface{}{
			"status":         string(domain.SessionPending),
			"is_resubmitted": true,
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.StudySession) error {
	m := toSessionModel(s)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&sessionModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApprovedFilter narrows the public catalog listing.
type ApprovedFilter struct {
	Search     string
	TutorEmail string
	SortByFee  string // "asc", "desc" or empty
}

func (r *SessionRepository) ListApproved(ctx context.Context, f ApprovedFilter, limit, offset int) ([]domain.StudySession, int64, error) {
	q := r.db.WithContext(ctx).
		Table("study_sessions").
		Where("status = ?", string(domain.SessionApproved))

	if s := strings.TrimSpace(f.Search); s != "" {
		sv := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", sv, sv)
	}
	if f.TutorEmail != "" {
		q = q.Where("tutor_email = ?", f.TutorEmail)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.SortByFee {
	case "asc":
		q = q.Order("registration_fee ASC")
	case "desc":
		q = q.Order("registration_fee DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var models []sessionModel
	if err := q.Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.StudySession, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSession(m))
	}
	return out, total, nil
}

func (r *SessionRepository) ListByTutor(ctx context.Context, tutorEmail string, limit, offset int) ([]domain.StudySession, int64, error) {
	q := r.db.WithContext(ctx).
		Table("study_sessions").
		Where("tutor_email = ?", tutorEmail)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []sessionModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.StudySession, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSession(m))
	}
	return out, total, nil
}

// ListPending returns the moderation queue, oldest first so nothing
// starves at the back.
func (r *SessionRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.StudySession, int64, error) {
	q := r.db.WithContext(ctx).
		Table("study_sessions").
		Where("status = ?", string(domain.SessionPending))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []sessionModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.StudySession, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSession(m))
	}
	return out, total, nil
}
