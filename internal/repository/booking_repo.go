package repository

import (
	"context"
	"strings"
	"time"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	SessionID     int64     `gorm:"column:session_id;uniqueIndex:idx_one_booking_per_student"`
	StudentID     int64     `gorm:"column:student_id"`
	StudentEmail  string    `gorm:"column:student_email;uniqueIndex:idx_one_booking_per_student"`
	SessionTitle  string    `gorm:"column:session_title"`
	FeePaid       float64   `gorm:"column:fee_paid"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		SessionID:     m.SessionID,
		StudentID:     m.StudentID,
		StudentEmail:  m.StudentEmail,
		SessionTitle:  m.SessionTitle,
		FeePaid:       m.FeePaid,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		SessionID:     b.SessionID,
		StudentID:     b.StudentID,
		StudentEmail:  strings.ToLower(strings.TrimSpace(b.StudentEmail)),
		SessionTitle:  b.SessionTitle,
		FeePaid:       b.FeePaid,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
	}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

// Create inserts the booking. The unique index on
// (session_id, student_email) is the authority on double enrollment;
// callers inspect the returned error for a unique violation.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Exists(ctx context.Context, sessionID int64, studentEmail string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("bookings").
		Where("session_id = ? AND student_email = ?", sessionID, strings.ToLower(strings.TrimSpace(studentEmail))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("bookings").
		Where("session_id = ?", sessionID).
		Count(&cnt)
	return cnt, tx.Error
}

// StudentBookingDetails joins the session so list screens don't need a
// second fetch per row.
type StudentBookingDetails struct {
	ID            int64     `gorm:"column:id"`
	SessionID     int64     `gorm:"column:session_id"`
	SessionTitle  string    `gorm:"column:session_title"`
	TutorName     string    `gorm:"column:tutor_name"`
	ClassStart    time.Time `gorm:"column:class_start"`
	ClassEnd      time.Time `gorm:"column:class_end"`
	FeePaid       float64   `gorm:"column:fee_paid"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (r *BookingRepository) ListByStudentWithDetails(ctx context.Context, studentEmail string, limit, offset int) ([]StudentBookingDetails, error) {
	var rows []StudentBookingDetails
	q := `
SELECT b.id,
       b.session_id,
       s.title       AS session_title,
       s.tutor_name  AS tutor_name,
       s.class_start AS class_start,
       s.class_end   AS class_end,
       b.fee_paid,
       b.payment_status,
       b.created_at
FROM bookings b
JOIN study_sessions s ON s.id = b.session_id
WHERE b.student_email = ?
ORDER BY b.created_at DESC
LIMIT ? OFFSET ?
`
	tx := r.db.WithContext(ctx).Raw(q, strings.ToLower(strings.TrimSpace(studentEmail)), limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
