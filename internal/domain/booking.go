package domain

import "time"

type PaymentStatus string

const (
	PaymentFree   PaymentStatus = "free"
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID            int64         `json:"id"`
	SessionID     int64         `json:"session_id" validate:"required"`
	StudentID     int64         `json:"student_id" validate:"required"`
	StudentEmail  string        `json:"student_email" validate:"required,email"`
	SessionTitle  string        `json:"session_title"`
	FeePaid       float64       `json:"fee_paid"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}
