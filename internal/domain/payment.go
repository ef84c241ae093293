package domain

import "time"

type GatewayPaymentStatus string

const (
	GatewayPaymentCreated GatewayPaymentStatus = "created"
	GatewayPaymentPending GatewayPaymentStatus = "pending"
	GatewayPaymentPaid    GatewayPaymentStatus = "paid"
	GatewayPaymentFailed  GatewayPaymentStatus = "failed"
)

// GatewayPayment tracks one checkout round-trip with the payment
// gateway. A booking for a paid session is only created once the
// gateway confirms the payment via the result callback.
type GatewayPayment struct {
	ID           int64                `json:"id"`
	SessionID    int64                `json:"session_id"`
	StudentID    int64                `json:"student_id"`
	StudentEmail string               `json:"student_email"`
	OutSum       string               `json:"out_sum"`
	InvID        int64                `json:"inv_id" gorm:"uniqueIndex"`
	Description  string               `json:"description"`
	Status       GatewayPaymentStatus `json:"status"`
	Signature    string               `json:"-"`
	GatewayURL   string               `json:"gateway_url"`
	RawCallback  string               `json:"-" gorm:"type:text"`
	FailReason   string               `json:"fail_reason,omitempty"`
	PaidAt       *time.Time           `json:"paid_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}
