package payment

import (
	"context"
	"time"

	"studysphere/internal/domain"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.GatewayPayment) error
	GetByInvID(ctx context.Context, invID int64) (*domain.GatewayPayment, error)
	MarkPaidIdempotent(ctx context.Context, invID int64, rawBody string, paidAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, invID int64, status domain.GatewayPaymentStatus, rawBody, failReason string) error
}

// bookingCreator records the booking once the gateway confirms payment.
type bookingCreator interface {
	CreatePaidBooking(ctx context.Context, sessionID, studentID int64, studentEmail string, amount float64) (*domain.Booking, error)
}
