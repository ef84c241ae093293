package repository

import (
	"context"
	"time"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type GatewayPaymentRepository struct {
	db *gorm.DB
}

func NewGatewayPaymentRepository(db *gorm.DB) *GatewayPaymentRepository {
	return &GatewayPaymentRepository{db: db}
}

func (r *GatewayPaymentRepository) DB() *gorm.DB { return r.db }

func (r *GatewayPaymentRepository) Create(ctx context.Context, p *domain.GatewayPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GatewayPaymentRepository) GetByInvID(ctx context.Context, invID int64) (*domain.GatewayPayment, error) {
	var p domain.GatewayPayment
	tx := r.db.WithContext(ctx).Where("inv_id = ?", invID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// MarkPaidIdempotent marks the payment paid unless it already is.
// Returns false when the callback was a replay.
func (r *GatewayPaymentRepository) MarkPaidIdempotent(ctx context.Context, invID int64, rawBody string, paidAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.GatewayPayment{}).
		Where("inv_id = ? AND status <> ?", invID, string(domain.GatewayPaymentPaid)).
		Updates(map[string]interface{}{
			"status":       string(domain.GatewayPaymentPaid),
			"raw_callback": rawBody,
			"paid_at":      paidAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *GatewayPaymentRepository) UpdateStatus(ctx context.Context, invID int64, status domain.GatewayPaymentStatus, rawBody, failReason string) error {
	return r.db.WithContext(ctx).
		Model(&domain.GatewayPayment{}).
		Where("inv_id = ?", invID).
		Updates(map[string]interface{}{
			"status":       string(status),
			"raw_callback": rawBody,
			"fail_reason":  failReason,
		}).Error
}
