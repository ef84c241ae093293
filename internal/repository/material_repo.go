package repository

import (
	"context"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) DB() *gorm.DB { return r.db }

func (r *MaterialRepository) Create(ctx context.Context, m *domain.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Material, error) {
	var out []domain.Material
	tx := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&out)
	return out, tx.Error
}

func (r *MaterialRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]domain.Material, error) {
	var out []domain.Material
	tx := r.db.WithContext(ctx).
		Where("tutor_email = ?", tutorEmail).
		Order("created_at DESC").
		Find(&out)
	return out, tx.Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id int64, tutorEmail string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND tutor_email = ?", id, tutorEmail).
		Delete(&domain.Material{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
