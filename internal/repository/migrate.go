package repository

import (
	"studysphere/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted type.
// The table-backed models live in this package, so migration does too.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&sessionModel{},
		&bookingModel{},
		&domain.GatewayPayment{},
		&domain.Material{},
	)
}
