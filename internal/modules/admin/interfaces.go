package admin

import (
	"context"

	"studysphere/internal/domain"
	"studysphere/internal/modules/session"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
	DB() *gorm.DB
}

type SessionStatsReader interface {
	DB() *gorm.DB
}

type BookingStatsReader interface {
	DB() *gorm.DB
}

// SessionModerator is the slice of the session service the moderation
// endpoints delegate to.
type SessionModerator interface {
	ListPending(ctx context.Context, page, limit int) ([]domain.StudySession, int64, error)
	Approve(ctx context.Context, sessionID int64, decision session.FeeDecision) (*domain.StudySession, error)
	Reject(ctx context.Context, sessionID int64, reasonCode, feedback string) (*domain.StudySession, error)
	UpdateSession(ctx context.Context, sessionID int64, actorRole domain.UserRole, actorEmail string, req session.UpdateSessionRequest) (*domain.StudySession, error)
	DeleteSession(ctx context.Context, sessionID int64) error
}
