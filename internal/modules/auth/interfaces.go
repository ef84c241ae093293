package auth

import (
	"context"

	"studysphere/internal/domain"
)

// UserRepository defines the persistence operations the auth service
// needs. Implemented by repository.UserRepository.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}
