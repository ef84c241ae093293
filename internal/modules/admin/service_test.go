package admin

import (
	"context"
	"errors"
	"testing"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type mockUserRepo struct {
	users           map[int64]*domain.User
	updateRoleCalls int
	lastRole        domain.UserRole
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error {
	m.updateRoleCalls++
	m.lastRole = role
	return nil
}

func (m *mockUserRepo) DB() *gorm.DB { return nil }

func TestUpdateUserRole_Promote(t *testing.T) {
	repo := &mockUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Email: "tutor@example.com", Role: domain.RoleStudent, PasswordHash: "hash"},
	}}
	svc := NewService(repo, nil, nil)

	u, err := svc.UpdateUserRole(context.Background(), 1, 5, domain.RoleTutor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != domain.RoleTutor {
		t.Fatalf("expected tutor role, got %s", u.Role)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must never be returned")
	}
	if repo.updateRoleCalls != 1 || repo.lastRole != domain.RoleTutor {
		t.Fatalf("expected one UpdateRole call with tutor")
	}
}

func TestUpdateUserRole_SelfDemotionBlocked(t *testing.T) {
	repo := &mockUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
	}}
	svc := NewService(repo, nil, nil)

	_, err := svc.UpdateUserRole(context.Background(), 1, 1, domain.RoleStudent)
	if !errors.Is(err, ErrSelfDemotion) {
		t.Fatalf("expected ErrSelfDemotion, got %v", err)
	}
	if repo.updateRoleCalls != 0 {
		t.Fatalf("expected no role update")
	}
}

func TestUpdateUserRole_SelfAdminNoop(t *testing.T) {
	repo := &mockUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
	}}
	svc := NewService(repo, nil, nil)

	u, err := svc.UpdateUserRole(context.Background(), 1, 1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("keeping own admin role must be allowed, got %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", u.Role)
	}
}

func TestUpdateUserRole_UnknownRole(t *testing.T) {
	svc := NewService(&mockUserRepo{}, nil, nil)

	_, err := svc.UpdateUserRole(context.Background(), 1, 5, domain.UserRole("superuser"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateUserRole_UserNotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{users: map[int64]*domain.User{}}, nil, nil)

	_, err := svc.UpdateUserRole(context.Background(), 1, 99, domain.RoleTutor)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
