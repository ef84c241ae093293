package auth

import (
	"context"
	"testing"

	"studysphere/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, email, role string) (string, error) {
	return "test-token", nil
}

func TestRegister_Student(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && u.Role == domain.RoleStudent && u.PasswordHash != ""
	})).Return(nil)

	svc := NewService(users, stubJWT{})
	result, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New Student",
		Email:    "New@Example.com",
		Password: "secret123",
		Role:     "student",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-token", result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	svc := NewService(users, stubJWT{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     "tutor",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	users := new(MockUserRepository)

	svc := NewService(users, stubJWT{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "secret123",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "student@example.com").Return(&domain.User{
		ID:           42,
		Email:        "student@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
	}, nil)

	svc := NewService(users, stubJWT{})
	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "student@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "student@example.com").Return(&domain.User{
		Email:        "student@example.com",
		PasswordHash: string(hash),
	}, nil)

	svc := NewService(users, stubJWT{})
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "student@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, stubJWT{})
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLookupRole_OwnEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "student@example.com").Return(&domain.User{
		Email: "student@example.com",
		Role:  domain.RoleStudent,
		Name:  "A Student",
	}, nil)

	svc := NewService(users, stubJWT{})
	resp, err := svc.LookupRole(context.Background(), "Student@Example.com", "student@example.com", domain.RoleStudent)

	assert.NoError(t, err)
	assert.Equal(t, "student", resp.Role)
}

func TestLookupRole_OtherEmailRequiresAdmin(t *testing.T) {
	users := new(MockUserRepository)

	svc := NewService(users, stubJWT{})
	_, err := svc.LookupRole(context.Background(), "other@example.com", "student@example.com", domain.RoleStudent)

	assert.ErrorIs(t, err, ErrForbidden)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLookupRole_AdminMayLookupAnyone(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "tutor@example.com").Return(&domain.User{
		Email: "tutor@example.com",
		Role:  domain.RoleTutor,
	}, nil)

	svc := NewService(users, stubJWT{})
	resp, err := svc.LookupRole(context.Background(), "tutor@example.com", "admin@example.com", domain.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, "tutor", resp.Role)
}
