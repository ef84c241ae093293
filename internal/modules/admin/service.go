package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"studysphere/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	userRepo    UserRepository
	sessionRepo SessionStatsReader
	bookingRepo BookingStatsReader
}

func NewService(userRepo UserRepository, sessionRepo SessionStatsReader, bookingRepo BookingStatsReader) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		bookingRepo: bookingRepo,
	}
}

// ListUsers supports simple filters + pagination.
func (s *Service) ListUsers(ctx context.Context, filter UserListFilter, page, limit int) ([]domain.User, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := s.userRepo.DB().WithContext(ctx).Table("users")

	if strings.TrimSpace(filter.Role) != "" {
		q = q.Where("role = ?", strings.TrimSpace(filter.Role))
	}
	if strings.TrimSpace(filter.Query) != "" {
		sv := "%" + strings.ToLower(strings.TrimSpace(filter.Query)) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", sv, sv)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, int(total), nil
}

// UpdateUserRole promotes or demotes a user. An admin may not change
// their own role away from admin; someone else has to.
func (s *Service) UpdateUserRole(ctx context.Context, adminID, userID int64, role domain.UserRole) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if adminID == userID && role != domain.RoleAdmin {
		return nil, ErrSelfDemotion
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	u.Role = role
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	var totalUsers int64
	if err := s.userRepo.DB().WithContext(ctx).Table("users").Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	counts := map[domain.SessionStatus]int64{}
	var totalSessions int64
	for _, st := range []domain.SessionStatus{domain.SessionPending, domain.SessionApproved, domain.SessionRejected} {
		var n int64
		if err := s.sessionRepo.DB().WithContext(ctx).
			Table("study_sessions").
			Where("status = ?", string(st)).
			Count(&n).Error; err != nil {
			return nil, err
		}
		counts[st] = n
		totalSessions += n
	}

	var totalBookings int64
	if err := s.bookingRepo.DB().WithContext(ctx).Table("bookings").Count(&totalBookings).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var todayBookings int64
	if err := s.bookingRepo.DB().WithContext(ctx).
		Table("bookings").
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&todayBookings).Error; err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalUsers:       int(totalUsers),
		TotalSessions:    int(totalSessions),
		PendingSessions:  int(counts[domain.SessionPending]),
		ApprovedSessions: int(counts[domain.SessionApproved]),
		RejectedSessions: int(counts[domain.SessionRejected]),
		TotalBookings:    int(totalBookings),
		TodayBookings:    int(todayBookings),
	}, nil
}
