package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func approvedSession(regStart, regEnd time.Time) *StudySession {
	return &StudySession{
		ID:                1,
		Title:             "Algebra Crash Course",
		Status:            SessionApproved,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
	}
}

func TestIsEnrollmentEligible_WindowBoundaries(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	s := approvedSession(t0, t1)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", t0.Add(-time.Second), false},
		{"exactly at start", t0, true},
		{"inside window", t0.Add(24 * time.Hour), true},
		{"just before end", t1.Add(-time.Second), true},
		{"exactly at end", t1, false},
		{"after end", t1.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsEnrollmentEligible(s, RoleStudent, tt.now, false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsEnrollmentEligible_OnlyStudents(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := approvedSession(t0, t0.AddDate(0, 0, 14))
	now := t0.Add(24 * time.Hour)

	assert.True(t, IsEnrollmentEligible(s, RoleStudent, now, false))
	assert.False(t, IsEnrollmentEligible(s, RoleTutor, now, false))
	assert.False(t, IsEnrollmentEligible(s, RoleAdmin, now, false))
	assert.False(t, IsEnrollmentEligible(s, "", now, false))
}

func TestIsEnrollmentEligible_StatusGate(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := t0.Add(24 * time.Hour)

	for _, status := range []SessionStatus{SessionPending, SessionRejected} {
		s := approvedSession(t0, t0.AddDate(0, 0, 14))
		s.Status = status
		assert.False(t, IsEnrollmentEligible(s, RoleStudent, now, false),
			"status %s must not be bookable", status)
	}
}

func TestIsEnrollmentEligible_ExistingBooking(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := approvedSession(t0, t0.AddDate(0, 0, 14))

	assert.False(t, IsEnrollmentEligible(s, RoleStudent, t0.Add(time.Hour), true))
}

func TestIsEnrollmentEligible_NilSession(t *testing.T) {
	assert.False(t, IsEnrollmentEligible(nil, RoleStudent, time.Now(), false))
}

func TestIsOngoing_SameConventionAsEligibility(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 0, 7)
	s := approvedSession(t0, t1)

	assert.True(t, s.IsOngoing(t0))
	assert.True(t, s.IsOngoing(t1.Add(-time.Minute)))
	assert.False(t, s.IsOngoing(t1))
	assert.False(t, s.IsOngoing(t0.Add(-time.Minute)))
}

func TestValidRejectionReason(t *testing.T) {
	for _, code := range []string{
		ReasonIncompleteInformation,
		ReasonScheduleConflict,
		ReasonInappropriateContent,
		ReasonDuplicateSession,
		ReasonOther,
	} {
		assert.True(t, ValidRejectionReason(code))
	}

	assert.False(t, ValidRejectionReason(""))
	assert.False(t, ValidRejectionReason("Bad Vibes"))
}
