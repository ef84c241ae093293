package domain

import "time"

type SessionStatus string

const (
	SessionPending  SessionStatus = "pending"
	SessionApproved SessionStatus = "approved"
	SessionRejected SessionStatus = "rejected"
)

// Rejection reason codes an admin can pick from. "Other" requires the
// admin to explain in the free-text feedback.
const (
	ReasonIncompleteInformation = "Incomplete Information"
	ReasonScheduleConflict      = "Schedule Conflict"
	ReasonInappropriateContent  = "Inappropriate Content"
	ReasonDuplicateSession      = "Duplicate Session"
	ReasonOther                 = "Other"
)

func ValidRejectionReason(code string) bool {
	switch code {
	case ReasonIncompleteInformation, ReasonScheduleConflict,
		ReasonInappropriateContent, ReasonDuplicateSession, ReasonOther:
		return true
	}
	return false
}

type StudySession struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" gorm:"type:text"`

	TutorID    int64  `json:"tutor_id"`
	TutorEmail string `json:"tutor_email"`
	TutorName  string `json:"tutor_name"`

	Status SessionStatus `json:"status"`

	RegistrationStart time.Time `json:"registration_start" validate:"required"`
	RegistrationEnd   time.Time `json:"registration_end" validate:"required"`
	ClassStart        time.Time `json:"class_start" validate:"required"`
	ClassEnd          time.Time `json:"class_end" validate:"required"`
	DurationWeeks     int       `json:"duration_weeks" validate:"gte=0"`

	RegistrationFee float64 `json:"registration_fee" validate:"gte=0"`

	IsResubmitted bool `json:"is_resubmitted"`

	// Set on rejection, kept through resubmission so the tutor can still
	// see why the previous version was turned down. Overwritten by the
	// next admin decision.
	RejectionReason   string `json:"rejection_reason,omitempty"`
	RejectionFeedback string `json:"rejection_feedback,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOngoing reports whether the registration window is open at now.
// The window is [start, end): the start instant counts as open, the end
// instant counts as closed.
func (s *StudySession) IsOngoing(now time.Time) bool {
	return !now.Before(s.RegistrationStart) && now.Before(s.RegistrationEnd)
}

// IsEnrollmentEligible is the derived enrollment predicate: only a
// student, only for an approved session, only inside the registration
// window, and only once. Pure; recomputed on every call, never cached.
func IsEnrollmentEligible(s *StudySession, role UserRole, now time.Time, alreadyBooked bool) bool {
	if s == nil || s.Status != SessionApproved {
		return false
	}
	if role != RoleStudent {
		return false
	}
	if alreadyBooked {
		return false
	}
	return s.IsOngoing(now)
}
