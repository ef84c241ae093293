package session

import "time"

type CreateSessionRequest struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	RegistrationStart time.Time `json:"registration_start" binding:"required"`
	RegistrationEnd   time.Time `json:"registration_end" binding:"required"`
	ClassStart        time.Time `json:"class_start" binding:"required"`
	ClassEnd          time.Time `json:"class_end" binding:"required"`
	DurationWeeks     int       `json:"duration_weeks"`
	RegistrationFee   float64   `json:"registration_fee"`
}

// FeeDecision is the admin's call at approval time: free zeroes the
// fee, paid requires a positive amount.
type FeeDecision struct {
	Type   string  `json:"type" binding:"required,oneof=free paid"`
	Amount float64 `json:"amount"`
}

type RejectSessionRequest struct {
	ReasonCode string `json:"reason_code" binding:"required"`
	Feedback   string `json:"feedback"`
}

type UpdateSessionRequest struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
	ClassStart        *time.Time `json:"class_start,omitempty"`
	ClassEnd          *time.Time `json:"class_end,omitempty"`
	DurationWeeks     *int       `json:"duration_weeks,omitempty"`
	RegistrationFee   *float64   `json:"registration_fee,omitempty"`
}

type CatalogQuery struct {
	Search string
	Tutor  string
	Sort   string // fee_asc, fee_desc or empty
	Page   int
	Limit  int
}
