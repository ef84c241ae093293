package booking

import "studysphere/internal/domain"

type EnrollRequest struct {
	SessionID int64 `json:"session_id" binding:"required"`
}

// EnrollResult is the outcome of an enrollment attempt. For a paid
// session no booking exists yet; the caller is sent to the gateway and
// the booking row appears once the payment callback confirms.
type EnrollResult struct {
	Booking         *domain.Booking `json:"booking,omitempty"`
	PaymentRequired bool            `json:"payment_required"`
	PaymentURL      string          `json:"payment_url,omitempty"`
}

type EligibilityResponse struct {
	SessionID int64  `json:"session_id"`
	Eligible  bool   `json:"eligible"`
	Reason    string `json:"reason,omitempty"`
}
