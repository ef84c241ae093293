package payment

type CheckoutResponse struct {
	InvID      int64  `json:"inv_id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}

type SuccessCallbackResponse struct {
	Status    string `json:"status"`
	Validated bool   `json:"validated"`
}
