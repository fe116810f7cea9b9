package topup

// TopUpRequest for POST /admin/users/{id}/topup and its intent endpoint.
// points applies to manual mode, amount (VND) to qr mode.
type TopUpRequest struct {
	Mode   string   `json:"mode" validate:"required,oneof=manual qr"`
	Points *int64   `json:"points" validate:"omitempty,gte=1"`
	Amount *float64 `json:"amount" validate:"omitempty,gt=0"`
}

// IntentResponse is the dry-run result: the points that would be credited
// and, in qr mode, the transfer description and QR image URL.
type IntentResponse struct {
	Mode        string  `json:"mode"`
	Points      int64   `json:"points"`
	Amount      float64 `json:"amount,omitempty"`
	Description string  `json:"description,omitempty"`
	QRURL       string  `json:"qrUrl,omitempty"`
}
