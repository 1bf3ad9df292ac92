package domain

// PremiumRequest is a pending upgrade request from a user.
type PremiumRequest struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Plan        string `json:"plan"`
	RequestedAt string `json:"requested_at,omitempty"`
	Status      string `json:"status,omitempty"`
}

// WithoutPremiumRequest drops the request belonging to userID.
func WithoutPremiumRequest(reqs []PremiumRequest, userID string) []PremiumRequest {
	out := make([]PremiumRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.UserID != userID {
			out = append(out, r)
		}
	}
	return out
}

// PremiumDecision is the payload for approving or rejecting a request.
type PremiumDecision struct {
	UserID string `json:"user_id"`
	Plan   string `json:"plan,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// DefaultRejectReason is sent when an admin rejects without a custom reason.
const DefaultRejectReason = "Admin Rejected"
