package model

// ClaimStatus tracks a claim through its lifecycle.
type ClaimStatus string

const (
	ClaimStatusOpen     ClaimStatus = "open"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusPaid     ClaimStatus = "paid"
	ClaimStatusRejected ClaimStatus = "rejected"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PolicyID string `json:"policy_id"`
}

type Claim struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Status      ClaimStatus `json:"status"`
}

type FraudSignal struct {
	ClaimID   string  `json:"claim_id"`
	RiskScore float64 `json:"risk_score"`
	Flagged   bool    `json:"flagged"`
	Notes     string  `json:"notes,omitempty"`
}
