package notifications

import "time"

const (
	TypeMessage       = "message"
	TypeLeaveDecision = "leave_decision"
	TypeEvaluation    = "evaluation"
	TypePayroll       = "payroll"
	TypeGeneral       = "general"
)

// Notification is an in-app alert for one account.
type Notification struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
