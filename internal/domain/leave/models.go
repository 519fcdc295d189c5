package leave

import "time"

const (
	TypeSick      = "Sick"
	TypeAnnual    = "Annual"
	TypeEmergency = "Emergency"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var Types = []string{TypeSick, TypeAnnual, TypeEmergency}

type Request struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profileId"`
	Employee   string    `json:"employee,omitempty"`
	Type       string    `json:"type"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	ApproverID *string   `json:"approverId,omitempty"`
	Approver   string    `json:"approver,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SubmitInput struct {
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}
