package dashboard

import (
	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/attendance"
	"hrdesk/internal/domain/evaluation"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/payroll"
)

// Kind identifies which dashboard the caller lands on.
const (
	KindAdmin    = "admin"
	KindHR       = "hr"
	KindEmployee = "employee"
	KindFinance  = "finance"
	KindLanding  = "landing"
)

type AdminView struct {
	TotalAccounts   int `json:"totalAccounts"`
	TotalEmployees  int `json:"totalEmployees"`
	TotalHRManagers int `json:"totalHrManagers"`
	PendingLeaves   int `json:"pendingLeaves"`
}

type HRView struct {
	TotalEmployees    int             `json:"totalEmployees"`
	PendingLeaves     int             `json:"pendingLeaves"`
	TodayAttendance   int             `json:"todayAttendance"`
	AverageEvaluation decimal.Decimal `json:"averageEvaluation"`
	UnreadMessages    int             `json:"unreadMessages"`
}

type EmployeeView struct {
	Today               *attendance.Record           `json:"today,omitempty"`
	LatestPayroll       *payroll.Record              `json:"latestPayroll,omitempty"`
	LatestEvaluation    *evaluation.Record           `json:"latestEvaluation,omitempty"`
	PendingLeaves       []leave.Request              `json:"pendingLeaves"`
	UnreadNotifications []notifications.Notification `json:"unreadNotifications"`
}

type FinanceView struct {
	Payroll []payroll.Record `json:"payroll"`
}

type View struct {
	Kind     string        `json:"kind"`
	Admin    *AdminView    `json:"admin,omitempty"`
	HR       *HRView       `json:"hr,omitempty"`
	Employee *EmployeeView `json:"employee,omitempty"`
	Finance  *FinanceView  `json:"finance,omitempty"`
}
