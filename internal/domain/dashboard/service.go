package dashboard

import (
	"context"
	"errors"
	"time"

	"hrdesk/internal/domain/attendance"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/evaluation"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/messaging"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/payroll"
)

type Service struct {
	Store         *Store
	Leave         *leave.Store
	Attendance    *attendance.Service
	Payroll       *payroll.Service
	Evaluations   *evaluation.Service
	Messages      *messaging.Store
	Notifications *notifications.Service
}

// KindFor picks the dashboard for an account. Checks run in a fixed
// order so an account holding several hats lands on the most
// privileged page: superuser, then HR manager, then employee, then
// finance.
func KindFor(user auth.UserContext) string {
	switch {
	case user.Superuser:
		return KindAdmin
	case user.Role == auth.RoleHRManager:
		return KindHR
	case user.Role == auth.RoleEmployee:
		return KindEmployee
	case user.Role == auth.RoleFinance:
		return KindFinance
	default:
		return KindLanding
	}
}

// View assembles the dashboard for the caller.
func (s *Service) View(ctx context.Context, user auth.UserContext, profileID string, now time.Time) (*View, error) {
	switch KindFor(user) {
	case KindAdmin:
		return s.adminView(ctx)
	case KindHR:
		return s.hrView(ctx, user.AccountID, now)
	case KindEmployee:
		if profileID == "" {
			return &View{Kind: KindLanding}, nil
		}
		return s.employeeView(ctx, user.AccountID, profileID, now)
	case KindFinance:
		return s.financeView(ctx)
	default:
		return &View{Kind: KindLanding}, nil
	}
}

func (s *Service) adminView(ctx context.Context) (*View, error) {
	accounts, err := s.Store.TotalAccounts(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.Store.TotalEmployees(ctx)
	if err != nil {
		return nil, err
	}
	managers, err := s.Store.TotalHRManagers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.Leave.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &View{Kind: KindAdmin, Admin: &AdminView{
		TotalAccounts:   accounts,
		TotalEmployees:  employees,
		TotalHRManagers: managers,
		PendingLeaves:   pending,
	}}, nil
}

func (s *Service) hrView(ctx context.Context, accountID string, now time.Time) (*View, error) {
	employees, err := s.Store.TotalEmployees(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.Leave.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	present, err := s.Store.TodayAttendance(ctx, now)
	if err != nil {
		return nil, err
	}
	avg, err := s.Evaluations.AverageScore(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.Messages.CountUnread(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &View{Kind: KindHR, HR: &HRView{
		TotalEmployees:    employees,
		PendingLeaves:     pending,
		TodayAttendance:   present,
		AverageEvaluation: avg,
		UnreadMessages:    unread,
	}}, nil
}

func (s *Service) employeeView(ctx context.Context, accountID, profileID string, now time.Time) (*View, error) {
	view := &EmployeeView{
		PendingLeaves:       []leave.Request{},
		UnreadNotifications: []notifications.Notification{},
	}

	today, err := s.Attendance.Today(ctx, profileID, now)
	if err != nil {
		return nil, err
	}
	view.Today = today

	latest, err := s.Payroll.Latest(ctx, profileID)
	if err != nil && !errors.Is(err, payroll.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		view.LatestPayroll = latest
	}

	score, err := s.Evaluations.Latest(ctx, profileID)
	if err != nil && !errors.Is(err, evaluation.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		view.LatestEvaluation = score
	}

	requests, err := s.Leave.ListByProfile(ctx, profileID, 50)
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		if req.Status == leave.StatusPending {
			view.PendingLeaves = append(view.PendingLeaves, req)
		}
	}

	unread, err := s.Notifications.Unread(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if unread != nil {
		view.UnreadNotifications = unread
	}

	return &View{Kind: KindEmployee, Employee: view}, nil
}

func (s *Service) financeView(ctx context.Context) (*View, error) {
	records, err := s.Payroll.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []payroll.Record{}
	}
	return &View{Kind: KindFinance, Finance: &FinanceView{Payroll: records}}, nil
}
