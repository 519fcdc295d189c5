package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/attendance"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/evaluation"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Handler struct {
	Profiles    *profile.Service
	Attendance  *attendance.Service
	Leave       *leave.Service
	Payroll     *payroll.Service
	Evaluations *evaluation.Service
}

func NewHandler(profiles *profile.Service, att *attendance.Service, lv *leave.Service, pay *payroll.Service, ev *evaluation.Service) *Handler {
	return &Handler{Profiles: profiles, Attendance: att, Leave: lv, Payroll: pay, Evaluations: ev}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.Require(auth.IsHRManager))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{profileID}", h.handleGet)
		r.Put("/{profileID}", h.handleUpdate)
		r.Delete("/{profileID}", h.handleDelete)
		r.Get("/{profileID}/details", h.handleDetails)
	})
}

type createRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	JoinDate      string `json:"joinDate"`
	Phone         string `json:"phone"`
	Qualification string `json:"qualification"`
	Address       string `json:"address"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Profiles.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("password", payload.Password, "password is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Role != "" && !auth.ValidRole(payload.Role) {
		v.Add("role", "must be one of hr_manager, employee, finance")
	}
	if payload.Department != "" && !auth.ValidDepartment(payload.Department) {
		v.Add("department", "unknown department")
	}
	var joinDate time.Time
	if payload.JoinDate != "" {
		if parsed, ok := v.Date("joinDate", payload.JoinDate); ok {
			joinDate = parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Profiles.CreateEmployee(r.Context(), profile.CreateEmployeeInput{
		Username:      payload.Username,
		Password:      payload.Password,
		Email:         payload.Email,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Role:          payload.Role,
		Department:    payload.Department,
		JoinDate:      joinDate,
		Phone:         payload.Phone,
		Qualification: payload.Qualification,
		Address:       payload.Address,
	})
	if errors.Is(err, profile.ErrUsernameTaken) {
		api.Fail(w, http.StatusConflict, "username_taken", "username already in use", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Get(r.Context(), chi.URLParam(r, "profileID"))
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

type updateRequest struct {
	Email         *string `json:"email"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Role          *string `json:"role"`
	Department    *string `json:"department"`
	Phone         *string `json:"phone"`
	Qualification *string `json:"qualification"`
	Address       *string `json:"address"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	if payload.Role != nil && !auth.ValidRole(*payload.Role) {
		v.Add("role", "must be one of hr_manager, employee, finance")
	}
	if payload.Department != nil && *payload.Department != "" && !auth.ValidDepartment(*payload.Department) {
		v.Add("department", "unknown department")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	err := h.Profiles.UpdateEmployee(r.Context(), profileID, profile.UpdateEmployeeInput{
		Email:         payload.Email,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Role:          payload.Role,
		Department:    payload.Department,
		Phone:         payload.Phone,
		Qualification: payload.Qualification,
		Address:       payload.Address,
	})
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Profiles.Delete(r.Context(), chi.URLParam(r, "profileID"))
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// handleDetails aggregates the employee record with attendance, leave,
// payroll and evaluation history for the HR detail page.
func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	p, err := h.Profiles.Get(r.Context(), profileID)
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	attendanceHistory, err := h.Attendance.History(r.Context(), profileID, 30)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_details_failed", "failed to load attendance", middleware.GetRequestID(r.Context()))
		return
	}
	leaveHistory, err := h.Leave.Mine(r.Context(), profileID, 30)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_details_failed", "failed to load leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	payrollHistory, err := h.Payroll.History(r.Context(), profileID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_details_failed", "failed to load payroll", middleware.GetRequestID(r.Context()))
		return
	}
	evaluations, err := h.Evaluations.Mine(r.Context(), profileID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_details_failed", "failed to load evaluations", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"employee":    p,
		"attendance":  attendanceHistory,
		"leave":       leaveHistory,
		"payroll":     payrollHistory,
		"evaluations": evaluations,
	}, middleware.GetRequestID(r.Context()))
}
