package leavehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Handler struct {
	Service  *leave.Service
	Profiles *profile.Service
	Notify   *notifications.Service
}

func NewHandler(service *leave.Service, profiles *profile.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Profiles: profiles, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/requests", h.handleSubmit)
		r.With(middleware.RequireAuth).Get("/requests/mine", h.handleMine)
		r.With(middleware.Require(auth.IsHRManager)).Get("/requests", h.handleListAll)
		r.With(middleware.Require(auth.IsHRManager)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.Require(auth.IsHRManager)).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

type submitRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) resolveProfileID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, _ := middleware.GetUser(r.Context())
	p, err := h.Profiles.GetByAccountID(r.Context(), user.AccountID)
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "profile_missing", "no profile for this account", middleware.GetRequestID(r.Context()))
		return "", false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_load_failed", "failed to load profile", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return p.ID, true
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.resolveProfileID(w, r)
	if !ok {
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	leaveType := leave.NormalizeType(payload.Type)

	v := shared.NewValidator()
	v.Required("reason", payload.Reason, "reason is required")
	v.Required("type", leaveType, "type is required")
	v.Enum("type", leaveType, leave.Types, "must be one of Sick, Annual, Emergency")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	request, err := h.Service.Submit(r.Context(), profileID, leave.SubmitInput{
		Type:      leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    payload.Reason,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_submit_failed", "failed to submit leave request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.resolveProfileID(w, r)
	if !ok {
		return
	}

	page := shared.ParsePagination(r, 30, 100)
	requests, err := h.Service.Mine(r.Context(), profileID, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	requests, err := h.Service.ListAll(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, true)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, false)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, approve bool) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	var request *leave.Request
	var err error
	if approve {
		request, err = h.Service.Approve(r.Context(), requestID, user.AccountID)
	} else {
		request, err = h.Service.Reject(r.Context(), requestID, user.AccountID)
	}
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, leave.ErrNotPending):
		api.Fail(w, http.StatusConflict, "not_pending", "leave request already decided", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to decide leave request", middleware.GetRequestID(r.Context()))
		return
	}

	h.notifyEmployee(r, request)
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) notifyEmployee(r *http.Request, request *leave.Request) {
	p, err := h.Profiles.Get(r.Context(), request.ProfileID)
	if err != nil {
		slog.Warn("leave decision notification skipped", "requestId", request.ID, "err", err)
		return
	}
	text := fmt.Sprintf("Your %s leave request (%s to %s) was %s.",
		request.Type,
		request.StartDate.Format("2006-01-02"),
		request.EndDate.Format("2006-01-02"),
		request.Status)
	if err := h.Notify.NotifyTyped(r.Context(), p.AccountID, notifications.TypeLeaveDecision, text); err != nil {
		slog.Warn("leave decision notification failed", "requestId", request.ID, "err", err)
	}
}
