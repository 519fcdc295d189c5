package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/attendance"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Handler struct {
	Service  *attendance.Service
	Profiles *profile.Service
}

func NewHandler(service *attendance.Service, profiles *profile.Service) *Handler {
	return &Handler{Service: service, Profiles: profiles}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/check-in", h.handleCheckIn)
		r.With(middleware.RequireAuth).Post("/check-out", h.handleCheckOut)
		r.With(middleware.RequireAuth).Get("/today", h.handleToday)
		r.With(middleware.RequireAuth).Get("/history", h.handleHistory)
		r.With(middleware.Require(auth.IsHRManager)).Get("/records", h.handleListRecords)
		r.With(middleware.Require(auth.IsHRManager)).Put("/records/{recordID}", h.handleAmend)
	})
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

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.resolveProfileID(w, r)
	if !ok {
		return
	}

	record, err := h.Service.CheckIn(r.Context(), profileID, time.Now())
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to record check-in", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.resolveProfileID(w, r)
	if !ok {
		return
	}

	record, err := h.Service.CheckOut(r.Context(), profileID, time.Now())
	switch {
	case errors.Is(err, attendance.ErrNotCheckedIn):
		api.Fail(w, http.StatusBadRequest, "not_checked_in", "no check-in recorded today", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Fail(w, http.StatusConflict, "already_checked_out", "already checked out today", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to record check-out", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.resolveProfileID(w, r)
	if !ok {
		return
	}

	record, err := h.Service.Today(r.Context(), profileID, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_load_failed", "failed to load today's attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.resolveProfileID(w, r)
	if !ok {
		return
	}

	page := shared.ParsePagination(r, 30, 100)
	records, err := h.Service.History(r.Context(), profileID, page.Limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_load_failed", "failed to load attendance history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	records, err := h.Service.ListAll(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_load_failed", "failed to list attendance records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

type amendRequest struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	var payload amendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	status := attendance.NormalizeStatus(payload.Status)

	v := shared.NewValidator()
	v.Enum("status", status, attendance.Statuses, "must be one of Present, Absent, Late")

	var checkIn, checkOut *time.Time
	if payload.CheckIn != "" {
		parsed, err := time.Parse(time.RFC3339, payload.CheckIn)
		if err != nil {
			v.Add("checkIn", "must be an RFC3339 timestamp")
		} else {
			checkIn = &parsed
		}
	}
	if payload.CheckOut != "" {
		parsed, err := time.Parse(time.RFC3339, payload.CheckOut)
		if err != nil {
			v.Add("checkOut", "must be an RFC3339 timestamp")
		} else {
			checkOut = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	record, err := h.Service.Amend(r.Context(), chi.URLParam(r, "recordID"), checkIn, checkOut, status)
	if errors.Is(err, attendance.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_amend_failed", "failed to amend attendance record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}
