package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Handler struct {
	Service  *payroll.Service
	Profiles *profile.Service
	Notify   *notifications.Service
}

func NewHandler(service *payroll.Service, profiles *profile.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Profiles: profiles, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	viewers := auth.AnyOf(auth.IsHRManager, auth.IsFinance)
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.Require(viewers)).Get("/", h.handleList)
		r.With(middleware.Require(auth.IsHRManager)).Post("/", h.handleCreate)
		r.With(middleware.Require(auth.IsHRManager)).Put("/{recordID}", h.handleUpdate)
		r.With(middleware.Require(viewers)).Get("/export/csv", h.handleExportCSV)
		r.With(middleware.Require(viewers)).Get("/export/pdf", h.handleExportPDF)
		r.With(middleware.RequireAuth).Get("/mine", h.handleMine)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_list_failed", "failed to list payroll records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload payroll.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("profileId", payload.ProfileID, "employee is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	record, err := h.Service.Create(r.Context(), payload, time.Now())
	if errors.Is(err, payroll.ErrExists) {
		api.Fail(w, http.StatusConflict, "payroll_exists", "employee already has a payroll record", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_create_failed", "failed to create payroll record", middleware.GetRequestID(r.Context()))
		return
	}

	h.notifyEmployee(r, record, "A payroll record was added for you.")
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload payroll.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.Update(r.Context(), chi.URLParam(r, "recordID"), payload)
	if errors.Is(err, payroll.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_update_failed", "failed to update payroll record", middleware.GetRequestID(r.Context()))
		return
	}

	h.notifyEmployee(r, record, "Your payroll record was updated.")
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := h.Profiles.GetByAccountID(r.Context(), user.AccountID)
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "profile_missing", "no profile for this account", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_load_failed", "failed to load profile", middleware.GetRequestID(r.Context()))
		return
	}

	history, err := h.Service.History(r.Context(), p.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_list_failed", "failed to load payroll history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportCSV(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export payroll", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.csv", time.Now().Format("2006-01-02")))
	if _, err := w.Write(data); err != nil {
		slog.Warn("csv export write failed", "err", err)
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportPDF(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render payroll report", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.pdf", time.Now().Format("2006-01-02")))
	if _, err := w.Write(data); err != nil {
		slog.Warn("pdf export write failed", "err", err)
	}
}

func (h *Handler) notifyEmployee(r *http.Request, record *payroll.Record, text string) {
	p, err := h.Profiles.Get(r.Context(), record.ProfileID)
	if err != nil {
		slog.Warn("payroll notification skipped", "recordId", record.ID, "err", err)
		return
	}
	if err := h.Notify.NotifyTyped(r.Context(), p.AccountID, notifications.TypePayroll, text); err != nil {
		slog.Warn("payroll notification failed", "recordId", record.ID, "err", err)
	}
}
