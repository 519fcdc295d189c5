package evaluationshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/evaluation"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Handler struct {
	Service  *evaluation.Service
	Profiles *profile.Service
	Notify   *notifications.Service
}

func NewHandler(service *evaluation.Service, profiles *profile.Service, notify *notifications.Service) *Handler {
	return &Handler{Service: service, Profiles: profiles, Notify: notify}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.Require(auth.IsHRManager)).Get("/", h.handleList)
		r.With(middleware.Require(auth.IsHRManager)).Post("/", h.handleAdd)
		r.With(middleware.RequireAuth).Get("/mine", h.handleMine)
	})
}

type addRequest struct {
	ProfileID string `json:"profileId"`
	Month     string `json:"month"`
	Score     string `json:"score"`
	Remarks   string `json:"remarks"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload addRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("profileId", payload.ProfileID, "employee is required")
	v.Required("month", payload.Month, "month is required")
	month, monthErr := shared.ParseMonth(payload.Month)
	if payload.Month != "" && monthErr != nil {
		v.Add("month", "must be a month in YYYY-MM format")
	}
	score, scoreErr := decimal.NewFromString(payload.Score)
	if scoreErr != nil {
		v.Add("score", "must be a decimal number")
	} else if score.IsNegative() || score.GreaterThan(decimal.NewFromInt(10)) {
		v.Add("score", "must be between 0 and 10")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	record, err := h.Service.Add(r.Context(), evaluation.AddInput{
		ProfileID: payload.ProfileID,
		Month:     month,
		Score:     score,
		Remarks:   payload.Remarks,
	}, user.AccountID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_add_failed", "failed to add evaluation", middleware.GetRequestID(r.Context()))
		return
	}

	if p, err := h.Profiles.Get(r.Context(), record.ProfileID); err == nil {
		text := fmt.Sprintf("You received an evaluation for %s.", record.Month.Format("January 2006"))
		if err := h.Notify.NotifyTyped(r.Context(), p.AccountID, notifications.TypeEvaluation, text); err != nil {
			slog.Warn("evaluation notification failed", "recordId", record.ID, "err", err)
		}
	}

	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	records, err := h.Service.ListAll(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
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

	records, err := h.Service.Mine(r.Context(), p.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
