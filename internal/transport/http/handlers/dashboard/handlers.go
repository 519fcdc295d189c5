package dashboardhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/dashboard"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
)

type Handler struct {
	Service  *dashboard.Service
	Profiles *profile.Service
}

func NewHandler(service *dashboard.Service, profiles *profile.Service) *Handler {
	return &Handler{Service: service, Profiles: profiles}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/dashboard", h.handleView)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	profileID := ""
	if p, err := h.Profiles.GetByAccountID(r.Context(), user.AccountID); err == nil {
		profileID = p.ID
	} else if !errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load profile", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.View(r.Context(), user, profileID, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}
