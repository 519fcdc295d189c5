package profilehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
)

const maxPhotoBytes = 5 * 1024 * 1024

type Handler struct {
	Profiles   *profile.Service
	Payroll    *payroll.Service
	StorageDir string
}

func NewHandler(profiles *profile.Service, pay *payroll.Service, storageDir string) *Handler {
	return &Handler{Profiles: profiles, Payroll: pay, StorageDir: storageDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleGet)
		r.Put("/contact", h.handleUpdateContact)
		r.Post("/photo", h.handleUploadPhoto)
	})
}

func (h *Handler) resolveProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	user, _ := middleware.GetUser(r.Context())
	p, err := h.Profiles.GetByAccountID(r.Context(), user.AccountID)
	if errors.Is(err, profile.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "profile_missing", "no profile for this account", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_load_failed", "failed to load profile", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return p, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.resolveProfile(w, r)
	if !ok {
		return
	}

	history, err := h.Payroll.History(r.Context(), p.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_load_failed", "failed to load payroll history", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"profile": p,
		"payroll": history,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	p, ok := h.resolveProfile(w, r)
	if !ok {
		return
	}

	var payload profile.UpdateContactInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Profiles.UpdateContact(r.Context(), p.ID, payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "contact_update_failed", "failed to update contact details", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := h.resolveProfile(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "photo file is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "unsupported image type", middleware.GetRequestID(r.Context()))
		return
	}

	dir := filepath.Join(h.StorageDir, "photos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "photo_upload_failed", "failed to store photo", middleware.GetRequestID(r.Context()))
		return
	}
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	dest, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "photo_upload_failed", "failed to store photo", middleware.GetRequestID(r.Context()))
		return
	}
	defer dest.Close()
	if _, err := io.Copy(dest, io.LimitReader(file, maxPhotoBytes)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "photo_upload_failed", "failed to store photo", middleware.GetRequestID(r.Context()))
		return
	}

	relPath := filepath.ToSlash(filepath.Join("photos", name))
	if err := h.Profiles.SetPhoto(r.Context(), p.ID, relPath); err != nil {
		api.Fail(w, http.StatusInternalServerError, "photo_upload_failed", "failed to record photo", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"photoPath": relPath}, middleware.GetRequestID(r.Context()))
}
