package authhandler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/platform/db"
	"hrdesk/internal/platform/requestctx"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
)

const sessionTTL = 8 * time.Hour

type Handler struct {
	DB     db.Querier
	Secret string
}

func NewHandler(q db.Querier, secret string) *Handler {
	return &Handler{DB: q, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)
	r.Post("/auth/refresh", h.HandleRefresh)
	r.With(middleware.RequireAuth).Post("/auth/mfa/setup", h.HandleMFASetup)
	r.With(middleware.RequireAuth).Post("/auth/mfa/enable", h.HandleMFAEnable)
	r.With(middleware.RequireAuth).Post("/auth/mfa/disable", h.HandleMFADisable)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	var id, hash, role string
	var superuser, mfaEnabled bool
	var mfaSecret *string
	err := h.DB.QueryRow(r.Context(), `
    SELECT a.id, a.password_hash, a.is_superuser, a.mfa_enabled, a.mfa_secret,
           COALESCE(p.role, '')
    FROM accounts a
    LEFT JOIN profiles p ON p.account_id = a.id
    WHERE a.username = $1 AND a.is_active = TRUE
  `, payload.Username).Scan(&id, &hash, &superuser, &mfaEnabled, &mfaSecret, &role)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	if mfaEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", requestctx.GetRequestID(r.Context()))
			return
		}
		if mfaSecret == nil || *mfaSecret == "" || !totp.Validate(payload.MFACode, *mfaSecret) {
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", requestctx.GetRequestID(r.Context()))
			return
		}
	}

	sessionID, err := generateSessionToken()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}
	if _, err := h.DB.Exec(r.Context(), `
    INSERT INTO sessions (account_id, refresh_token, expires_at)
    VALUES ($1,$2,$3)
  `, id, auth.HashToken(sessionID), time.Now().Add(sessionTTL)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		AccountID: id,
		Username:  payload.Username,
		Role:      role,
		Superuser: superuser,
		SessionID: sessionID,
	}, sessionTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	if _, err := h.DB.Exec(r.Context(), "UPDATE accounts SET last_login = now() WHERE id = $1", id); err != nil {
		slog.Warn("update last_login failed", "accountId", id, "err", err)
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":        id,
			"username":  payload.Username,
			"role":      role,
			"superuser": superuser,
		},
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.GetUser(r.Context()); ok && user.SessionID != "" {
		if _, err := h.DB.Exec(r.Context(),
			"UPDATE sessions SET revoked_at = now() WHERE account_id = $1 AND refresh_token = $2",
			user.AccountID, auth.HashToken(user.SessionID)); err != nil {
			slog.Warn("logout session revoke failed", "accountId", user.AccountID, "err", err)
		}
	}
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if authHeader == "" || len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	claims, err := auth.ParseToken(h.Secret, parts[1])
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}

	var count int
	if err := h.DB.QueryRow(r.Context(), `
    SELECT COUNT(1)
    FROM sessions
    WHERE account_id = $1 AND refresh_token = $2 AND expires_at > now() AND revoked_at IS NULL
  `, claims.AccountID, auth.HashToken(claims.SessionID)).Scan(&count); err != nil || count == 0 {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "session expired", requestctx.GetRequestID(r.Context()))
		return
	}

	newSessionID, err := generateSessionToken()
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to rotate session", requestctx.GetRequestID(r.Context()))
		return
	}
	if _, err := h.DB.Exec(r.Context(), `
    UPDATE sessions
    SET refresh_token = $1, expires_at = $2, rotated_at = now()
    WHERE account_id = $3 AND refresh_token = $4
  `, auth.HashToken(newSessionID), time.Now().Add(sessionTTL), claims.AccountID, auth.HashToken(claims.SessionID)); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to rotate session", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Role:      claims.Role,
		Superuser: claims.Superuser,
		SessionID: newSessionID,
	}, sessionTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"token": token}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "HRDesk",
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to generate mfa secret", requestctx.GetRequestID(r.Context()))
		return
	}
	if _, err := h.DB.Exec(r.Context(),
		"UPDATE accounts SET mfa_secret = $1, mfa_enabled = FALSE WHERE id = $2",
		key.Secret(), user.AccountID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to store mfa secret", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"secret": key.Secret(), "otpauthUrl": key.URL()}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	h.setMFAEnabled(w, r, true)
}

func (h *Handler) HandleMFADisable(w http.ResponseWriter, r *http.Request) {
	h.setMFAEnabled(w, r, false)
}

func (h *Handler) setMFAEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	user, _ := middleware.GetUser(r.Context())

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	var secret *string
	if err := h.DB.QueryRow(r.Context(), "SELECT mfa_secret FROM accounts WHERE id = $1", user.AccountID).Scan(&secret); err != nil || secret == nil || *secret == "" {
		api.Fail(w, http.StatusBadRequest, "mfa_missing", "mfa setup required", requestctx.GetRequestID(r.Context()))
		return
	}
	if !totp.Validate(payload.Code, *secret) {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", requestctx.GetRequestID(r.Context()))
		return
	}

	if _, err := h.DB.Exec(r.Context(), "UPDATE accounts SET mfa_enabled = $1 WHERE id = $2", enabled, user.AccountID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_update_failed", "failed to update mfa", requestctx.GetRequestID(r.Context()))
		return
	}
	status := "disabled"
	if enabled {
		status = "enabled"
	}
	api.Success(w, map[string]string{"status": status}, requestctx.GetRequestID(r.Context()))
}

func generateSessionToken() (string, error) {
	buff := make([]byte, 32)
	if _, err := rand.Read(buff); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buff), nil
}
