package messageshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/messaging"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
)

type Handler struct {
	Service *messaging.Service
}

func NewHandler(service *messaging.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/messages", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/to-hr", h.handleSendToHR)
		r.Get("/inbox", h.handleInbox)
		r.Get("/{messageID}", h.handleOpen)
		r.Post("/{messageID}/reply", h.handleReply)
	})
}

type sendRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type replyRequest struct {
	Body string `json:"body"`
}

func (h *Handler) handleSendToHR(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload sendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	delivered, err := h.Service.SendToHR(r.Context(), user.AccountID, user.Username, messaging.SendInput{
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	switch {
	case errors.Is(err, messaging.ErrEmptySubject), errors.Is(err, messaging.ErrEmptyBody):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, messaging.ErrNoHRManagers):
		api.Fail(w, http.StatusConflict, "no_hr_managers", "no HR managers available to receive the message", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "message_send_failed", "failed to send message", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]int{"delivered": delivered}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleInbox(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	messages, err := h.Service.Inbox(r.Context(), user.AccountID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "inbox_failed", "failed to load inbox", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, messages, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	msg, err := h.Service.Open(r.Context(), chi.URLParam(r, "messageID"), user.AccountID)
	switch {
	case errors.Is(err, messaging.ErrNotFound), errors.Is(err, messaging.ErrNotRecipient):
		api.Fail(w, http.StatusNotFound, "not_found", "message not found", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "message_open_failed", "failed to open message", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, msg, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReply(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload replyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	reply, err := h.Service.Reply(r.Context(), chi.URLParam(r, "messageID"), user.AccountID, user.Username, messaging.ReplyInput{
		Body: payload.Body,
	})
	switch {
	case errors.Is(err, messaging.ErrEmptyBody):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "body is required", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, messaging.ErrNotFound), errors.Is(err, messaging.ErrNotRecipient):
		api.Fail(w, http.StatusNotFound, "not_found", "message not found", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "message_reply_failed", "failed to send reply", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, reply, middleware.GetRequestID(r.Context()))
}
