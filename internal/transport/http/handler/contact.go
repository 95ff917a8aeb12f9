package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contact-form-api/internal/application/contact"
	"github.com/contact-form-api/internal/domain"
)

const invalidTokenMsg = "Invalid or expired verification token. Please submit the contact form again."

// ContactHandler handles the public contact-form endpoints.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// SendEmail handles POST /api/send-email.
func (h *ContactHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("submission failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeSuccess(w, status)
}

// VerifyEmail handles GET /api/verify-email?token=...
func (h *ContactHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if err := h.svc.Verify(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, "token is required")
		case errors.Is(err, domain.ErrInvalidToken):
			writeError(w, http.StatusBadRequest, invalidTokenMsg)
		default:
			slog.Error("verification failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	writeSuccess(w, "Email verified successfully. Your messages have been delivered.")
}
