package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contact-form-api/internal/application/contact"
	"github.com/contact-form-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockContactSvc struct{ mock.Mock }

func (m *mockContactSvc) Submit(ctx context.Context, req domain.SubmitRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockContactSvc) Verify(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// --- helpers ---

func newTestRouter(svc contact.Service) http.Handler {
	r := chi.NewRouter()
	h := NewContactHandler(svc)
	r.Post("/api/send-email", h.SendEmail)
	r.Get("/api/verify-email", h.VerifyEmail)
	r.Get("/health", NewHealthHandler().Status)
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// --- SendEmail ---

func TestSendEmail_Success(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(r domain.SubmitRequest) bool {
		return r.Email == "a@x.com" && r.Message == "hi"
	})).Return(contact.StatusCheckEmail, nil)

	payload := []byte(`{"firstName":"A","lastName":"B","email":"a@x.com","message":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, contact.StatusCheckEmail, body["message"])
	svc.AssertExpectations(t)
}

func TestSendEmail_MalformedJSON_Returns400(t *testing.T) {
	svc := &mockContactSvc{}
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewReader([]byte(`{"firstName":`)))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSendEmail_ValidationError_Returns400(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Submit", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("field 'Message' failed 'required': %w", domain.ErrBadRequest))

	payload := []byte(`{"firstName":"A","lastName":"B","email":"a@x.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Message")
}

func TestSendEmail_StoreFailure_Returns500(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Submit", mock.Anything, mock.Anything).Return("", errors.New("dynamo down"))

	payload := []byte(`{"firstName":"A","lastName":"B","email":"a@x.com","message":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	// Infrastructure details never leak to the client.
	assert.Equal(t, "internal server error", body["error"])
}

// --- VerifyEmail ---

func TestVerifyEmail_Success(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Verify", mock.Anything, "tok123").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/verify-email?token=tok123", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "verified successfully")
}

func TestVerifyEmail_MissingToken_Returns400(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Verify", mock.Anything, "").
		Return(fmt.Errorf("token is required: %w", domain.ErrBadRequest))

	req := httptest.NewRequest(http.MethodGet, "/api/verify-email", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "token is required", body["error"])
}

func TestVerifyEmail_InvalidToken_Returns400WithResubmitHint(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Verify", mock.Anything, "stale").
		Return(fmt.Errorf("token expired: %w", domain.ErrInvalidToken))

	req := httptest.NewRequest(http.MethodGet, "/api/verify-email?token=stale", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "submit the contact form again")
}

func TestVerifyEmail_InternalError_Returns500(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Verify", mock.Anything, "tok123").Return(errors.New("smtp down"))

	req := httptest.NewRequest(http.MethodGet, "/api/verify-email?token=tok123", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- Health ---

func TestHealth_ReturnsOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestRouter(&mockContactSvc{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}
