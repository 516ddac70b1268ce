package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

func runErrorHandler(t *testing.T, method string, err error) (*httptest.ResponseRecorder, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	h := NewHTTPErrorHandler(zerolog.New(&logs))

	e := echo.New()
	req := httptest.NewRequest(method, "/v1/things", nil)
	rec := httptest.NewRecorder()
	h(err, e.NewContext(req, rec))
	return rec, &logs
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.NotFound("inquiry"), http.StatusNotFound},
		{domain.Conflict("user email"), http.StatusConflict},
		{fmt.Errorf("delete role: %w", domain.ErrRoleInUse), http.StatusConflict},
		{domain.ErrInvalidReference, http.StatusUnprocessableEntity},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInactiveUser, http.StatusForbidden},
		{domain.ErrProtectedRole, http.StatusConflict},
		{domain.ErrInvalidOTP, http.StatusBadRequest},
		{domain.ErrOTPAttemptsExceeded, http.StatusTooManyRequests},
		{domain.ErrResetTokenInvalid, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec, logs := runErrorHandler(t, http.MethodGet, tt.err)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tt.err.Error() {
				t.Errorf("message = %q, want %q", resp.Error, tt.err.Error())
			}
			if logs.Len() != 0 {
				t.Errorf("domain errors must not be logged: %s", logs.String())
			}
		})
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, _ := runErrorHandler(t, http.MethodGet, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"invalid payload"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	rec, logs := runErrorHandler(t, http.MethodGet, errors.New("mongo: connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "connection reset by peer") {
		t.Errorf("cause not logged: %s", logs.String())
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := runErrorHandler(t, http.MethodHead, domain.NotFound("brand"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD body = %q", rec.Body.String())
	}
}
