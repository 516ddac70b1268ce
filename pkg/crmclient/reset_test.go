package crmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func resetServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "forgot")
		writeJSON(w, http.StatusAccepted, map[string]string{"message": "otp sent"})
	})
	mux.HandleFunc("POST /auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "verify")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["otp"] != "123456" || body["email"] != "asha@example.com" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid otp"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"reset_token": "rt-1"})
	})
	mux.HandleFunc("POST /auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "reset")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["reset_token"] != "rt-1" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reset token is invalid or expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestPasswordReset_HappyPath(t *testing.T) {
	srv, calls := resetServer(t)
	w := New(srv.URL).PasswordReset()
	ctx := context.Background()

	if w.Step() != StepEmailEntry {
		t.Fatalf("initial step = %s", w.Step())
	}
	if err := w.SubmitEmail(ctx, "asha@example.com"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}
	if err := w.SubmitOTP(ctx, "123456"); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}
	if err := w.SubmitPassword(ctx, "new-secret-1", "new-secret-1"); err != nil {
		t.Fatalf("SubmitPassword: %v", err)
	}
	if w.Step() != StepDone {
		t.Errorf("step = %s, want done", w.Step())
	}
	if len(*calls) != 3 {
		t.Errorf("calls = %v", *calls)
	}
}

func TestPasswordReset_WrongOTPStaysOnStep(t *testing.T) {
	srv, _ := resetServer(t)
	w := New(srv.URL).PasswordReset()
	ctx := context.Background()

	_ = w.SubmitEmail(ctx, "asha@example.com")
	err := w.SubmitOTP(ctx, "000000")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if w.Step() != StepOTPEntry {
		t.Errorf("step = %s, want otp_entry", w.Step())
	}
}

func TestPasswordReset_RejectsOutOfOrder(t *testing.T) {
	srv, calls := resetServer(t)
	w := New(srv.URL).PasswordReset()

	if err := w.SubmitOTP(context.Background(), "123456"); !errors.Is(err, ErrWrongStep) {
		t.Errorf("SubmitOTP at email entry: %v", err)
	}
	if err := w.SubmitPassword(context.Background(), "new-secret-1", "new-secret-1"); !errors.Is(err, ErrWrongStep) {
		t.Errorf("SubmitPassword at email entry: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("no request expected, got %v", *calls)
	}
}

func TestPasswordReset_LocalValidation(t *testing.T) {
	srv, calls := resetServer(t)
	w := New(srv.URL).PasswordReset()
	ctx := context.Background()

	if err := w.SubmitEmail(ctx, "asha"); err == nil {
		t.Error("malformed email accepted")
	}
	_ = w.SubmitEmail(ctx, "asha@example.com")
	if err := w.SubmitOTP(ctx, "12ab56"); err == nil {
		t.Error("non-numeric otp accepted")
	}
	_ = w.SubmitOTP(ctx, "123456")
	if err := w.SubmitPassword(ctx, "short", "short"); err == nil {
		t.Error("short password accepted")
	}
	if err := w.SubmitPassword(ctx, "new-secret-1", "new-secret-2"); err == nil {
		t.Error("mismatched confirmation accepted")
	}
	if w.Step() != StepNewPassword {
		t.Errorf("step = %s", w.Step())
	}
	if got := len(*calls); got != 2 {
		t.Errorf("calls = %v, want forgot and verify only", *calls)
	}
}

func TestPasswordReset_Back(t *testing.T) {
	srv, _ := resetServer(t)
	w := New(srv.URL).PasswordReset()
	ctx := context.Background()

	w.Back()
	if w.Step() != StepEmailEntry {
		t.Fatalf("Back at first step moved to %s", w.Step())
	}

	_ = w.SubmitEmail(ctx, "asha@example.com")
	_ = w.SubmitOTP(ctx, "123456")

	w.Back()
	if w.Step() != StepOTPEntry {
		t.Fatalf("step = %s, want otp_entry", w.Step())
	}
	w.Back()
	if w.Step() != StepEmailEntry {
		t.Fatalf("step = %s, want email_entry", w.Step())
	}
	if w.Email() != "asha@example.com" {
		t.Errorf("email = %q", w.Email())
	}
}
