package crmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ResetStep is a state of the forgot-password wizard.
type ResetStep int

const (
	StepEmailEntry ResetStep = iota
	StepOTPEntry
	StepNewPassword
	StepDone
)

func (s ResetStep) String() string {
	switch s {
	case StepEmailEntry:
		return "email_entry"
	case StepOTPEntry:
		return "otp_entry"
	case StepNewPassword:
		return "new_password"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("ResetStep(%d)", int(s))
	}
}

// ErrWrongStep is returned when a wizard action does not belong to the current step.
var ErrWrongStep = errors.New("crmclient: action not allowed at this step")

// PasswordReset walks email entry, OTP entry and new password entry in order.
// It advances only when the server accepts a step, and keeps nothing beyond
// the lifetime of the value. It is not safe for concurrent use.
type PasswordReset struct {
	c          *Client
	step       ResetStep
	email      string
	resetToken string
}

// PasswordReset starts a new wizard at StepEmailEntry.
func (c *Client) PasswordReset() *PasswordReset {
	return &PasswordReset{c: c}
}

func (w *PasswordReset) Step() ResetStep { return w.step }

// Email returns the address entered in the first step.
func (w *PasswordReset) Email() string { return w.email }

// SubmitEmail requests a one-time code for email.
func (w *PasswordReset) SubmitEmail(ctx context.Context, email string) error {
	if w.step != StepEmailEntry {
		return fmt.Errorf("%w: submit email at %s", ErrWrongStep, w.step)
	}
	form := struct {
		Email string `json:"email" validate:"required,email"`
	}{email}
	if err := Validate(form); err != nil {
		return err
	}
	if err := w.c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, form, nil); err != nil {
		return err
	}
	w.email = email
	w.step = StepOTPEntry
	return nil
}

// SubmitOTP exchanges the mailed code for a reset token.
func (w *PasswordReset) SubmitOTP(ctx context.Context, otp string) error {
	if w.step != StepOTPEntry {
		return fmt.Errorf("%w: submit otp at %s", ErrWrongStep, w.step)
	}
	form := struct {
		Email string `json:"email"`
		OTP   string `json:"otp" validate:"required,len=6,numeric"`
	}{w.email, otp}
	if err := Validate(form); err != nil {
		return err
	}
	var resp struct {
		ResetToken string `json:"reset_token"`
	}
	if err := w.c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, form, &resp); err != nil {
		return err
	}
	w.resetToken = resp.ResetToken
	w.step = StepNewPassword
	return nil
}

// SubmitPassword sets the new password; confirm must equal password.
func (w *PasswordReset) SubmitPassword(ctx context.Context, password, confirm string) error {
	if w.step != StepNewPassword {
		return fmt.Errorf("%w: submit password at %s", ErrWrongStep, w.step)
	}
	form := struct {
		ResetToken string `json:"reset_token"`
		Password   string `json:"password" validate:"required,min=8"`
		Confirm    string `json:"-"        validate:"eqfield=Password"`
	}{w.resetToken, password, confirm}
	if err := Validate(form); err != nil {
		return err
	}
	if err := w.c.do(ctx, http.MethodPost, "/auth/reset-password", nil, form, nil); err != nil {
		return err
	}
	w.resetToken = ""
	w.step = StepDone
	return nil
}

// Back moves one step backward. It is a no-op at StepEmailEntry and StepDone.
// Leaving StepNewPassword discards the reset token.
func (w *PasswordReset) Back() {
	switch w.step {
	case StepOTPEntry:
		w.step = StepEmailEntry
	case StepNewPassword:
		w.resetToken = ""
		w.step = StepOTPEntry
	}
}
