package ports

import (
	"context"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// OTPStore keeps the short-lived secrets of the password-reset flow.
type OTPStore interface {
	// SaveOTP replaces any pending code for email and resets its attempt counter.
	SaveOTP(ctx context.Context, email, code string, ttl time.Duration) error
	// VerifyOTP consumes the code on a match. A mismatch counts an attempt and
	// returns domain.ErrInvalidOTP, or domain.ErrOTPAttemptsExceeded once
	// maxAttempts is reached (the code is then discarded).
	VerifyOTP(ctx context.Context, email, code string, maxAttempts int) error
	SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	// ConsumeResetToken returns the user id and deletes the token.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// MailQueue hands messages to an out-of-band mail sender.
type MailQueue interface {
	Send(ctx context.Context, msg domain.MailMessage) error
}

// AuthService covers sign-in and the forgot-password wizard.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	ChangePassword(ctx context.Context, userID, current, next string) error
}
