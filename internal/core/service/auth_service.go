package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/pkg/metrics"
)

// AuthConfig holds the token and password-reset settings.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	OTPTTL         time.Duration
	ResetTokenTTL  time.Duration
	MaxOTPAttempts int
}

func (c AuthConfig) withDefaults() AuthConfig {
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.OTPTTL <= 0 {
		c.OTPTTL = 10 * time.Minute
	}
	if c.ResetTokenTTL <= 0 {
		c.ResetTokenTTL = 15 * time.Minute
	}
	if c.MaxOTPAttempts <= 0 {
		c.MaxOTPAttempts = 5
	}
	return c
}

// AuthService implements login and the forgot-password wizard.
type AuthService struct {
	users  ports.UserRepository
	otp    ports.OTPStore
	mail   ports.MailQueue
	cfg    AuthConfig
	log    zerolog.Logger
	newOTP func() (string, error)
}

func NewAuthService(users ports.UserRepository, otp ports.OTPStore, mail ports.MailQueue, cfg AuthConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		otp:    otp,
		mail:   mail,
		cfg:    cfg.withDefaults(),
		log:    log,
		newOTP: generateOTP,
	}
}

// Login checks the credentials and returns a signed JWT. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		metrics.LoginAttemptsTotal.WithLabelValues("inactive").Inc()
		return "", nil, domain.ErrInactiveUser
	}

	token, err := s.generateToken(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// RequestPasswordReset is wizard step 1: issue an OTP and mail it.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.PasswordResetStepsTotal.WithLabelValues("request", "unknown_user").Inc()
		return err
	}
	if !user.Active {
		metrics.PasswordResetStepsTotal.WithLabelValues("request", "inactive").Inc()
		return domain.ErrInactiveUser
	}

	code, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.otp.SaveOTP(ctx, email, code, s.cfg.OTPTTL); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}

	msg := domain.MailMessage{
		To:       user.Email,
		Subject:  "Your password reset code",
		Template: domain.MailTemplateOTP,
		Data: map[string]string{
			"name":       user.Name,
			"otp":        code,
			"expires_in": s.cfg.OTPTTL.String(),
		},
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		metrics.MailsQueuedTotal.WithLabelValues(msg.Template, "error").Inc()
		return fmt.Errorf("send otp mail: %w", err)
	}
	metrics.MailsQueuedTotal.WithLabelValues(msg.Template, "ok").Inc()
	metrics.PasswordResetStepsTotal.WithLabelValues("request", "ok").Inc()

	s.log.Info().Str("user_id", user.ID).Msg("password reset otp issued")
	return nil
}

// VerifyOTP is wizard step 2: trade a valid OTP for a single-use reset token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	if err := s.otp.VerifyOTP(ctx, email, code, s.cfg.MaxOTPAttempts); err != nil {
		metrics.PasswordResetStepsTotal.WithLabelValues("verify", otpFailureReason(err)).Inc()
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.otp.SaveResetToken(ctx, token, user.ID, s.cfg.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("save reset token: %w", err)
	}
	metrics.PasswordResetStepsTotal.WithLabelValues("verify", "ok").Inc()
	return token, nil
}

// ResetPassword is wizard step 3: set the new password.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	userID, err := s.otp.ConsumeResetToken(ctx, resetToken)
	if err != nil {
		metrics.PasswordResetStepsTotal.WithLabelValues("reset", "invalid_token").Inc()
		return err
	}
	if err := s.users.SetPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	metrics.PasswordResetStepsTotal.WithLabelValues("reset", "ok").Inc()
	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

// ChangePassword updates the password of a signed-in user.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, userID, hash)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

// generateOTP returns a uniformly random 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidOTP):
		return "invalid_otp"
	case errors.Is(err, domain.ErrOTPExpired):
		return "expired"
	case errors.Is(err, domain.ErrOTPAttemptsExceeded):
		return "attempts_exceeded"
	default:
		return "error"
	}
}
