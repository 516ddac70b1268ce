package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// verifyScript compares the stored code and counts failed attempts atomically.
// Returns 0 on match, -1 when no code is pending, -2 once attempts run out,
// otherwise the number of failed attempts so far.
var verifyScript = redis.NewScript(`
local code = redis.call('GET', KEYS[1])
if not code then
	return -1
end
if code == ARGV[1] then
	redis.call('DEL', KEYS[1], KEYS[2])
	return 0
end
local n = redis.call('INCR', KEYS[2])
local ttl = redis.call('PTTL', KEYS[1])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[2], ttl)
end
if n >= tonumber(ARGV[2]) then
	redis.call('DEL', KEYS[1], KEYS[2])
	return -2
end
return n
`)

// OTPStore keeps password-reset codes and reset tokens in Redis.
// Key format:
//
//	otp:<email>            pending code
//	otp:attempts:<email>   failed verification count
//	reset:<token>          user id
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore stores codes and tokens through client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func (s *OTPStore) SaveOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, otpKey(email), code, ttl)
		p.Del(ctx, attemptsKey(email))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

func (s *OTPStore) VerifyOTP(ctx context.Context, email, code string, maxAttempts int) error {
	res, err := verifyScript.Run(ctx, s.client,
		[]string{otpKey(email), attemptsKey(email)}, code, maxAttempts,
	).Int()
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	return verifyResult(res)
}

func verifyResult(res int) error {
	switch {
	case res == 0:
		return nil
	case res == -1:
		return domain.ErrOTPExpired
	case res == -2:
		return domain.ErrOTPAttemptsExceeded
	default:
		return domain.ErrInvalidOTP
	}
}

func (s *OTPStore) SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

func (s *OTPStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func otpKey(email string) string      { return "otp:" + email }
func attemptsKey(email string) string { return "otp:attempts:" + email }
func resetKey(token string) string    { return "reset:" + token }
