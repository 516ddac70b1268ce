package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// minPasswordLength matches the dashboard's password form rule.
const minPasswordLength = 8

func newID() string { return uuid.NewString() }

func utcNow() time.Time { return time.Now().UTC() }

// stampNew assigns a fresh id and both timestamps.
func stampNew(m *domain.Meta, now time.Time) {
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domain.Invalid("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// resolveRef turns a not-found lookup into an invalid-reference error on field.
func resolveRef(err error, field string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.InvalidReference(field)
	}
	return err
}
