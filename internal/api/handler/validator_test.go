package handler

import (
	"strings"
	"testing"
)

type contactForm struct {
	Email  string `json:"email"  validate:"required,email"`
	Mobile string `json:"mobile" validate:"required,phone10"`
}

func TestValidator_Phone10(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		mobile string
		ok     bool
	}{
		{"9876543210", true},
		{"0000000000", true},
		{"987654321", false},
		{"98765432101", false},
		{"+919876543", false},
		{"98765 4321", false},
	}
	for _, tt := range tests {
		err := v.Validate(&contactForm{Email: "a@example.com", Mobile: tt.mobile})
		if (err == nil) != tt.ok {
			t.Errorf("mobile %q: err = %v, want ok=%v", tt.mobile, err, tt.ok)
		}
		if err != nil && !strings.Contains(err.Error(), "mobile must be exactly 10 digits") {
			t.Errorf("message = %q", err.Error())
		}
	}
}

func TestValidator_MessagesUseJSONNames(t *testing.T) {
	err := NewValidator().Validate(&contactForm{Email: "broken", Mobile: ""})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"email must be a valid email", "mobile is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("%q missing %q", msg, want)
		}
	}
}

func TestValidator_PasswordMin(t *testing.T) {
	err := NewValidator().Validate(&resetPasswordRequest{ResetToken: "t", Password: "short"})
	if err == nil || !strings.Contains(err.Error(), "password must be at least 8 characters") {
		t.Errorf("err = %v", err)
	}
}
