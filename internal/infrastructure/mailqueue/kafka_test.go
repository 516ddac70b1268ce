package mailqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

func TestEncode(t *testing.T) {
	msg := domain.MailMessage{
		To:       "asha@example.com",
		Subject:  "Your code",
		Template: domain.MailTemplateOTP,
		Data:     map[string]string{"otp": "123456"},
	}

	m, err := encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(m.Key) != msg.To {
		t.Errorf("key = %q, want recipient", m.Key)
	}
	if len(m.Headers) != 1 || string(m.Headers[0].Value) != domain.MailTemplateOTP {
		t.Errorf("headers = %v, want template header", m.Headers)
	}

	var got domain.MailMessage
	if err := json.Unmarshal(m.Value, &got); err != nil {
		t.Fatalf("value is not JSON: %v", err)
	}
	if got.Data["otp"] != "123456" {
		t.Errorf("data lost in encoding: %v", got.Data)
	}
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	if _, err := NewKafkaPublisher(nil, "mail"); err == nil {
		t.Fatal("expected error without brokers")
	}
}

func TestLogMailer_DoesNotLogTemplateData(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	err := m.Send(context.Background(), domain.MailMessage{
		To:       "asha@example.com",
		Template: domain.MailTemplateOTP,
		Data:     map[string]string{"otp": "987654"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "asha@example.com") {
		t.Errorf("recipient missing from log: %s", out)
	}
	if strings.Contains(out, "987654") {
		t.Errorf("otp leaked into log: %s", out)
	}
}
