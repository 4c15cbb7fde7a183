package mailer

import (
	"strings"
	"testing"

	"github.com/overdrivepermits/permit-service/internal/shared/config"
	apperrors "github.com/overdrivepermits/permit-service/internal/shared/errors"
)

func validConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:               "smtp.example.com",
		Port:               587,
		Username:           "sender@example.com",
		Password:           "secret",
		RejectUnauthorized: true,
	}
}

func TestResolveMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.SMTPConfig)
		wantVar string
	}{
		{"missing user", func(c *config.SMTPConfig) { c.Username = "" }, "SMTP_USER"},
		{"missing pass", func(c *config.SMTPConfig) { c.Password = "" }, "SMTP_PASS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := Resolve(cfg)
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperrors.CodeConfiguration {
				t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConfiguration)
			}
			if appErr.Status != 500 {
				t.Errorf("status = %d, want 500", appErr.Status)
			}
			if !strings.Contains(appErr.Message, tt.wantVar) {
				t.Errorf("message %q does not name %s", appErr.Message, tt.wantVar)
			}
		})
	}
}

func TestResolveMissingHost(t *testing.T) {
	cfg := validConfig()
	cfg.Host = ""

	_, err := Resolve(cfg)
	if err == nil {
		t.Fatal("expected a configuration error for missing host")
	}
	if !strings.Contains(err.Error(), "SMTP_HOST") {
		t.Errorf("error %q does not name SMTP_HOST", err)
	}
}

func TestResolveGmailHostInference(t *testing.T) {
	cfg := validConfig()
	cfg.Host = ""
	cfg.Username = "someone@gmail.com"

	m, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("expected Gmail inference, got error: %v", err)
	}

	sm := m.(*SMTPMailer)
	if !sm.Gmail() {
		t.Error("expected the Gmail construction path")
	}
	if sm.host != gmailHost {
		t.Errorf("host = %s, want %s", sm.host, gmailHost)
	}
	if sm.port != gmailPort {
		t.Errorf("port = %d, want %d", sm.port, gmailPort)
	}
	if sm.secure {
		t.Error("Gmail preset uses STARTTLS, not implicit TLS")
	}
}

func TestResolveGmailByHost(t *testing.T) {
	cfg := validConfig()
	cfg.Host = "smtp.gmail.com"
	cfg.Port = 2525 // ignored by the preset

	m, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sm := m.(*SMTPMailer)
	if !sm.Gmail() {
		t.Error("expected the Gmail construction path for a gmail.com host")
	}
	if sm.port != gmailPort {
		t.Errorf("port = %d, want preset %d", sm.port, gmailPort)
	}
}

func TestResolveSecureMode(t *testing.T) {
	tests := []struct {
		name       string
		port       int
		secure     bool
		wantSecure bool
	}{
		{"starttls default", 587, false, false},
		{"implicit tls by port", 465, false, true},
		{"implicit tls by flag", 587, true, true},
		{"zero port defaults to 587", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Port = tt.port
			cfg.Secure = tt.secure

			m, err := Resolve(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sm := m.(*SMTPMailer)
			if sm.secure != tt.wantSecure {
				t.Errorf("secure = %v, want %v", sm.secure, tt.wantSecure)
			}
			if tt.port == 0 && sm.port != defaultPort {
				t.Errorf("port = %d, want default %d", sm.port, defaultPort)
			}
		})
	}
}

func TestResolveTLSVerificationToggle(t *testing.T) {
	cfg := validConfig()
	cfg.RejectUnauthorized = false

	m, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sm := m.(*SMTPMailer)
	if !sm.tlsConfig.InsecureSkipVerify {
		t.Error("expected certificate verification disabled when rejectUnauthorized is false")
	}

	cfg.RejectUnauthorized = true
	m, err = Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.(*SMTPMailer).tlsConfig.InsecureSkipVerify {
		t.Error("certificate verification must be on by default")
	}
}

func TestResolveFromDefaults(t *testing.T) {
	cfg := validConfig()

	m, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	from := m.From()
	if !strings.Contains(from, "sender@example.com") {
		t.Errorf("from %q does not fall back to the auth user", from)
	}
	if !strings.Contains(from, defaultFromName) {
		t.Errorf("from %q does not carry the default sender name", from)
	}

	cfg.FromEmail = "quotes@overdrivepermits.com"
	cfg.FromName = "Overdrive Quotes"
	m, err = Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.From(); got != "Overdrive Quotes <quotes@overdrivepermits.com>" {
		t.Errorf("from = %q, want explicit override", got)
	}
}
