package service

import (
	"context"
	"errors"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overdrivepermits/permit-service/internal/domain"
	"github.com/overdrivepermits/permit-service/internal/mailer"
	"github.com/overdrivepermits/permit-service/internal/shared/config"
	apperrors "github.com/overdrivepermits/permit-service/internal/shared/errors"
	"github.com/overdrivepermits/permit-service/internal/shared/logger"
)

// fakeMailer records sends and fails on demand, one error per call.
type fakeMailer struct {
	verifyErr error
	sendErrs  []error
	sent      []*mailer.Message
}

func (f *fakeMailer) Send(ctx context.Context, msg *mailer.Message) error {
	f.sent = append(f.sent, msg)
	if len(f.sendErrs) > 0 {
		err := f.sendErrs[0]
		f.sendErrs = f.sendErrs[1:]
		return err
	}
	return nil
}

func (f *fakeMailer) Verify(ctx context.Context) error { return f.verifyErr }

func (f *fakeMailer) From() string { return "OVERDRIVE PERMITS <noreply@overdrivepermits.com>" }

func testConfig() *config.Config {
	return &config.Config{
		SMTP: config.SMTPConfig{
			Host:     "smtp.example.com",
			Port:     587,
			Username: "sender@example.com",
			Password: "secret",
		},
		Quote:       config.QuoteConfig{AdminEmail: "admin@overdrivepermits.com"},
		Environment: "test",
	}
}

func newTestService(fm *fakeMailer, constructions *int) *PermitService {
	factory := func(cfg config.SMTPConfig) (mailer.Mailer, error) {
		if constructions != nil {
			*constructions++
		}
		return fm, nil
	}
	return NewPermitService(testConfig(), factory, logger.NewNop())
}

func validPayload() *domain.PermitRequest {
	return &domain.PermitRequest{
		CustomerName:  "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "555-123-4567",
		Origin:        "Houston",
		Destination:   "Chicago",
		AvoidHighways: "0",
	}
}

func TestSubmitRejectsMissingContactFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PermitRequest)
	}{
		{"missing customerName", func(r *domain.PermitRequest) { r.CustomerName = "" }},
		{"missing email", func(r *domain.PermitRequest) { r.Email = "" }},
		{"missing phone", func(r *domain.PermitRequest) { r.Phone = "" }},
		{"whitespace name", func(r *domain.PermitRequest) { r.CustomerName = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constructions := 0
			svc := newTestService(&fakeMailer{}, &constructions)
			req := validPayload()
			tt.mutate(req)

			resp, err := svc.Submit(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, resp)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Equal(t, 0, constructions, "transport must not be constructed for invalid payloads")
		})
	}
}

func TestSubmitRejectsMissingRouteIdentification(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PermitRequest)
	}{
		{"no state, no route", func(r *domain.PermitRequest) { r.Origin, r.Destination = "", "" }},
		{"origin without destination", func(r *domain.PermitRequest) { r.Destination = "" }},
		{"destination without origin", func(r *domain.PermitRequest) { r.Origin = "" }},
		{"whitespace state only", func(r *domain.PermitRequest) {
			r.Origin, r.Destination, r.State = "", "", "   "
		}},
		{"whitespace destination", func(r *domain.PermitRequest) { r.Destination = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constructions := 0
			svc := newTestService(&fakeMailer{}, &constructions)
			req := validPayload()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)

			require.Error(t, err)
			appErr, _ := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Equal(t, 0, constructions)
		})
	}
}

func TestSubmitLegacyStatePayloadIsAccepted(t *testing.T) {
	fm := &fakeMailer{}
	svc := newTestService(fm, nil)
	req := &domain.PermitRequest{
		CustomerName: "Bob",
		Email:        "bob@example.com",
		Phone:        "555-000-1111",
		State:        "Montana",
		PermitType:   "overweight",
	}

	resp, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, fm.sent, 2)
	assert.Contains(t, fm.sent[0].Subject, "Montana")
	assert.Contains(t, fm.sent[0].Subject, "overweight")
}

func TestSubmitRejectsInvalidEmail(t *testing.T) {
	for _, bad := range []string{"not-an-email", "user@", "@example.com", "a b@example.com", "user@nodot"} {
		t.Run(bad, func(t *testing.T) {
			constructions := 0
			svc := newTestService(&fakeMailer{}, &constructions)
			req := validPayload()
			req.Email = bad

			_, err := svc.Submit(context.Background(), req)

			require.Error(t, err)
			appErr, _ := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Status)
			assert.Equal(t, "Invalid email address", appErr.Message)
			assert.Equal(t, 0, constructions)
		})
	}
}

func TestSubmitMissingCredentialsIsConfigurationError(t *testing.T) {
	for _, tt := range []struct {
		name    string
		mutate  func(*config.Config)
		wantVar string
	}{
		{"no user", func(c *config.Config) { c.SMTP.Username = "" }, "SMTP_USER"},
		{"no pass", func(c *config.Config) { c.SMTP.Password = "" }, "SMTP_PASS"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			svc := NewPermitService(cfg, mailer.Resolve, logger.NewNop())

			_, err := svc.Submit(context.Background(), validPayload())

			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusInternalServerError, appErr.Status)
			assert.Equal(t, apperrors.CodeConfiguration, appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantVar)
		})
	}
}

func TestSubmitVerifyFailureIsNotFatal(t *testing.T) {
	fm := &fakeMailer{verifyErr: errors.New("connection probe refused")}
	svc := newTestService(fm, nil)

	resp, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, fm.sent, 2)
}

func TestSubmitConfirmationFailureIsAbsorbed(t *testing.T) {
	fm := &fakeMailer{sendErrs: []error{nil, errors.New("mailbox unavailable")}}
	svc := newTestService(fm, nil)

	resp, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Permit request submitted successfully", resp.Message)
	assert.Len(t, fm.sent, 2, "both sends must be attempted")
}

func TestSubmitNotificationFailureIsFatal(t *testing.T) {
	authErr := &textproto.Error{Code: 535, Msg: "Invalid login: 535-5.7.8 Username and Password not accepted"}
	fm := &fakeMailer{sendErrs: []error{authErr}}
	svc := newTestService(fm, nil)

	resp, err := svc.Submit(context.Background(), validPayload())

	require.Error(t, err)
	assert.Nil(t, resp)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, apperrors.CodeTransport, appErr.Code)
	assert.Contains(t, strings.ToLower(appErr.Message), "authentication")
	assert.Len(t, fm.sent, 1, "confirmation must not be attempted after a failed notification")
}

func TestSubmitEndToEnd(t *testing.T) {
	fm := &fakeMailer{}
	svc := newTestService(fm, nil)

	resp, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	assert.Equal(t, &domain.PermitResponse{
		Success: true,
		Message: "Permit request submitted successfully",
	}, resp)

	require.Len(t, fm.sent, 2)
	notification, confirmation := fm.sent[0], fm.sent[1]

	assert.Equal(t, "admin@overdrivepermits.com", notification.To)
	assert.Equal(t, "jane@example.com", notification.ReplyTo)
	assert.Contains(t, notification.Subject, "Houston")
	assert.Contains(t, notification.Subject, "Chicago")
	assert.NotEmpty(t, notification.Headers["X-Entity-Ref-ID"])

	assert.Equal(t, "jane@example.com", confirmation.To)
	assert.Equal(t, "Permit Request Received - OVERDRIVE PERMITS", confirmation.Subject)
	assert.Equal(t, notification.Headers["X-Entity-Ref-ID"], confirmation.Headers["X-Entity-Ref-ID"])
}

func TestNotificationSubject(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.PermitRequest
		expected string
	}{
		{
			"route form",
			&domain.PermitRequest{Origin: "Houston", Destination: "Chicago"},
			"New Permit Request - Houston to Chicago",
		},
		{
			"legacy form",
			&domain.PermitRequest{State: "Texas", PermitType: "oversized"},
			"New Permit Request - Texas - oversized",
		},
		{
			"legacy form without permit type",
			&domain.PermitRequest{State: "Texas"},
			"New Permit Request - Texas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, notificationSubject(tt.req))
		})
	}
}
