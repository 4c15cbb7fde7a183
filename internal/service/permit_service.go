package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/overdrivepermits/permit-service/internal/domain"
	"github.com/overdrivepermits/permit-service/internal/mailer"
	"github.com/overdrivepermits/permit-service/internal/metrics"
	"github.com/overdrivepermits/permit-service/internal/shared/config"
	apperrors "github.com/overdrivepermits/permit-service/internal/shared/errors"
	"github.com/overdrivepermits/permit-service/internal/shared/logger"
	"github.com/overdrivepermits/permit-service/internal/template"
)

const sendTimeout = 30 * time.Second

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PermitService orchestrates one form submission: structural validation,
// transport resolution, and the two outbound emails. The notification to
// the operator is mandatory; the confirmation to the submitter is
// best-effort.
type PermitService struct {
	cfg     *config.Config
	factory mailer.Factory
	log     *logger.Logger
}

// NewPermitService creates a new permit service
func NewPermitService(cfg *config.Config, factory mailer.Factory, log *logger.Logger) *PermitService {
	return &PermitService{
		cfg:     cfg,
		factory: factory,
		log:     log,
	}
}

// Validate rejects structurally invalid submissions before any network I/O.
// Checks run in order and the first failure wins.
func Validate(req *domain.PermitRequest) *apperrors.AppError {
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return apperrors.NewValidationError("Full name is required", nil)
	case strings.TrimSpace(req.Email) == "":
		return apperrors.NewValidationError("Email is required", nil)
	case strings.TrimSpace(req.Phone) == "":
		return apperrors.NewValidationError("Phone number is required", nil)
	}

	if strings.TrimSpace(req.State) == "" && !req.HasRoute() {
		return apperrors.NewValidationError("Either a state or both origin and destination are required", nil)
	}

	if !emailPattern.MatchString(req.Email) {
		return apperrors.NewValidationError("Invalid email address", nil)
	}

	return nil
}

// Submit runs the full submission flow and returns the caller-facing result.
func (s *PermitService) Submit(ctx context.Context, req *domain.PermitRequest) (*domain.PermitResponse, error) {
	start := time.Now()
	defer func() {
		metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
	}()

	if verr := Validate(req); verr != nil {
		metrics.SubmissionsTotal.WithLabelValues("validation_error").Inc()
		return nil, verr
	}

	m, err := s.factory(s.cfg.SMTP)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("configuration_error").Inc()
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewConfigurationError("Email transport is not configured", err)
	}

	// Connectivity probe only; the send below is the authoritative test.
	if err := m.Verify(ctx); err != nil {
		s.log.Warn("SMTP connectivity check failed, attempting send anyway", "error", err)
	}

	refID := uuid.New().String()

	notifyCtx, cancelNotify := context.WithTimeout(ctx, sendTimeout)
	err = m.Send(notifyCtx, &mailer.Message{
		To:      s.cfg.Quote.AdminEmail,
		ReplyTo: req.Email,
		Subject: notificationSubject(req),
		HTML:    template.RenderNotification(req),
		Headers: map[string]string{"X-Entity-Ref-ID": refID},
	})
	cancelNotify()
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("transport_error").Inc()
		metrics.EmailsTotal.WithLabelValues("notification", "failed").Inc()
		s.log.Error("Failed to send permit notification", "error", err, "ref_id", refID)
		return nil, apperrors.ClassifyTransportError(err)
	}
	metrics.EmailsTotal.WithLabelValues("notification", "sent").Inc()

	confirmCtx, cancelConfirm := context.WithTimeout(ctx, sendTimeout)
	err = m.Send(confirmCtx, &mailer.Message{
		To:      req.Email,
		Subject: "Permit Request Received - OVERDRIVE PERMITS",
		HTML:    template.RenderConfirmation(req),
		Headers: map[string]string{"X-Entity-Ref-ID": refID},
	})
	cancelConfirm()
	if err != nil {
		// The operator is already notified; a lost confirmation does not
		// fail the submission.
		metrics.EmailsTotal.WithLabelValues("confirmation", "failed").Inc()
		s.log.Error("Failed to send confirmation email", "error", err, "to", req.Email, "ref_id", refID)
	} else {
		metrics.EmailsTotal.WithLabelValues("confirmation", "sent").Inc()
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	s.log.Info("Permit request submitted", "ref_id", refID, "route", req.HasRoute())
	return &domain.PermitResponse{
		Success: true,
		Message: "Permit request submitted successfully",
	}, nil
}

func notificationSubject(req *domain.PermitRequest) string {
	if req.HasRoute() {
		return fmt.Sprintf("New Permit Request - %s to %s", req.Origin, req.Destination)
	}
	if req.PermitType != "" {
		return fmt.Sprintf("New Permit Request - %s - %s", req.State, req.PermitType)
	}
	return fmt.Sprintf("New Permit Request - %s", req.State)
}
