package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/overdrivepermits/permit-service/internal/domain"
	"github.com/overdrivepermits/permit-service/internal/mailer"
	"github.com/overdrivepermits/permit-service/internal/service"
	"github.com/overdrivepermits/permit-service/internal/shared/config"
	apperrors "github.com/overdrivepermits/permit-service/internal/shared/errors"
	"github.com/overdrivepermits/permit-service/internal/shared/logger"
)

// PermitHandler handles HTTP requests for permit submissions
type PermitHandler struct {
	service *service.PermitService
	factory mailer.Factory
	cfg     *config.Config
	log     *logger.Logger
}

// NewPermitHandler creates a new permit handler
func NewPermitHandler(svc *service.PermitService, factory mailer.Factory, cfg *config.Config, log *logger.Logger) *PermitHandler {
	return &PermitHandler{
		service: svc,
		factory: factory,
		cfg:     cfg,
		log:     log,
	}
}

// SubmitPermit handles POST /api/permit
func (h *PermitHandler) SubmitPermit(c *gin.Context) {
	var req domain.PermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.PermitResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.NewInternalError("Failed to submit permit request", err)
		}
		h.log.Error("Permit submission failed", "code", appErr.Code, "error", err)

		out := domain.PermitResponse{Success: false, Message: appErr.Message}
		if !h.cfg.IsProduction() && appErr.Err != nil {
			out.Error = appErr.Err.Error()
		}
		c.JSON(appErr.Status, out)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TestTransport handles GET /api/permit/test. It reports which transport
// settings are present (credentials masked, never raw) and attempts a
// connectivity check. Disabled in production.
func (h *PermitHandler) TestTransport(c *gin.Context) {
	if h.cfg.IsProduction() {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "This endpoint is only available in development mode",
		})
		return
	}

	smtpCfg := h.cfg.SMTP
	configView := gin.H{
		"hasHost": smtpCfg.Host != "",
		"hasUser": smtpCfg.Username != "",
		"hasPass": smtpCfg.Password != "",
		"host":    valueOr(smtpCfg.Host, "NOT SET"),
		"port":    smtpCfg.Port,
		"user":    maskUser(smtpCfg.Username),
		"pass":    maskSecret(smtpCfg.Password),
	}

	m, err := h.factory(smtpCfg)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "SMTP configuration is incomplete",
			"error":   err.Error(),
			"config":  configView,
			"required": gin.H{
				"SMTP_HOST": "Your SMTP server (e.g., smtp.gmail.com)",
				"SMTP_PORT": "Port number (587 for STARTTLS, 465 for implicit TLS)",
				"SMTP_USER": "Your email address",
				"SMTP_PASS": "Your email password or app password",
			},
		})
		return
	}

	if err := m.Verify(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "warning",
			"message": "SMTP configuration created but verification failed",
			"error":   err.Error(),
			"config":  configView,
			"note":    "Some SMTP servers do not support verification. Try sending a test email.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "SMTP configuration is valid and connection successful!",
		"config":  configView,
	})
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// maskUser keeps the first three characters of the account name so an
// operator can recognize which mailbox is configured without exposing it.
func maskUser(user string) string {
	if user == "" {
		return "NOT SET"
	}
	if len(user) > 3 {
		user = user[:3]
	}
	return user + "***"
}

func maskSecret(secret string) string {
	if secret == "" {
		return "NOT SET"
	}
	return "***SET***"
}
