package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/overdrivepermits/permit-service/internal/mailer"
	"github.com/overdrivepermits/permit-service/internal/metrics"
	"github.com/overdrivepermits/permit-service/internal/shared/config"
	"github.com/overdrivepermits/permit-service/internal/shared/logger"
)

const checkSchedule = "@every 5m"

// TransportChecker periodically verifies SMTP connectivity and records the
// result in the smtp_up gauge. A failing check only warns; the submission
// path performs its own resolution per request.
type TransportChecker struct {
	cron    *cron.Cron
	cfg     config.SMTPConfig
	factory mailer.Factory
	log     *logger.Logger
}

// NewTransportChecker creates a new transport checker
func NewTransportChecker(cfg config.SMTPConfig, factory mailer.Factory, log *logger.Logger) *TransportChecker {
	return &TransportChecker{
		cron:    cron.New(),
		cfg:     cfg,
		factory: factory,
		log:     log,
	}
}

// Start registers the periodic check and runs one immediately
func (t *TransportChecker) Start() error {
	if _, err := t.cron.AddFunc(checkSchedule, t.check); err != nil {
		return err
	}
	t.cron.Start()
	go t.check()
	t.log.Info("Transport connectivity checker started", "schedule", checkSchedule)
	return nil
}

// Stop stops the checker
func (t *TransportChecker) Stop() {
	t.cron.Stop()
}

func (t *TransportChecker) check() {
	m, err := t.factory(t.cfg)
	if err != nil {
		metrics.SMTPUp.Set(0)
		t.log.Warn("SMTP configuration incomplete", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := m.Verify(ctx); err != nil {
		metrics.SMTPUp.Set(0)
		t.log.Warn("SMTP connectivity check failed", "error", err)
		return
	}
	metrics.SMTPUp.Set(1)
}
