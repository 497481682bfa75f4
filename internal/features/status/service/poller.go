package service

import (
	"context"
	"fmt"
	"time"

	"matson-tracker/internal/core/logger"
	"matson-tracker/internal/features/status/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Poller drives the poll loop at a fixed interval. It is the single background
// task of the process; fetch failures are logged and the loop resumes after the
// same fixed interval, never terminating the process.
type Poller struct {
	svc      ports.StatusService
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewPoller creates a Poller running in the given location.
func NewPoller(svc ports.StatusService, interval time.Duration, location *time.Location) *Poller {
	return &Poller{
		svc:      svc,
		interval: interval,
		cron:     cron.New(cron.WithLocation(location)),
		logger:   logger.Get(),
	}
}

// Start runs the initial cycle, then schedules steady-state cycles. It returns
// after scheduling; cycles run on the cron goroutine.
func (p *Poller) Start(ctx context.Context) error {
	// First cycle is special-cased: send the current status unconditionally.
	if err := p.svc.RunInitialCycle(ctx); err != nil {
		p.logger.Error("Initial cycle failed", zap.Error(err))
	}

	spec := fmt.Sprintf("@every %s", p.interval)
	_, err := p.cron.AddFunc(spec, func() {
		if err := p.svc.RunCycle(ctx); err != nil {
			p.logger.Error("Poll cycle failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule poll cycle: %w", err)
	}

	p.cron.Start()
	p.logger.Info("Poller started", zap.Duration("interval", p.interval))
	return nil
}

// Stop halts scheduling and waits for a running cycle to finish.
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info("Poller stopped")
}
