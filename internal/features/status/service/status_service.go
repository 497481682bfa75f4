package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"matson-tracker/internal/core/logger"
	"matson-tracker/internal/features/status/domain"
	"matson-tracker/internal/features/status/ports"

	"go.uber.org/zap"
)

// StatusService orchestrates the fetch, extract, decide, notify, cache cycle
// and owns the scheduler state. The mutex serializes manual-trigger cycles
// against the background poller: there is exactly one logical writer of the
// state and the cache at any time, while repository reads stay concurrent.
type StatusService struct {
	mu sync.Mutex

	fetcher  ports.PageFetcher
	notifier ports.Notifier
	repo     ports.StatusRepository
	location *time.Location
	logger   *zap.Logger

	state domain.SchedulerState
	nowFn func() time.Time
}

// NewStatusService creates a new StatusService. location is the wall-clock
// zone for the daily-digest rule (Pacific/Honolulu in production).
func NewStatusService(fetcher ports.PageFetcher, notifier ports.Notifier, repo ports.StatusRepository, location *time.Location) *StatusService {
	return &StatusService{
		fetcher:  fetcher,
		notifier: notifier,
		repo:     repo,
		location: location,
		logger:   logger.Get(),
		nowFn:    time.Now,
	}
}

// RunCycle executes one steady-state poll cycle. A fetch failure abandons the
// cycle wholesale: no notification, no cache write, no state mutation.
func (s *StatusService) RunCycle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	now := s.nowFn().In(s.location)
	record := domain.Extract(raw, now)
	decision := domain.Decide(record, s.state, now)

	if decision.ShouldNotify {
		s.logger.Info("Sending status notification",
			zap.String("reason", string(decision.Reason)),
			zap.String("previous_status", decision.PreviousStatus),
			zap.String("current_status", decision.CurrentStatus),
		)
		s.notifier.SendStatusUpdate(ctx, decision, record)
		s.state.LastNotificationDate = now.Format(domain.DateKeyLayout)
	}

	s.persist(ctx, &record)
	s.state.LastStatus = record.Status
	return nil
}

// RunInitialCycle fetches and unconditionally sends the current-status
// notification, bypassing the schedule rules, then seeds the scheduler state.
func (s *StatusService) RunInitialCycle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.fetchCurrent(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("Initial status fetched",
		zap.String("status", record.Status),
		zap.String("location", record.Location),
		zap.String("vessel", record.Vessel),
	)

	s.notifier.SendCurrentStatus(ctx, *record)
	s.persist(ctx, record)
	s.state.LastStatus = record.Status
	return nil
}

// NotifyCurrentStatus synchronously fetches and emails the current status on
// demand, bypassing the schedule. Unlike the initial cycle it does not reseed
// LastStatus, so a pending change event is not swallowed.
func (s *StatusService) NotifyCurrentStatus(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.fetchCurrent(ctx)
	if err != nil {
		return err
	}

	s.notifier.SendCurrentStatus(ctx, *record)
	s.persist(ctx, record)
	return nil
}

// SendTestNotification sends a static test notification without fetching.
func (s *StatusService) SendTestNotification(ctx context.Context) {
	s.notifier.SendTest(ctx)
}

// GetStatus returns the last cached record. Reads do not take the cycle mutex;
// the repository guarantees an untorn record.
func (s *StatusService) GetStatus(ctx context.Context) (*domain.StatusRecord, error) {
	return s.repo.Get(ctx)
}

func (s *StatusService) fetchCurrent(ctx context.Context) (*domain.StatusRecord, error) {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	record := domain.Extract(raw, s.nowFn().In(s.location))
	return &record, nil
}

// persist overwrites the cached record. Cache write failures are logged but do
// not abort the cycle; the next successful cycle overwrites the slot anyway.
func (s *StatusService) persist(ctx context.Context, record *domain.StatusRecord) {
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error("Failed to cache status record", zap.Error(err))
	}
}
