package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"matson-tracker/internal/features/status/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCycleService counts cycle invocations for poller tests.
type mockCycleService struct {
	initialCycles atomic.Int32
	cycles        atomic.Int32
	initialError  error
}

func (m *mockCycleService) RunCycle(ctx context.Context) error {
	m.cycles.Add(1)
	return nil
}

func (m *mockCycleService) RunInitialCycle(ctx context.Context) error {
	m.initialCycles.Add(1)
	return m.initialError
}

func (m *mockCycleService) NotifyCurrentStatus(ctx context.Context) error { return nil }

func (m *mockCycleService) SendTestNotification(ctx context.Context) {}

func (m *mockCycleService) GetStatus(ctx context.Context) (*domain.StatusRecord, error) {
	return nil, domain.ErrStatusUnavailable
}

// TestPoller_Start verifies the initial cycle runs once and steady-state cycles
// fire on the configured interval.
func TestPoller_Start(t *testing.T) {
	svc := &mockCycleService{}
	poller := NewPoller(svc, 50*time.Millisecond, time.UTC)

	require.NoError(t, poller.Start(context.Background()))
	defer poller.Stop()

	assert.Equal(t, int32(1), svc.initialCycles.Load())

	// cron rounds sub-second @every delays up to one second.
	assert.Eventually(t, func() bool {
		return svc.cycles.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

// TestPoller_InitialCycleFailureIsNotFatal verifies a failed first fetch does
// not prevent the loop from starting.
func TestPoller_InitialCycleFailureIsNotFatal(t *testing.T) {
	svc := &mockCycleService{initialError: errors.New("timeout")}
	poller := NewPoller(svc, 50*time.Millisecond, time.UTC)

	require.NoError(t, poller.Start(context.Background()))
	defer poller.Stop()

	assert.Eventually(t, func() bool {
		return svc.cycles.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)
}
