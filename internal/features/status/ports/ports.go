package ports

import (
	"context"

	"matson-tracker/internal/features/status/domain"
)

// PageFetcher defines the secondary port for retrieving the raw tracking-page
// text for the configured booking. It may block for seconds; timeouts are the
// implementation's responsibility and surface as errors.
type PageFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Notifier defines the secondary port for outbound notifications. Sends are
// fire-and-forget: delivery failures are logged by the implementation and never
// propagate to the caller.
type Notifier interface {
	// SendStatusUpdate sends the previous-vs-current status notification.
	SendStatusUpdate(ctx context.Context, decision domain.NotificationDecision, record domain.StatusRecord)
	// SendCurrentStatus sends the plain current-status notification.
	SendCurrentStatus(ctx context.Context, record domain.StatusRecord)
	// SendTest sends a static test notification.
	SendTest(ctx context.Context)
}

// StatusRepository defines the secondary port for the last-known-state store.
type StatusRepository interface {
	// Save overwrites the stored record wholesale.
	Save(ctx context.Context, record *domain.StatusRecord) error
	// Get returns the stored record, or domain.ErrStatusUnavailable when no
	// record has ever been saved or the stored content is unparsable.
	Get(ctx context.Context) (*domain.StatusRecord, error)
}

// StatusService defines the primary port consumed by the HTTP handlers and the
// poller.
type StatusService interface {
	// RunCycle executes one fetch→extract→decide→notify→cache cycle.
	RunCycle(ctx context.Context) error
	// RunInitialCycle fetches and unconditionally sends the current-status
	// notification, then seeds the scheduler state.
	RunInitialCycle(ctx context.Context) error
	// NotifyCurrentStatus synchronously fetches and sends the current-status
	// notification, bypassing the schedule.
	NotifyCurrentStatus(ctx context.Context) error
	// SendTestNotification sends a test notification without fetching.
	SendTestNotification(ctx context.Context)
	// GetStatus returns the last cached record.
	GetStatus(ctx context.Context) (*domain.StatusRecord, error)
}
