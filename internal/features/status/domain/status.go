package domain

import (
	"errors"
	"time"
)

// RecordDateLayout is the calendar-date format persisted in the cache (MM-DD-YYYY).
const RecordDateLayout = "01-02-2006"

// DateKeyLayout is the format used to compare calendar days for the daily digest.
const DateKeyLayout = "2006-01-02"

// UnknownValue is the fallback for any field that could not be extracted.
const UnknownValue = "Unknown"

// InitialStatus is the sentinel previous-status before any poll has completed.
const InitialStatus = "Initial Status"

// ErrStatusUnavailable is returned when no status record has ever been cached,
// or the cached content cannot be parsed.
var ErrStatusUnavailable = errors.New("status unavailable")

// StatusRecord is the normalized shipment state extracted from one poll.
// Every field is always populated; extraction failures degrade to UnknownValue
// (or a truncated raw-text summary for Status), never to an error.
type StatusRecord struct {
	// Status is the free-text description of the current handling stage.
	Status string `json:"status"`
	// Location is the arrival location.
	Location string `json:"location"`
	// Vessel is the vessel name.
	Vessel string `json:"vessel"`
	// LastUpdate is the calendar date the record was produced, MM-DD-YYYY.
	LastUpdate string `json:"last_update"`
}

// NewUnknownRecord returns a record with every field set to UnknownValue,
// dated at the given time.
func NewUnknownRecord(now time.Time) StatusRecord {
	return StatusRecord{
		Status:     UnknownValue,
		Location:   UnknownValue,
		Vessel:     UnknownValue,
		LastUpdate: now.Format(RecordDateLayout),
	}
}

// NotificationReason classifies why a notification is being sent.
type NotificationReason string

const (
	// ReasonDailyUpdate is the scheduled 6am HST digest.
	ReasonDailyUpdate NotificationReason = "DAILY_UPDATE"
	// ReasonStatusChange is an observed change in the shipment status text.
	ReasonStatusChange NotificationReason = "STATUS_CHANGE"
)

// NotificationDecision is the outcome of evaluating one poll against the
// notification schedule.
type NotificationDecision struct {
	ShouldNotify   bool
	Reason         NotificationReason
	PreviousStatus string
	CurrentStatus  string
}

// SchedulerState is the process-lifetime notification state. It lives only in
// memory: a restart re-sends the current-status notice and may duplicate at most
// one daily digest the same day.
type SchedulerState struct {
	// LastStatus is the status text of the previous poll. Empty means no poll
	// has completed yet.
	LastStatus string
	// LastNotificationDate is the HST calendar day (DateKeyLayout) of the last
	// sent notification. Empty means none has been sent.
	LastNotificationDate string
}
