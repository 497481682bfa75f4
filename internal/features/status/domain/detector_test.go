package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hstTime(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Pacific/Honolulu")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2025, 5, 20, hour, minute, 0, 0, loc)
}

// TestDecide_DailyDigestAt6am verifies the digest fires at 6am with a fresh date,
// regardless of status equality.
func TestDecide_DailyDigestAt6am(t *testing.T) {
	current := StatusRecord{Status: "In Transit"}
	state := SchedulerState{LastStatus: "In Transit"}

	decision := Decide(current, state, hstTime(t, 6, 5))

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, ReasonDailyUpdate, decision.Reason)
}

// TestDecide_DailyDigestWholeHour verifies the digest window spans the entire 6am hour.
func TestDecide_DailyDigestWholeHour(t *testing.T) {
	current := StatusRecord{Status: "In Transit"}
	state := SchedulerState{LastStatus: "In Transit"}

	decision := Decide(current, state, hstTime(t, 6, 45))

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, ReasonDailyUpdate, decision.Reason)
}

// TestDecide_DailyDigestAlreadySentToday verifies the per-day dedupe of the digest.
func TestDecide_DailyDigestAlreadySentToday(t *testing.T) {
	now := hstTime(t, 6, 30)
	current := StatusRecord{Status: "In Transit"}
	state := SchedulerState{
		LastStatus:           "In Transit",
		LastNotificationDate: now.Format(DateKeyLayout),
	}

	decision := Decide(current, state, now)

	assert.False(t, decision.ShouldNotify)
}

// TestDecide_StatusChange verifies the change event outside the digest window.
func TestDecide_StatusChange(t *testing.T) {
	current := StatusRecord{Status: "Delivered"}
	state := SchedulerState{LastStatus: "In Transit"}

	decision := Decide(current, state, hstTime(t, 14, 0))

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, ReasonStatusChange, decision.Reason)
	assert.Equal(t, "In Transit", decision.PreviousStatus)
	assert.Equal(t, "Delivered", decision.CurrentStatus)
}

// TestDecide_NoChange verifies no notification when the status is unchanged off-schedule.
func TestDecide_NoChange(t *testing.T) {
	current := StatusRecord{Status: "In Transit"}
	state := SchedulerState{LastStatus: "In Transit"}

	decision := Decide(current, state, hstTime(t, 14, 0))

	assert.False(t, decision.ShouldNotify)
}

// TestDecide_NoPriorStatus verifies that a first observation is not a change event.
func TestDecide_NoPriorStatus(t *testing.T) {
	current := StatusRecord{Status: "In Transit"}

	decision := Decide(current, SchedulerState{}, hstTime(t, 14, 0))

	assert.False(t, decision.ShouldNotify)
	assert.Equal(t, InitialStatus, decision.PreviousStatus)
}

// TestDecide_DigestWinsOverChange verifies rule ordering: the digest reason is
// reported even when the status also changed.
func TestDecide_DigestWinsOverChange(t *testing.T) {
	current := StatusRecord{Status: "Delivered"}
	state := SchedulerState{LastStatus: "In Transit"}

	decision := Decide(current, state, hstTime(t, 6, 0))

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, ReasonDailyUpdate, decision.Reason)
}
