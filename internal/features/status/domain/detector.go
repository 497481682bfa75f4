package domain

import "time"

// dailyDigestHour is the HST wall-clock hour of the scheduled daily notification.
const dailyDigestHour = 6

// Decide evaluates a freshly extracted record against the scheduler state and
// returns whether a notification is due and why. now must already be in HST.
//
// Rules, first match wins:
//  1. Daily digest: any poll landing inside the 6am hour, at most once per
//     HST calendar day.
//  2. Status change: the status text differs from the previously seen one.
//
// The decision is pure; sending the notification and stamping
// LastNotificationDate is the caller's job.
func Decide(current StatusRecord, state SchedulerState, now time.Time) NotificationDecision {
	previous := state.LastStatus
	if previous == "" {
		previous = InitialStatus
	}

	decision := NotificationDecision{
		PreviousStatus: previous,
		CurrentStatus:  current.Status,
	}

	if now.Hour() == dailyDigestHour && state.LastNotificationDate != now.Format(DateKeyLayout) {
		decision.ShouldNotify = true
		decision.Reason = ReasonDailyUpdate
		return decision
	}

	if state.LastStatus != "" && current.Status != state.LastStatus {
		decision.ShouldNotify = true
		decision.Reason = ReasonStatusChange
		return decision
	}

	return decision
}
