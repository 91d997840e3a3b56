package game

import "time"

// Scheduler schedules a single callback after a delay. The returned cancel
// function stops the callback if it has not fired yet.
//
// The match keeps exactly one pending tick at a time and tags every callback
// with a generation number, so a callback that raced its own cancellation is
// discarded when the generation no longer matches.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// WallClockScheduler schedules on the real clock.
type WallClockScheduler struct{}

func (WallClockScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
