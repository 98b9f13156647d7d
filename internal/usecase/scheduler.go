package usecase

import "time"

// Scheduler - runs deferred work. The returned func cancels the task if it has not started yet.
type Scheduler interface {
	Schedule(delay time.Duration, task func()) (cancel func())
}

type timerScheduler struct{}

// NewTimerScheduler - runs each task on its own goroutine after the delay.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(delay time.Duration, task func()) func() {
	timer := time.AfterFunc(delay, task)

	return func() {
		timer.Stop()
	}
}
