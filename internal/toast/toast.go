// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package toast implements a per-client queue of transient notifications.
package toast

import (
	"sync"
	"time"
)

// Severity of a toast.
type Severity string

// Severity values.
const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// DefaultDuration is used by the severity helpers.
const DefaultDuration = 3000 * time.Millisecond

// Toast is a single queued notification.
type Toast struct {
	ID       int64         `json:"id"`
	Message  string        `json:"message"`
	Severity Severity      `json:"type"`
	Duration time.Duration `json:"-"`
	Millis   int64         `json:"duration"`
}

// Timer is a cancellable handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

type entry struct {
	toast Toast
	timer Timer
}

// Queue holds the active toasts for one client. Entries are kept in
// enqueue order and never persisted.
type Queue struct {
	clock    Clock
	duration time.Duration

	mu      sync.Mutex
	entries []entry
	lastID  int64
	closed  bool
}

// New creates a queue using the real clock. A zero defaultDuration falls
// back to DefaultDuration.
func New(defaultDuration time.Duration) *Queue {
	return NewWithClock(RealClock(), defaultDuration)
}

// NewWithClock creates a queue driven by clock.
func NewWithClock(clock Clock, defaultDuration time.Duration) *Queue {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}
	return &Queue{clock: clock, duration: defaultDuration}
}

// Notify appends a toast and returns its ID. A duration of zero keeps the
// toast until it is dismissed.
func (q *Queue) Notify(message string, severity Severity, duration time.Duration) int64 {
	if duration < 0 {
		duration = 0
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	// IDs come from the creation time in milliseconds; two toasts in the
	// same millisecond get consecutive values.
	id := q.clock.Now().UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	t := Toast{
		ID:       id,
		Message:  message,
		Severity: severity,
		Duration: duration,
		Millis:   duration.Milliseconds(),
	}
	e := entry{toast: t}
	if duration > 0 && !q.closed {
		e.timer = q.clock.AfterFunc(duration, func() { q.Dismiss(id) })
	}
	q.entries = append(q.entries, e)
	return id
}

// Success queues a success toast with the default duration.
func (q *Queue) Success(message string) int64 {
	return q.Notify(message, Success, q.duration)
}

// Error queues an error toast with the default duration.
func (q *Queue) Error(message string) int64 {
	return q.Notify(message, Error, q.duration)
}

// Warning queues a warning toast with the default duration.
func (q *Queue) Warning(message string) int64 {
	return q.Notify(message, Warning, q.duration)
}

// Info queues an info toast with the default duration.
func (q *Queue) Info(message string) int64 {
	return q.Notify(message, Info, q.duration)
}

// Dismiss removes the toast with the given ID and stops its timer.
// It reports whether a toast was removed.
func (q *Queue) Dismiss(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.toast.ID != id {
			continue
		}
		if e.timer != nil {
			e.timer.Stop()
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return true
	}
	return false
}

// List returns the active toasts in enqueue order.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.toast
	}
	return out
}

// Len returns the number of active toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close stops every pending timer. Toasts queued afterwards never expire
// on their own.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for _, e := range q.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	q.entries = nil
}
