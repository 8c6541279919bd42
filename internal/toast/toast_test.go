// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package toast

import (
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every timer that came due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// fireStopped runs the callbacks of stopped timers, simulating a timer
// that raced with Stop.
func (c *fakeClock) fireStopped() {
	c.mu.Lock()
	var late []*fakeTimer
	for _, t := range c.timers {
		if t.stopped {
			late = append(late, t)
		}
	}
	c.mu.Unlock()

	for _, t := range late {
		t.fn()
	}
}

func TestNotify_AutoDismiss(t *testing.T) {
	clock := newFakeClock()
	q := NewWithClock(clock, 0)

	id := q.Success("Producto agregado")
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}

	clock.Advance(2999 * time.Millisecond)
	if q.Len() != 1 {
		t.Fatal("toast dismissed before its duration elapsed")
	}

	clock.Advance(time.Millisecond)
	if q.Len() != 0 {
		t.Fatalf("toast %d still present after 3000ms", id)
	}
}

func TestNotify_ZeroDurationPersists(t *testing.T) {
	clock := newFakeClock()
	q := NewWithClock(clock, 0)

	q.Notify("sticky", Info, 0)
	clock.Advance(time.Hour)

	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
}

func TestNotify_CustomDuration(t *testing.T) {
	clock := newFakeClock()
	q := NewWithClock(clock, 0)

	q.Notify("short", Warning, 500*time.Millisecond)
	q.Notify("long", Warning, 5*time.Second)

	clock.Advance(time.Second)
	list := q.List()
	if len(list) != 1 || list[0].Message != "long" {
		t.Fatalf("List = %+v, want only long", list)
	}
	if list[0].Millis != 5000 {
		t.Errorf("Millis = %d, want 5000", list[0].Millis)
	}
}

func TestNotify_UniqueIDsInSameMillisecond(t *testing.T) {
	clock := newFakeClock()
	q := NewWithClock(clock, 0)

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		id := q.Info("hola")
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if q.Len() != 10 {
		t.Errorf("duplicates must not be coalesced, Len = %d", q.Len())
	}
}

func TestList_EnqueueOrder(t *testing.T) {
	q := NewWithClock(newFakeClock(), 0)

	q.Success("a")
	q.Error("b")
	q.Warning("c")
	q.Info("d")

	want := []struct {
		msg string
		sev Severity
	}{{"a", Success}, {"b", Error}, {"c", Warning}, {"d", Info}}

	list := q.List()
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].Message != w.msg || list[i].Severity != w.sev {
			t.Errorf("list[%d] = %+v, want %s/%s", i, list[i], w.msg, w.sev)
		}
	}
}

func TestDismiss_StopsTimer(t *testing.T) {
	clock := newFakeClock()
	q := NewWithClock(clock, 0)

	first := q.Success("first")
	if !q.Dismiss(first) {
		t.Fatal("Dismiss returned false for an active toast")
	}
	if q.Dismiss(first) {
		t.Error("second Dismiss should report false")
	}

	second := q.Success("second")

	// A late callback from the first timer must not remove anything else.
	clock.fireStopped()
	list := q.List()
	if len(list) != 1 || list[0].ID != second {
		t.Fatalf("List = %+v, want only %d", list, second)
	}
}

func TestClose_StopsTimers(t *testing.T) {
	clock := newFakeClock()
	q := NewWithClock(clock, 0)

	q.Success("a")
	q.Error("b")
	q.Close()

	if q.Len() != 0 {
		t.Errorf("Len = %d after Close", q.Len())
	}
	for _, tm := range clock.timers {
		if !tm.stopped {
			t.Error("timer left running after Close")
		}
	}

	q.Info("after close")
	clock.Advance(time.Hour)
	if q.Len() != 1 {
		t.Error("toast queued after Close should not expire")
	}
}

func TestNew_DefaultDuration(t *testing.T) {
	q := New(0)
	if q.duration != DefaultDuration {
		t.Errorf("duration = %v, want %v", q.duration, DefaultDuration)
	}
	q = New(time.Second)
	if q.duration != time.Second {
		t.Errorf("duration = %v, want 1s", q.duration)
	}
}

func TestRealClock_Expires(t *testing.T) {
	q := New(0)
	defer q.Close()

	q.Notify("quick", Info, 10*time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for q.Len() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("toast never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
