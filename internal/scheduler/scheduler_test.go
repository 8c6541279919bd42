// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/olegiv/lobos/internal/store"
	"github.com/olegiv/lobos/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	if err := s.Add(Job{Name: "noop", Schedule: "@every 1h", Run: func(context.Context) error { return nil }}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	s.Start()
	s.Stop()
}

func TestScheduler_Add(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	noop := func(context.Context) error { return nil }

	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{name: "valid", job: Job{Name: "a", Schedule: "@every 1m", Run: noop}},
		{name: "five field", job: Job{Name: "b", Schedule: "0 3 * * *", Run: noop}},
		{name: "duplicate", job: Job{Name: "a", Schedule: "@every 1m", Run: noop}, wantErr: true},
		{name: "bad schedule", job: Job{Name: "c", Schedule: "every minute", Run: noop}, wantErr: true},
		{name: "no name", job: Job{Schedule: "@every 1m", Run: noop}, wantErr: true},
		{name: "no func", job: Job{Name: "d", Schedule: "@every 1m"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Add(tt.job)
			if (err != nil) != tt.wantErr {
				t.Errorf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if got := len(s.Jobs()); got != 2 {
		t.Errorf("Jobs() len = %d, want 2", got)
	}
}

func TestScheduler_JobsSorted(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	noop := func(context.Context) error { return nil }
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Add(Job{Name: name, Schedule: "@every 1h", Run: noop}); err != nil {
			t.Fatal(err)
		}
	}

	jobs := s.Jobs()
	if jobs[0].Name != "alpha" || jobs[1].Name != "mid" || jobs[2].Name != "zeta" {
		t.Errorf("Jobs() not sorted: %+v", jobs)
	}
}

func TestScheduler_Trigger(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	var calls atomic.Int32
	boom := errors.New("boom")
	_ = s.Add(Job{Name: "count", Schedule: "@every 1h", Run: func(context.Context) error {
		calls.Add(1)
		return nil
	}})
	_ = s.Add(Job{Name: "fail", Schedule: "@every 1h", Run: func(context.Context) error { return boom }})

	if err := s.Trigger("count"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	if err := s.Trigger("fail"); !errors.Is(err, boom) {
		t.Errorf("Trigger(fail) error = %v, want boom", err)
	}
	for _, j := range s.Jobs() {
		if j.Name == "fail" && j.LastError != "boom" {
			t.Errorf("LastError = %q, want boom", j.LastError)
		}
	}

	if err := s.Trigger("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("Trigger(missing) error = %v, want ErrJobNotFound", err)
	}
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	ran := make(chan struct{}, 1)
	_ = s.Add(Job{Name: "tick", Schedule: "@every 1s", Run: func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run on schedule")
	}
}

type fakeEvictor struct {
	ttl   time.Duration
	calls int
}

func (f *fakeEvictor) EvictIdle(ttl time.Duration) int {
	f.ttl = ttl
	f.calls++
	return 0
}

func TestEvictionJob(t *testing.T) {
	e := &fakeEvictor{}
	s := New(testutil.TestLoggerSilent())
	if err := s.Add(EvictionJob(e, 30*time.Minute, "@every 1m")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := s.Trigger("evict-idle-clients"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if e.calls != 1 || e.ttl != 30*time.Minute {
		t.Errorf("EvictIdle called %d times with ttl %v", e.calls, e.ttl)
	}
}

func TestEventPruneJob(t *testing.T) {
	db := testutil.TestDB(t)
	q := store.New(db)
	ctx := context.Background()

	old := time.Now().Add(-60 * 24 * time.Hour)
	if _, err := q.CreateEvent(ctx, store.CreateEventParams{Level: "warning", Category: "system", Message: "old", CreatedAt: old}); err != nil {
		t.Fatal(err)
	}
	if _, err := q.CreateEvent(ctx, store.CreateEventParams{Level: "warning", Category: "system", Message: "new", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	job := EventPruneJob(q, 30*24*time.Hour, "@daily")
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Message != "new" {
		t.Errorf("events = %+v, want only new", events)
	}
}
