// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/lobos/internal/store"
)

// Evictor drops idle clients.
type Evictor interface {
	EvictIdle(ttl time.Duration) int
}

// EvictionJob evicts clients idle for longer than ttl.
func EvictionJob(e Evictor, ttl time.Duration, schedule string) Job {
	return Job{
		Name:        "evict-idle-clients",
		Description: fmt.Sprintf("Drop in-memory state of clients idle for %s", ttl),
		Schedule:    schedule,
		Run: func(context.Context) error {
			e.EvictIdle(ttl)
			return nil
		},
	}
}

// EventPruneJob deletes operator events older than retention.
func EventPruneJob(q *store.Queries, retention time.Duration, schedule string) Job {
	return Job{
		Name:        "prune-events",
		Description: fmt.Sprintf("Delete events older than %s", retention),
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().Add(-retention)
			if _, err := q.DeleteEventsBefore(ctx, cutoff); err != nil {
				return fmt.Errorf("pruning events: %w", err)
			}
			return nil
		},
	}
}
