package schedule

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StaffRef identifies one staff member across the resolver boundary. Name is
// the display token surfaced to callers; ID stays alongside it so downstream
// tools can act on the result.
type StaffRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SlotSource produces a staff member's free slot labels for one date.
// Implemented by the availability use case on top of the Altegio client.
type SlotSource interface {
	FreeSlots(ctx context.Context, staffID int64, date string) ([]string, error)
}

// Resolver cross-references slot availability over a set of candidate staff
// members: a candidate is really free at a time iff that exact label appears
// among their computed free slots.
type Resolver struct {
	source  SlotSource
	timeout time.Duration
	log     *zap.Logger
}

func NewResolver(source SlotSource, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{source: source, timeout: timeout, log: logger}
}

// ReallyFree checks every candidate concurrently and returns the ones whose
// free slots contain timeLabel, preserving candidate order.
//
// Each lookup gets its own timeout. A failed lookup excludes only that
// candidate; siblings keep running.
func (r *Resolver) ReallyFree(ctx context.Context, date, timeLabel string, candidates []StaffRef) []StaffRef {
	if len(candidates) == 0 {
		return nil
	}

	isFree := make([]bool, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand StaffRef) {
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			slots, err := r.source.FreeSlots(cctx, cand.ID, date)
			if err != nil {
				r.log.Warn("free-slot lookup failed, excluding candidate",
					zap.Int64("staff_id", cand.ID),
					zap.String("date", date),
					zap.Error(err),
				)
				return
			}
			isFree[i] = containsLabel(slots, timeLabel)
		}(i, cand)
	}
	wg.Wait()

	free := make([]StaffRef, 0, len(candidates))
	for i, cand := range candidates {
		if isFree[i] {
			free = append(free, cand)
		}
	}
	return free
}

func containsLabel(slots []string, label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}
