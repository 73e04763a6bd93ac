package core

// submit_limiter.go bounds how many submissions write to the database at once.
//
// Every accepted submission holds one pooled connection for the length of its
// transaction. The limiter keeps bursts from queueing inside pgxpool: a
// submission waits up to maxWait for a slot and is then turned away with
// ErrSubmissionsBusy. Drain lets shutdown wait for in-flight writes.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrSubmissionsBusy is returned when no slot frees up within the wait limit.
var ErrSubmissionsBusy = errors.New("too many submissions in progress, please try again later")

const (
	defaultSubmitSlots   = 8
	defaultSubmitMaxWait = 5 * time.Second
	drainPollInterval    = 50 * time.Millisecond
)

// SubmitLimiter is a counting semaphore for submission writes.
type SubmitLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewSubmitLimiter allows at most slots concurrent submissions. Non-positive
// arguments fall back to defaults.
func NewSubmitLimiter(slots int, maxWait time.Duration) *SubmitLimiter {
	if slots <= 0 {
		slots = defaultSubmitSlots
	}
	if maxWait <= 0 {
		maxWait = defaultSubmitMaxWait
	}
	return &SubmitLimiter{
		slots:   make(chan struct{}, slots),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting at most maxWait. The caller must Release
// after a nil return.
func (l *SubmitLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrSubmissionsBusy
	}
}

// Release returns a slot taken by Acquire.
func (l *SubmitLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active is the number of submissions currently holding a slot.
func (l *SubmitLimiter) Active() int {
	return int(l.active.Load())
}

// Capacity is the total number of slots.
func (l *SubmitLimiter) Capacity() int {
	return cap(l.slots)
}

// Drain blocks until no submission holds a slot or ctx ends.
func (l *SubmitLimiter) Drain(ctx context.Context) error {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// limitedStore serializes writes through a SubmitLimiter. Reads pass through.
type limitedStore struct {
	Store
	limiter *SubmitLimiter
}

func (s limitedStore) Create(ctx context.Context, b Business, items []Item) (BusinessID, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return 0, err
	}
	defer s.limiter.Release()
	return s.Store.Create(ctx, b, items)
}
