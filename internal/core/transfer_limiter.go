package core

// transfer_limiter.go bounds how many imports and exports run at once.
//
// Reading or writing a workbook holds the whole file in memory, so the
// server caps parallel transfers with a semaphore. When every slot is taken
// a request waits up to maxWait and then fails with ErrTooManyTransfers.
// WaitForDrain lets shutdown finish transfers that are already running.

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxConcurrentTransfers is the default limit for parallel transfers.
const DefaultMaxConcurrentTransfers = 4

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 10 * time.Second

// TransferLimiter controls concurrent import and export work.
type TransferLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewTransferLimiter creates a limiter allowing at most maxConcurrent
// simultaneous transfers. Requests that cannot get a slot within maxWait
// receive ErrTooManyTransfers.
func NewTransferLimiter(maxConcurrent int, maxWait time.Duration) *TransferLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentTransfers
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &TransferLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a transfer slot.
// The caller MUST call Release when the transfer completes.
func (l *TransferLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyTransfers
	}
}

// Release returns a slot taken by Acquire.
func (l *TransferLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of running transfers.
func (l *TransferLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *TransferLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// Available returns the number of free slots.
func (l *TransferLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until no transfer is running or ctx is cancelled.
func (l *TransferLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// TransferLimiterStatus is a snapshot of the limiter.
type TransferLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for the health endpoint.
func (l *TransferLimiter) Status() TransferLimiterStatus {
	return TransferLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
