package core

import (
	"sync"
	"time"
)

// IDSource hands out strictly increasing row ids derived from the clock.
//
// Reserve(n) returns a base b such that b..b+n-1 are free. The base is the
// current time in milliseconds unless that would collide with an id already
// handed out, in which case it continues after the last one. Calls faster
// than the clock's resolution therefore still produce distinct ids.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource creates an IDSource backed by time.Now.
func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceWithClock creates an IDSource with a custom clock.
func NewIDSourceWithClock(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

// Next returns a single fresh id.
func (s *IDSource) Next() int64 {
	return s.Reserve(1)
}

// Reserve claims n consecutive ids and returns the first.
// n <= 0 is treated as 1.
func (s *IDSource) Reserve(n int) int64 {
	if n <= 0 {
		n = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.now().UnixMilli()
	if base <= s.last {
		base = s.last + 1
	}
	s.last = base + int64(n) - 1
	return base
}
