// Package ratelimit caps request rates per source address. Counters live in
// memory only and reset on process restart.
package ratelimit

import (
	"sync"
	"time"
)

// MsgLimitExceeded is the fixed rejection text for over-limit requests.
const MsgLimitExceeded = "Zu viele Anfragen von dieser IP-Adresse. Bitte versuchen Sie es später erneut."

type window struct {
	start time.Time
	count int
}

// Limiter allows up to limit requests per source address within a fixed
// window. The counter store and clock are internal but resettable/injectable
// so tests can drive them.
type Limiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	windowLen time.Duration
	now       func() time.Time
}

func New(limit int, windowLen time.Duration) *Limiter {
	return NewWithClock(limit, windowLen, time.Now)
}

func NewWithClock(limit int, windowLen time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		windows:   make(map[string]*window),
		limit:     limit,
		windowLen: windowLen,
		now:       now,
	}
}

// Allow records one request from addr and reports whether it is within the
// limit. A new window starts when the previous one has fully elapsed.
func (l *Limiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[addr]
	if !ok || now.Sub(w.start) >= l.windowLen {
		l.windows[addr] = &window{start: now, count: 1}
		return true
	}

	w.count++

	return w.count <= l.limit
}

// Reset drops all counters.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string]*window)
}
