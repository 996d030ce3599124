package app

import "time"

// RefreshScheduler gates icon regeneration to the configured interval.
// It is used by the foreground loop only.
type RefreshScheduler struct {
	last time.Time
}

// NewRefreshScheduler creates a scheduler whose interval starts at now.
func NewRefreshScheduler(now time.Time) *RefreshScheduler {
	return &RefreshScheduler{last: now}
}

// IsDue reports whether at least interval has passed since the last reset.
func (s *RefreshScheduler) IsDue(now time.Time, interval time.Duration) bool {
	return now.Sub(s.last) >= interval
}

// Reset starts a new interval at now.
func (s *RefreshScheduler) Reset(now time.Time) {
	s.last = now
}
