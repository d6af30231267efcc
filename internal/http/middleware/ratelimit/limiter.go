package ratelimit

import "time"

// Limiter decides whether one more request under key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock is the time source of the bucket table.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AllowAll admits every request. It backs a disabled limiter.
type AllowAll struct{}

func (AllowAll) Allow(string) bool { return true }
