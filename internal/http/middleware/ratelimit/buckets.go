package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config sizes a Buckets table.
type Config struct {
	Rate       float64       // refill, tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are evicted; 0 keeps them forever
	MaxBuckets int           // distinct keys tracked at once; 0 means unbounded
}

// Buckets keeps one token bucket per client key.
type Buckets struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	entries   map[string]*entry
	nextEvict time.Time
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewBuckets normalizes cfg and returns an empty table. A nil clock means
// SystemClock.
func NewBuckets(clock Clock, cfg Config) *Buckets {
	if clock == nil {
		clock = SystemClock{}
	}
	cfg.Rate = math.Max(cfg.Rate, 0)
	if cfg.Rate == 0 {
		cfg.Rate = 1
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.MaxBuckets = max(cfg.MaxBuckets, 0)
	return &Buckets{
		cfg:     cfg,
		clock:   clock,
		entries: make(map[string]*entry),
	}
}

// Allow spends one token from key's bucket. When the table is full an
// unknown key is refused, after idle buckets have been given a chance to
// expire.
func (b *Buckets) Allow(key string) bool {
	now := b.clock.Now()

	b.mu.Lock()
	if !now.Before(b.nextEvict) {
		b.evict(now)
	}
	e, ok := b.entries[key]
	if !ok {
		if b.full() {
			b.evict(now)
		}
		if b.full() {
			b.mu.Unlock()
			return false
		}
		e = &entry{lim: rate.NewLimiter(rate.Limit(b.cfg.Rate), b.cfg.Burst)}
		b.entries[key] = e
	}
	e.lastSeen = now
	b.mu.Unlock()

	return e.lim.AllowN(now, 1)
}

// RetryAfter is the time one token takes to refill.
func (b *Buckets) RetryAfter() time.Duration {
	return time.Duration(float64(time.Second) / b.cfg.Rate)
}

// Len reports how many keys are tracked.
func (b *Buckets) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func (b *Buckets) full() bool {
	return b.cfg.MaxBuckets > 0 && len(b.entries) >= b.cfg.MaxBuckets
}

// evict drops buckets idle for longer than TTL. Caller holds b.mu.
func (b *Buckets) evict(now time.Time) {
	if b.cfg.TTL <= 0 {
		b.nextEvict = now.Add(time.Hour)
		return
	}
	b.nextEvict = now.Add(max(b.cfg.TTL/2, time.Second))
	for k, e := range b.entries {
		if now.Sub(e.lastSeen) > b.cfg.TTL {
			delete(b.entries, k)
		}
	}
}
