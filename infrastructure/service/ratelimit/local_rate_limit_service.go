package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

// LocalRateLimitService is a per-process limiter. Each key owns a token
// bucket whose burst is the attempt limit and which refills over the window,
// so a failed attempt spends a token and CheckLimit asks whether one is left.
type LocalRateLimitService struct {
	mu           sync.Mutex
	buckets      map[string]*rate.Limiter
	blocks       map[string]time.Time
	defaultBurst int
	lastSweep    time.Time
	now          func() time.Time
}

func NewLocalRateLimitService(defaultBurst int) *LocalRateLimitService {
	if defaultBurst <= 0 {
		defaultBurst = 5
	}
	return &LocalRateLimitService{
		buckets:      make(map[string]*rate.Limiter),
		blocks:       make(map[string]time.Time),
		defaultBurst: defaultBurst,
		now:          time.Now,
	}
}

func (s *LocalRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b := s.bucket(key, limit, window, now)
	return b.TokensAt(now) >= 1, nil
}

func (s *LocalRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.bucket(key, 0, window, now).AllowN(now, 1)
	return nil
}

func (s *LocalRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks[key] = s.now().Add(duration)
	return nil
}

func (s *LocalRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.blocks[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.blocks, key)
		return false, nil
	}
	return true, nil
}

func (s *LocalRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok {
		return 0, nil
	}
	spent := float64(b.Burst()) - b.TokensAt(s.now())
	return int(math.Ceil(spent)), nil
}

// bucket returns the limiter for key, creating it or retuning it to limit and
// window when given. Callers hold s.mu.
func (s *LocalRateLimitService) bucket(key string, limit int, window time.Duration, now time.Time) *rate.Limiter {
	b, ok := s.buckets[key]
	if !ok {
		burst := limit
		if burst <= 0 {
			burst = s.defaultBurst
		}
		b = rate.NewLimiter(refill(burst, window), burst)
		s.buckets[key] = b
		return b
	}
	if limit > 0 && b.Burst() != limit {
		b.SetBurstAt(now, limit)
		b.SetLimitAt(now, refill(limit, window))
	}
	return b
}

// sweep drops buckets that have refilled completely. Callers hold s.mu.
func (s *LocalRateLimitService) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for key, b := range s.buckets {
		if b.TokensAt(now) >= float64(b.Burst()) {
			delete(s.buckets, key)
		}
	}
	for key, until := range s.blocks {
		if !now.Before(until) {
			delete(s.blocks, key)
		}
	}
}

func refill(burst int, window time.Duration) rate.Limit {
	if window <= 0 {
		return rate.Inf
	}
	return rate.Every(window / time.Duration(burst))
}
