// Package backoff holds the delivery retry policy: how long a failed
// reminder waits before a sweep may pick it up again, and when it is
// failed for good.
package backoff

import "time"

// Policy is a capped exponential backoff. The delay for the n-th
// failure is Base*Factor^(n-1), never above Cap.
type Policy struct {
	Base       time.Duration
	Factor     float64
	Cap        time.Duration
	MaxRetries int
}

// Default matches the production configuration: 5m, 10m, then failed.
func Default() Policy {
	return Policy{
		Base:       5 * time.Minute,
		Factor:     2,
		Cap:        30 * time.Minute,
		MaxRetries: 3,
	}
}

// Delay returns how long to wait after the given failure count.
// retryCount is 1-based: the first failure is 1.
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}

	d := p.Base
	for i := 1; i < retryCount; i++ {
		d = time.Duration(float64(d) * p.Factor)
		if d >= p.Cap {
			return p.Cap
		}
	}

	if d > p.Cap {
		return p.Cap
	}

	return d
}

// Exhausted reports whether retryCount failures exhaust the policy.
func (p Policy) Exhausted(retryCount int) bool {
	return retryCount >= p.MaxRetries
}

// NextRetry returns the persisted next_retry deadline after a failure
// at now, or nil when the policy is exhausted and the reminder must be
// marked failed instead.
func (p Policy) NextRetry(now time.Time, retryCount int) *time.Time {
	if p.Exhausted(retryCount) {
		return nil
	}

	t := now.Add(p.Delay(retryCount))
	return &t
}
