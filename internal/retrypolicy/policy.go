// Package retrypolicy computes backoff delays for transport-layer retries
// (repair adapter HTTP calls). It is a direct re-specification of the
// teacher's internal/retry/policy.go Policy type, trimmed to the three
// strategies AirEngine's adapter actually uses.
package retrypolicy

import "time"

// Strategy names a backoff shape.
type Strategy string

const (
	Fixed       Strategy = "fixed"
	Linear      Strategy = "linear"
	Exponential Strategy = "exponential"
)

// Policy computes the delay before a given retry attempt (1-indexed).
type Policy struct {
	Strategy   Strategy
	Base       time.Duration
	Max        time.Duration
	MaxRetries int
}

// Default returns the policy AirEngine's built-in LLM repair adapter uses:
// exponential backoff capped at 30s, up to 3 retries.
func Default() Policy {
	return Policy{Strategy: Exponential, Base: 500 * time.Millisecond, Max: 30 * time.Second, MaxRetries: 3}
}

// Delay returns how long to wait before attempt (1-indexed: the delay
// before the first retry, i.e. after the initial call already failed).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	var d time.Duration
	switch p.Strategy {
	case Fixed:
		d = p.Base
	case Linear:
		d = p.Base * time.Duration(attempt)
	case Exponential:
		d = p.Base
		for i := 1; i < attempt; i++ {
			d *= 2
		}
	default:
		d = p.Base
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	return d
}

// ShouldRetry reports whether attempt (the attempt that just failed,
// 1-indexed) is still within MaxRetries.
func (p Policy) ShouldRetry(attempt int) bool {
	return attempt < p.MaxRetries
}
