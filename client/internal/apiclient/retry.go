package apiclient

import (
	"math"
	"math/rand"
	"time"

	"github.com/itchan-dev/simpleboard/shared/config"
)

// Retryer decides how long to wait before the feed is redialed.
type Retryer interface {
	// NextDelay returns the wait before reconnect attempt (0-based) and
	// whether to try at all.
	NextDelay(attempt int, lastErr error) (time.Duration, bool)
	// Reset is called once a connection is established again.
	Reset()
}

// ExponentialBackoffRetryer doubles the delay per attempt up to MaxDelay and
// spreads reconnecting clients with jitter.
type ExponentialBackoffRetryer struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	MaxRetries   int // 0 retries forever
	Jitter       bool
	JitterFactor float64 // fraction of the delay, 0..1
}

func NewExponentialBackoffRetryer() *ExponentialBackoffRetryer {
	return &ExponentialBackoffRetryer{
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		JitterFactor: 0.3,
	}
}

// NewRetryer applies the reconnect section of the client config over the defaults.
func NewRetryer(cfg config.Reconnect) *ExponentialBackoffRetryer {
	r := NewExponentialBackoffRetryer()
	if cfg.InitialDelay > 0 {
		r.InitialDelay = cfg.InitialDelay
	}
	if cfg.MaxDelay > 0 {
		r.MaxDelay = cfg.MaxDelay
	}
	r.MaxRetries = cfg.MaxRetries
	return r
}

func (r *ExponentialBackoffRetryer) NextDelay(attempt int, _ error) (time.Duration, bool) {
	if r.MaxRetries > 0 && attempt >= r.MaxRetries {
		return 0, false
	}

	delay := float64(r.InitialDelay) * math.Pow(r.Multiplier, float64(attempt))
	if delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	if r.Jitter && r.JitterFactor > 0 {
		//nolint:gosec // jitter is not security sensitive
		delay += delay * r.JitterFactor * (2*rand.Float64() - 1)
		if delay < 0 {
			delay = float64(r.InitialDelay)
		}
	}

	return time.Duration(delay), true
}

func (r *ExponentialBackoffRetryer) Reset() {}
