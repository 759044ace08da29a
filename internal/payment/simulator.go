// Package payment models the simulated payment step.  There is no
// real payment processing anywhere in this client; the simulator
// waits a configurable delay and then succeeds or declines according
// to a configured rate.
package payment

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ErrDeclined is returned when a simulated payment fails.  The caller
// keeps the booking data so the user can retry.
var ErrDeclined = errors.New("payment: declined")

// Processor runs one payment for the given amount and returns a
// payment reference on success.
type Processor interface {
	Process(ctx context.Context, amount int) (string, error)
}

// Simulator is the demo Processor.  Delay imitates the round trip to
// a payment gateway; FailureRate, between 0 and 1, is the fraction of
// attempts that decline.
type Simulator struct {
	Delay       time.Duration
	FailureRate float64
	rng         *rand.Rand
}

// NewSimulator returns a simulator with the given knobs.  A zero
// failure rate makes every payment succeed, which is what demos use.
func NewSimulator(delay time.Duration, failureRate float64) *Simulator {
	return &Simulator{
		Delay:       delay,
		FailureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Process waits for the configured delay (abandoning early if the
// context is cancelled), then rolls against the failure rate.  On
// success it returns a fresh payment reference.
func (s *Simulator) Process(ctx context.Context, amount int) (string, error) {
	if amount <= 0 {
		return "", ErrDeclined
	}
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.FailureRate > 0 && s.rng.Float64() < s.FailureRate {
		return "", ErrDeclined
	}
	return uuid.NewString(), nil
}
