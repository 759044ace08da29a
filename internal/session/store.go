// Package session is the persisted key-value layer a booking survives
// page reloads with.  Entries are explicitly written and explicitly
// purged by the orchestrator and the state machine; nothing expires
// by time.  Values are JSON snapshots of the booking-flow entities,
// and a value that fails to decode is treated as absent, never as a
// crash.
package session

import (
	"context"
	"encoding/json"
	"errors"
)

// Well-known keys.  Only the orchestrator writes the authoritative
// snapshot under these; any component may read them.
const (
	KeySelectedShowtime = "selectedShowtime"
	KeyShowtimeParams   = "currentShowtimeParams"
	KeyCartItems        = "cartItems"
	KeyBookingData      = "bookingData"
	KeyAccessToken      = "accessToken"
)

// BookingKeys are the keys purged when a booking ends, whether it
// completed or was abandoned.  The access token survives; logging the
// user out is not part of finishing a booking.
var BookingKeys = []string{
	KeySelectedShowtime,
	KeyShowtimeParams,
	KeyCartItems,
	KeyBookingData,
}

// ErrNotFound is returned when a key is absent.  Corrupt entries are
// reported the same way after the offending key has been cleared, so
// callers never need a second error path.
var ErrNotFound = errors.New("session: key not found")

// Store is the persisted key-value contract.  Implementations must be
// safe for use from interleaved handlers, but no cross-process
// locking is required: one logical flow writes at a time and last
// writer wins at each step boundary.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// GetJSON reads key from s and decodes it into out.  A missing key
// returns ErrNotFound.  A present but undecodable value is removed
// and also reported as ErrNotFound.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		_ = s.Remove(ctx, key)
		return ErrNotFound
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}

// Purge removes every given key, ignoring absent ones.
func Purge(ctx context.Context, s Store, keys ...string) error {
	var first error
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil && !errors.Is(err, ErrNotFound) && first == nil {
			first = err
		}
	}
	return first
}
