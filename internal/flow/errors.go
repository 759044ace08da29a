package flow

import "errors"

// Every error the orchestrator surfaces is recoverable: the UI maps
// each one to a concrete next action (go back to seat selection,
// browse the catalog, log in, retry payment).  Nothing here is fatal
// to the application.

// ErrNoBooking means no booking is in progress: the persisted keys
// are absent or were corrupt and have been cleared.  The user is sent
// to the start of the flow.
var ErrNoBooking = errors.New("flow: no booking in progress")

// ErrBookingUnavailable means both the live fetch and the fallback
// generation produced nothing usable.  The user is shown a "booking
// data not found" message with a path back to the catalog.
var ErrBookingUnavailable = errors.New("flow: booking data not found")

// ErrNoSeatsSelected means the user tried to advance past seat
// selection, or reached payment, with an empty seat set.
var ErrNoSeatsSelected = errors.New("flow: no seats selected")

// ErrNotAuthenticated means payment was attempted without a valid
// access token.  The UI redirects to login and returns afterwards.
var ErrNotAuthenticated = errors.New("flow: not authenticated")

// ErrStaleShowtime means a showtime resolution finished after the
// user had already moved on to a different showtime; its result was
// discarded instead of overwriting the current state.
var ErrStaleShowtime = errors.New("flow: stale showtime resolution discarded")
