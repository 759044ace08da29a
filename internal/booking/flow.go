// Package booking holds the client-side state of one booking
// attempt: the chosen showtime, the selected seats, the snack cart
// and the current flow step.  A Flow is the single authoritative
// owner of that state; views receive a *Flow explicitly instead of
// reaching for a shared global.  Totals are derived on every read and
// never cached, so they cannot drift from the collections they are
// computed from.
package booking

import (
	"context"

	"github.com/iliyamo/cinema-booking-client/internal/model"
	"github.com/iliyamo/cinema-booking-client/internal/session"
)

// Flow is the cart/booking state machine.  All mutation goes through
// its methods, which silently reject anything that would violate an
// invariant: an unavailable seat is never added, a cart line never
// reaches quantity zero, and only StartNewBooking discards data.
type Flow struct {
	store    session.Store // booking keys are purged here on reset; may be nil in pure in-memory use
	showtime *model.ShowtimeInfo
	seats    []model.Seat
	cart     []model.CartItem
	step     model.Step
}

// NewFlow returns an empty flow at the seat-selection step.  The
// store is used only by StartNewBooking to purge persisted booking
// keys and may be nil.
func NewFlow(store session.Store) *Flow {
	return &Flow{store: store, step: model.StepSeats}
}

// Showtime returns the selected showtime, or nil before one is set.
func (f *Flow) Showtime() *model.ShowtimeInfo {
	if f.showtime == nil {
		return nil
	}
	cp := *f.showtime
	return &cp
}

// SetShowtime replaces the selected showtime.  A new showtime
// invalidates the old seat map, so the seat selection and the snack
// cart are cleared as a side effect.  Always succeeds.
func (f *Flow) SetShowtime(info model.ShowtimeInfo) {
	cp := info
	f.showtime = &cp
	f.seats = nil
	f.cart = nil
}

// ToggleSeat adds the seat to the selection if absent and removes it
// if present, matching by (row, number).  An unavailable seat is a
// no-op: the UI disables those controls, but the state machine guards
// anyway so programmatic calls cannot corrupt the selection.
func (f *Flow) ToggleSeat(seat model.Seat) {
	if !seat.Selectable() {
		return
	}
	for i, s := range f.seats {
		if model.SameSeat(s, seat) {
			f.seats = append(f.seats[:i], f.seats[i+1:]...)
			return
		}
	}
	f.seats = append(f.seats, seat)
}

// ClearSeats empties the seat selection.
func (f *Flow) ClearSeats() {
	f.seats = nil
}

// SelectedSeats returns a copy of the current selection in the order
// the seats were chosen.
func (f *Flow) SelectedSeats() []model.Seat {
	out := make([]model.Seat, len(f.seats))
	copy(out, f.seats)
	return out
}

// AddSnack adds one unit of the snack to the cart.  If a line for
// this snack id already exists its quantity grows by one; otherwise a
// new line with quantity 1 is appended.
func (f *Flow) AddSnack(snack model.Snack) {
	for i := range f.cart {
		if f.cart[i].Snack.ID == snack.ID {
			f.cart[i].Quantity++
			return
		}
	}
	f.cart = append(f.cart, model.CartItem{Snack: snack, Quantity: 1})
}

// RemoveSnack removes one unit of the snack.  A line at quantity 1 is
// removed entirely; an unknown snack id is a no-op.
func (f *Flow) RemoveSnack(snackID int64) {
	for i := range f.cart {
		if f.cart[i].Snack.ID != snackID {
			continue
		}
		if f.cart[i].Quantity > 1 {
			f.cart[i].Quantity--
		} else {
			f.cart = append(f.cart[:i], f.cart[i+1:]...)
		}
		return
	}
}

// SetSnackQuantity sets the quantity of a line directly, appending
// the line when the snack is not in the cart yet.  A quantity below 1
// is rejected and leaves the cart unchanged, so no zero-quantity line
// can ever exist.
func (f *Flow) SetSnackQuantity(snack model.Snack, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range f.cart {
		if f.cart[i].Snack.ID == snack.ID {
			f.cart[i].Quantity = quantity
			return
		}
	}
	f.cart = append(f.cart, model.CartItem{Snack: snack, Quantity: quantity})
}

// CartItems returns a copy of the snack order lines.
func (f *Flow) CartItems() []model.CartItem {
	out := make([]model.CartItem, len(f.cart))
	copy(out, f.cart)
	return out
}

// Step returns the current flow step.
func (f *Flow) Step() model.Step {
	return f.step
}

// GoToStep moves the flow to the given step.  Both forward and
// backward moves are legal; moving backward keeps later-step data so
// a user who returns to seat selection does not lose the snacks
// already in the cart.  An unknown step is ignored.
func (f *Flow) GoToStep(step model.Step) {
	switch step {
	case model.StepSeats, model.StepSnacks, model.StepPayment, model.StepConfirmation:
		f.step = step
	}
}

// Totals computes the price breakdown fresh from the current seat
// selection and cart.
func (f *Flow) Totals() model.Totals {
	var t model.Totals
	for _, s := range f.seats {
		t.SeatsTotal += s.Price
	}
	for _, item := range f.cart {
		t.SnacksTotal += item.LineTotal()
	}
	t.GrandTotal = t.SeatsTotal + t.SnacksTotal
	return t
}

// Snapshot serializes the full state for persistence.
func (f *Flow) Snapshot() model.Snapshot {
	return model.Snapshot{
		Showtime: f.Showtime(),
		Seats:    f.SelectedSeats(),
		Cart:     f.CartItems(),
		Step:     f.step,
	}
}

// Restore replaces the state with a previously serialized snapshot,
// e.g. after a page reload.  A snapshot with no step lands on seat
// selection.
func (f *Flow) Restore(snap model.Snapshot) {
	f.showtime = nil
	if snap.Showtime != nil {
		cp := *snap.Showtime
		f.showtime = &cp
	}
	f.seats = make([]model.Seat, len(snap.Seats))
	copy(f.seats, snap.Seats)
	f.cart = make([]model.CartItem, len(snap.Cart))
	copy(f.cart, snap.Cart)
	f.step = model.StepSeats
	f.GoToStep(snap.Step)
}

// StartNewBooking resets everything: showtime, seats, cart and step,
// plus the persisted booking keys.  It is called whenever the user
// lands on the catalog entry point so no stale booking bleeds into a
// new session, and it is the only way out of the confirmation step.
func (f *Flow) StartNewBooking(ctx context.Context) error {
	f.showtime = nil
	f.seats = nil
	f.cart = nil
	f.step = model.StepSeats
	if f.store == nil {
		return nil
	}
	return session.Purge(ctx, f.store, session.BookingKeys...)
}
