package model

// SeatCategory classifies a seat in a showtime's seat map.  The
// category alone determines the price: standard seats cost the
// showtime's base price, VIP seats cost a configured multiple of it,
// and unavailable seats can never be selected.  Seats already booked
// on the server and seats blocked by the offline generator both
// materialize as SeatUnavailable; nothing downstream distinguishes
// the two origins.
type SeatCategory string

const (
	SeatStandard    SeatCategory = "standard"
	SeatVIP         SeatCategory = "vip"
	SeatUnavailable SeatCategory = "unavailable"
)

// Seat is one entry of a showtime's seat map.  A seat has no identity
// beyond its position; the (row, number) pair is the natural key used
// when toggling selection membership.
//
// Fields:
//  Row      – ordinal row inside the hall, starting at 1.
//  Number   – ordinal seat position inside the row, starting at 1.
//  Category – pricing/availability category.
//  Price    – price in soms, fixed by category when the map is built.
type Seat struct {
	Row      int          `json:"row"`
	Number   int          `json:"number"`
	Category SeatCategory `json:"category"`
	Price    int          `json:"price"`
}

// Selectable reports whether the seat may be added to a selection.
func (s Seat) Selectable() bool { return s.Category != SeatUnavailable }

// SameSeat reports whether two seats refer to the same physical seat.
func SameSeat(a, b Seat) bool { return a.Row == b.Row && a.Number == b.Number }

// SeatRef identifies a seat by position only.  The availability
// endpoint reports already-booked seats in this form.
type SeatRef struct {
	Row    int `json:"row"`
	Number int `json:"number"`
}
