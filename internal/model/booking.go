package model

import "time"

// Step marks the user's position in the booking flow.  The normal
// order is seats → snacks → payment → confirmation, but backward
// navigation is allowed and never discards later-step data.
type Step string

const (
	StepSeats        Step = "seats"
	StepSnacks       Step = "snacks"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Totals is the derived price breakdown of a booking.  It is always
// recomputed from the seat selection and the cart; nothing ever
// stores a grand total authoritatively, so it cannot drift.
type Totals struct {
	SeatsTotal  int `json:"seats_total"`
	SnacksTotal int `json:"snacks_total"`
	GrandTotal  int `json:"grand_total"`
}

// Snapshot is the serialized form of the booking state.  Writing a
// Snapshot to the session store and restoring it after a reload
// yields an equivalent state: same showtime, same seat set, same cart
// lines, same step.
type Snapshot struct {
	Showtime *ShowtimeInfo `json:"showtime,omitempty"`
	Seats    []Seat        `json:"seats,omitempty"`
	Cart     []CartItem    `json:"cart,omitempty"`
	Step     Step          `json:"step"`
}

// ShowtimeParams is a flattened, display-ready projection of the
// selected showtime.  It is persisted alongside the full snapshot so
// pages can render headers without re-deriving display strings.
type ShowtimeParams struct {
	MovieTitle string `json:"movie_title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Hall       string `json:"hall"`
	Format     string `json:"format"`
	Poster     string `json:"poster"`
	Price      int    `json:"price"`
}

// FinalizedBooking is the payload the confirmation step consumes.  It
// is written at step boundaries and re-read after a reload; the grand
// total inside it is advisory only and is recomputed defensively
// before payment.
//
// Fields:
//  MovieID     – movie identity for the receipt.
//  MovieTitle  – display title frozen at booking time.
//  Poster      – poster reference for the receipt card.
//  ShowtimeID  – identifier of the booked showtime.
//  Date, Time  – screening date and start time.
//  Hall        – hall display name.
//  Format      – projection format.
//  Seats       – the selected seats with their prices.
//  SeatsTotal  – sum of seat prices at the time of writing.
//  Snacks      – snack order lines.
//  SnacksTotal – sum of line totals at the time of writing.
//  GrandTotal  – SeatsTotal + SnacksTotal at the time of writing.
//  Step        – flow step the payload was written at.
type FinalizedBooking struct {
	MovieID     string     `json:"movie_id"`
	MovieTitle  string     `json:"movie_title"`
	Poster      string     `json:"poster"`
	ShowtimeID  string     `json:"showtime_id"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Hall        string     `json:"hall"`
	Format      string     `json:"format"`
	Seats       []Seat     `json:"seats"`
	SeatsTotal  int        `json:"seats_total"`
	Snacks      []CartItem `json:"snacks,omitempty"`
	SnacksTotal int        `json:"snacks_total"`
	GrandTotal  int        `json:"grand_total"`
	Step        Step       `json:"step"`
}

// ConfirmationRecord is produced exactly once, when simulated payment
// succeeds.  The persisted booking keys are purged immediately after
// it is built, so a completed booking can never leak into the next
// session.
type ConfirmationRecord struct {
	Code        string           `json:"code"`
	Booking     FinalizedBooking `json:"booking"`
	PaymentRef  string           `json:"payment_ref"`
	PurchasedAt time.Time        `json:"purchased_at"`
}
