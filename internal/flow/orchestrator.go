// Package flow sequences the booking steps.  The Orchestrator
// bridges the state machine to the catalog client and the session
// store: it decides whether each page runs on live or fallback data,
// persists the booking state at every step boundary so a reload
// mid-flow loses nothing, and turns a successful simulated payment
// into a ConfirmationRecord while purging the persisted booking.
package flow

import (
	"context"
	"crypto/rand"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/cinema-booking-client/internal/auth"
	"github.com/iliyamo/cinema-booking-client/internal/booking"
	"github.com/iliyamo/cinema-booking-client/internal/catalog"
	"github.com/iliyamo/cinema-booking-client/internal/events"
	"github.com/iliyamo/cinema-booking-client/internal/fallback"
	"github.com/iliyamo/cinema-booking-client/internal/model"
	"github.com/iliyamo/cinema-booking-client/internal/payment"
	"github.com/iliyamo/cinema-booking-client/internal/session"
)

// Catalog is the slice of the catalog client the orchestrator needs.
// Tests substitute fakes for it.
type Catalog interface {
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	GetShowtime(ctx context.Context, id string) (*model.ShowtimeInfo, error)
	GetShowtimes(ctx context.Context, f catalog.ShowtimeFilter) ([]model.ShowtimeInfo, error)
	GetSeatAvailability(ctx context.Context, showtimeID string) (*model.SeatAvailability, error)
	GetSnacks(ctx context.Context) ([]model.Snack, error)
}

// Orchestrator owns the page-flow logic of one booking attempt.  It
// is the only writer of the authoritative session snapshot; the state
// machine owns the in-memory state and the orchestrator decides when
// that state reaches the store.
type Orchestrator struct {
	flow     *booking.Flow
	store    session.Store
	catalog  Catalog
	payments payment.Processor
	tokens   *auth.TokenStore // nil disables the authentication gate
	events   *events.Publisher
	lang     string

	mu         sync.Mutex
	resolution uint64 // identifier of the latest showtime resolution
}

// New wires an orchestrator.  Flow, store, catalog and payments must
// be non-nil; tokens and publisher are optional.
func New(fl *booking.Flow, store session.Store, cat Catalog, payments payment.Processor, tokens *auth.TokenStore, publisher *events.Publisher, lang string) *Orchestrator {
	if fl == nil || store == nil || cat == nil || payments == nil {
		panic("nil dependency passed to flow.New")
	}
	if lang == "" {
		lang = "kg"
	}
	return &Orchestrator{
		flow:     fl,
		store:    store,
		catalog:  cat,
		payments: payments,
		tokens:   tokens,
		events:   publisher,
		lang:     lang,
	}
}

// Flow exposes the state machine so views can apply seat and snack
// mutations directly.
func (o *Orchestrator) Flow() *booking.Flow { return o.flow }

// EnterSeatSelection resolves the showtime and its seat map for the
// seat-selection step.  Resolution order: a matching persisted
// snapshot, then the catalog by id (or the movie's first showtime
// when no id is given), then deterministic fallback generation.  A
// catalog failure is never fatal here; only an empty seat map is,
// and the generator cannot produce one.
//
// Each call supersedes any unfinished earlier resolution: if two
// resolutions race, the later call wins and the earlier one returns
// ErrStaleShowtime without touching the state.
func (o *Orchestrator) EnterSeatSelection(ctx context.Context, movieID, showtimeID string) (*model.ShowtimeInfo, []model.Seat, error) {
	token := o.beginResolution()

	info := o.resolveShowtime(ctx, movieID, showtimeID)
	seats := o.resolveSeatMap(ctx, info)
	if len(seats) == 0 {
		return nil, nil, ErrBookingUnavailable
	}

	if !o.stillCurrent(token) {
		return nil, nil, ErrStaleShowtime
	}
	o.flow.SetShowtime(*info)
	o.flow.GoToStep(model.StepSeats)
	o.persistShowtime(ctx, *info)
	return info, seats, nil
}

// ProceedToSnacks moves from seat selection to snack selection,
// persisting the selection so far.
func (o *Orchestrator) ProceedToSnacks(ctx context.Context) error {
	if o.flow.Showtime() == nil {
		return ErrNoBooking
	}
	if len(o.flow.SelectedSeats()) == 0 {
		return ErrNoSeatsSelected
	}
	o.flow.GoToStep(model.StepSnacks)
	return o.persistState(ctx)
}

// ProceedToPayment moves from snack selection to payment.  Snacks are
// optional; seats are not.
func (o *Orchestrator) ProceedToPayment(ctx context.Context) error {
	if o.flow.Showtime() == nil {
		return ErrNoBooking
	}
	if len(o.flow.SelectedSeats()) == 0 {
		return ErrNoSeatsSelected
	}
	o.flow.GoToStep(model.StepPayment)
	return o.persistState(ctx)
}

// BackToSeats returns to seat selection without losing the snack
// cart; nothing is cleared on backward navigation.
func (o *Orchestrator) BackToSeats(ctx context.Context) error {
	o.flow.GoToStep(model.StepSeats)
	return o.persistState(ctx)
}

// Resume restores a mid-flight booking after a page reload.  Corrupt
// persisted entries read as absent; when nothing usable remains it
// returns ErrNoBooking and the caller redirects to the start of the
// flow.
func (o *Orchestrator) Resume(ctx context.Context) (model.Snapshot, error) {
	var fb model.FinalizedBooking
	haveBooking := session.GetJSON(ctx, o.store, session.KeyBookingData, &fb) == nil

	var st model.ShowtimeInfo
	haveShowtime := session.GetJSON(ctx, o.store, session.KeySelectedShowtime, &st) == nil

	var cart []model.CartItem
	_ = session.GetJSON(ctx, o.store, session.KeyCartItems, &cart)

	if !haveBooking && !haveShowtime {
		return model.Snapshot{}, ErrNoBooking
	}

	snap := model.Snapshot{Step: model.StepSeats, Cart: cart}
	if haveShowtime {
		snap.Showtime = &st
	}
	if haveBooking {
		snap.Seats = fb.Seats
		snap.Step = fb.Step
		if snap.Showtime == nil {
			snap.Showtime = showtimeFromBooking(fb)
		}
	}
	o.flow.Restore(snap)
	return snap, nil
}

// LoadSnacks returns the concession menu for the snack step, falling
// back to the built-in menu when the catalog is unreachable.
func (o *Orchestrator) LoadSnacks(ctx context.Context) []model.Snack {
	snacks, err := o.catalog.GetSnacks(ctx)
	if err != nil || len(snacks) == 0 {
		return fallback.SnackMenu()
	}
	return snacks
}

// CompletePayment runs the simulated payment for the persisted
// booking.  On success it returns the write-once ConfirmationRecord
// and purges every booking key so the booking cannot be resubmitted;
// on payment.ErrDeclined the persisted state is retained so the user
// may retry.
func (o *Orchestrator) CompletePayment(ctx context.Context, card payment.Card) (*model.ConfirmationRecord, error) {
	if o.tokens != nil && !o.tokens.IsAuthenticated(ctx) {
		return nil, ErrNotAuthenticated
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	var fb model.FinalizedBooking
	if err := session.GetJSON(ctx, o.store, session.KeyBookingData, &fb); err != nil {
		return nil, ErrNoBooking
	}
	if len(fb.Seats) == 0 {
		return nil, ErrNoSeatsSelected
	}
	recomputeTotals(&fb)

	ref, err := o.payments.Process(ctx, fb.GrandTotal)
	if err != nil {
		return nil, err
	}

	rec := &model.ConfirmationRecord{
		Code:        ConfirmationCode(),
		Booking:     fb,
		PaymentRef:  ref,
		PurchasedAt: time.Now().UTC(),
	}
	rec.Booking.Step = model.StepConfirmation

	if err := session.Purge(ctx, o.store, session.BookingKeys...); err != nil {
		log.Printf("flow: purging booking keys: %v", err)
	}
	o.flow.GoToStep(model.StepConfirmation)

	if err := o.events.PublishBookingCompleted(ctx, *rec); err != nil {
		log.Printf("flow: booking event not published: %v", err)
	}
	return rec, nil
}

// AbandonBooking discards the in-memory state and the persisted
// booking keys without producing a record.
func (o *Orchestrator) AbandonBooking(ctx context.Context) error {
	return o.flow.StartNewBooking(ctx)
}

// resolveShowtime returns a usable showtime, never nil.  Failures are
// logged and answered with generated data; the booking flow must not
// hard-fail just because the catalog is unreachable.
func (o *Orchestrator) resolveShowtime(ctx context.Context, movieID, showtimeID string) *model.ShowtimeInfo {
	if showtimeID != "" {
		var saved model.ShowtimeInfo
		if session.GetJSON(ctx, o.store, session.KeySelectedShowtime, &saved) == nil && saved.ID == showtimeID {
			return &saved
		}
		st, err := o.catalog.GetShowtime(ctx, showtimeID)
		if err == nil {
			return st
		}
		log.Printf("flow: showtime %s not fetched (%v), using fallback", showtimeID, err)
	} else if movieID != "" {
		sts, err := o.catalog.GetShowtimes(ctx, catalog.ShowtimeFilter{MovieID: movieID})
		if err == nil && len(sts) > 0 {
			return &sts[0]
		}
		if err != nil {
			log.Printf("flow: showtimes for movie %s not fetched (%v), using fallback", movieID, err)
		}
	}

	movie := o.resolveMovie(ctx, movieID)
	st := fallback.ShowtimeFor(movie, showtimeID, o.lang)
	return &st
}

func (o *Orchestrator) resolveMovie(ctx context.Context, movieID string) model.Movie {
	if movieID != "" {
		if m, err := o.catalog.GetMovie(ctx, movieID); err == nil {
			return *m
		}
	}
	return fallback.MovieByID(movieID)
}

// resolveSeatMap materializes seats from live availability when it
// can, marking server-reported booked seats unavailable.  Otherwise
// it generates the deterministic fallback map for this showtime.
func (o *Orchestrator) resolveSeatMap(ctx context.Context, info *model.ShowtimeInfo) []model.Seat {
	av, err := o.catalog.GetSeatAvailability(ctx, info.ID)
	if err == nil && len(av.Rows) > 0 {
		return seatsFromAvailability(av, info.Price)
	}
	if err != nil {
		log.Printf("flow: availability for %s not fetched (%v), generating seat map", info.ID, err)
	}
	return fallback.SeatMap(info.ID, info.Price)
}

func seatsFromAvailability(av *model.SeatAvailability, basePrice int) []model.Seat {
	if basePrice <= 0 {
		basePrice = fallback.DefaultSeatPrice
	}
	booked := make(map[model.SeatRef]struct{}, len(av.BookedSeats))
	for _, ref := range av.BookedSeats {
		booked[ref] = struct{}{}
	}
	var seats []model.Seat
	for _, row := range av.Rows {
		for num := 1; num <= row.Seats; num++ {
			s := model.Seat{Row: row.Row, Number: num}
			if _, taken := booked[model.SeatRef{Row: row.Row, Number: num}]; taken {
				s.Category = model.SeatUnavailable
			} else if row.Category == model.SeatVIP {
				s.Category = model.SeatVIP
				s.Price = fallback.VIPPrice(basePrice)
			} else {
				s.Category = model.SeatStandard
				s.Price = basePrice
			}
			seats = append(seats, s)
		}
	}
	return seats
}

// persistShowtime writes the showtime snapshot and its display
// projection under their well-known keys.
func (o *Orchestrator) persistShowtime(ctx context.Context, info model.ShowtimeInfo) {
	if err := session.SetJSON(ctx, o.store, session.KeySelectedShowtime, info); err != nil {
		log.Printf("flow: persisting showtime: %v", err)
	}
	params := model.ShowtimeParams{
		MovieTitle: info.MovieTitle,
		Date:       info.Date,
		Time:       info.Time,
		Hall:       info.HallName,
		Format:     info.Format,
		Poster:     info.Poster,
		Price:      info.Price,
	}
	if err := session.SetJSON(ctx, o.store, session.KeyShowtimeParams, params); err != nil {
		log.Printf("flow: persisting showtime params: %v", err)
	}
}

// persistState serializes the current booking state at a step
// boundary: the cart under its own key and the finalized payload
// under bookingData.
func (o *Orchestrator) persistState(ctx context.Context) error {
	if err := session.SetJSON(ctx, o.store, session.KeyCartItems, o.flow.CartItems()); err != nil {
		return err
	}
	return session.SetJSON(ctx, o.store, session.KeyBookingData, o.finalizedBooking())
}

func (o *Orchestrator) finalizedBooking() model.FinalizedBooking {
	totals := o.flow.Totals()
	fb := model.FinalizedBooking{
		Seats:       o.flow.SelectedSeats(),
		SeatsTotal:  totals.SeatsTotal,
		Snacks:      o.flow.CartItems(),
		SnacksTotal: totals.SnacksTotal,
		GrandTotal:  totals.GrandTotal,
		Step:        o.flow.Step(),
	}
	if st := o.flow.Showtime(); st != nil {
		fb.MovieID = st.MovieID
		fb.MovieTitle = st.MovieTitle
		fb.Poster = st.Poster
		fb.ShowtimeID = st.ID
		fb.Date = st.Date
		fb.Time = st.Time
		fb.Hall = st.HallName
		fb.Format = st.Format
	}
	return fb
}

// recomputeTotals rebuilds every total from the collections before
// charging, in case an older snapshot carried stale numbers.  A
// snapshot whose seats have no per-seat prices is priced flat at the
// legacy default.
func recomputeTotals(fb *model.FinalizedBooking) {
	seats := 0
	for _, s := range fb.Seats {
		seats += s.Price
	}
	if seats == 0 && len(fb.Seats) > 0 {
		seats = len(fb.Seats) * fallback.DefaultSeatPrice
	}
	snacks := 0
	for _, item := range fb.Snacks {
		snacks += item.LineTotal()
	}
	fb.SeatsTotal = seats
	fb.SnacksTotal = snacks
	fb.GrandTotal = seats + snacks
}

func showtimeFromBooking(fb model.FinalizedBooking) *model.ShowtimeInfo {
	return &model.ShowtimeInfo{
		ID:         fb.ShowtimeID,
		MovieID:    fb.MovieID,
		MovieTitle: fb.MovieTitle,
		Poster:     fb.Poster,
		HallName:   fb.Hall,
		Date:       fb.Date,
		Time:       fb.Time,
		Format:     fb.Format,
	}
}

func (o *Orchestrator) beginResolution() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolution++
	return o.resolution
}

func (o *Orchestrator) stillCurrent(token uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return token == o.resolution
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ConfirmationCode generates a booking confirmation code of the form
// BC-XXXXXX.
func ConfirmationCode() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; fall back
		// to a timestamp-derived code rather than an empty one.
		n := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (uint(i) * 8))
		}
	}
	out := make([]byte, 0, 9)
	out = append(out, 'B', 'C', '-')
	for _, b := range buf {
		out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return string(out)
}
