package flow

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-client/internal/auth"
	"github.com/iliyamo/cinema-booking-client/internal/booking"
	"github.com/iliyamo/cinema-booking-client/internal/catalog"
	"github.com/iliyamo/cinema-booking-client/internal/fallback"
	"github.com/iliyamo/cinema-booking-client/internal/model"
	"github.com/iliyamo/cinema-booking-client/internal/payment"
	"github.com/iliyamo/cinema-booking-client/internal/session"
)

// fakeCatalog substitutes the HTTP client.  With err set, every call
// fails with it; otherwise calls answer from the fixed maps.
type fakeCatalog struct {
	mu            sync.Mutex
	err           error
	movies        map[string]model.Movie
	showtimes     map[string]model.ShowtimeInfo
	availability  map[string]model.SeatAvailability
	snacks        []model.Snack
	showtimeCalls int

	blockID string        // GetShowtime for this id blocks...
	release chan struct{} // ...until this channel closes
	entered chan struct{} // signaled when the blocking call starts
}

func (f *fakeCatalog) GetMovie(_ context.Context, id string) (*model.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.movies[id]; ok {
		return &m, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) GetShowtime(_ context.Context, id string) (*model.ShowtimeInfo, error) {
	f.mu.Lock()
	f.showtimeCalls++
	blocked := f.blockID != "" && id == f.blockID
	f.mu.Unlock()
	if blocked {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	if st, ok := f.showtimes[id]; ok {
		return &st, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) GetShowtimes(_ context.Context, flt catalog.ShowtimeFilter) ([]model.ShowtimeInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.ShowtimeInfo
	for _, st := range f.showtimes {
		if flt.MovieID == "" || st.MovieID == flt.MovieID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetSeatAvailability(_ context.Context, id string) (*model.SeatAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	if av, ok := f.availability[id]; ok {
		return &av, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) GetSnacks(context.Context) ([]model.Snack, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snacks, nil
}

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showtimeCalls
}

func liveShowtime() model.ShowtimeInfo {
	return model.ShowtimeInfo{
		ID:         "st-1",
		MovieID:    "1",
		MovieTitle: "Жеңиш",
		HallName:   "Hall 1",
		Date:       "2026-09-02",
		Time:       "19:30",
		Price:      180,
		Format:     "2D",
	}
}

func newTestOrchestrator(t *testing.T, cat Catalog, proc payment.Processor, tokens *auth.TokenStore) (*Orchestrator, *booking.Flow, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	fl := booking.NewFlow(store)
	if proc == nil {
		proc = payment.NewSimulator(0, 0)
	}
	return New(fl, store, cat, proc, tokens, nil, "kg"), fl, store
}

// bookToPayment drives a flow to the payment step with two seats and
// one snack line, mirroring the scenario totals 360 + 400 = 760.
func bookToPayment(t *testing.T, orc *Orchestrator, fl *booking.Flow) {
	t.Helper()
	ctx := context.Background()
	fl.SetShowtime(liveShowtime())
	fl.ToggleSeat(model.Seat{Row: 1, Number: 3, Category: model.SeatStandard, Price: 180})
	fl.ToggleSeat(model.Seat{Row: 1, Number: 4, Category: model.SeatStandard, Price: 180})
	require.NoError(t, orc.ProceedToSnacks(ctx))
	fl.AddSnack(model.Snack{ID: 2, Name: "Medium Popcorn", Price: 200})
	fl.AddSnack(model.Snack{ID: 2, Name: "Medium Popcorn", Price: 200})
	require.NoError(t, orc.ProceedToPayment(ctx))
}

func TestEnterSeatSelectionFallsBackWhenCatalogDown(t *testing.T) {
	cat := &fakeCatalog{err: catalog.ErrUnavailable}
	orc, fl, store := newTestOrchestrator(t, cat, nil, nil)

	info, seats, err := orc.EnterSeatSelection(context.Background(), "x", "x")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.NotEmpty(t, seats)
	assert.Equal(t, "x", info.ID)
	require.NotNil(t, fl.Showtime())

	// The resolved showtime was persisted for the next page.
	var saved model.ShowtimeInfo
	require.NoError(t, session.GetJSON(context.Background(), store, session.KeySelectedShowtime, &saved))
	assert.Equal(t, info.ID, saved.ID)
	var params model.ShowtimeParams
	require.NoError(t, session.GetJSON(context.Background(), store, session.KeyShowtimeParams, &params))
	assert.Equal(t, info.MovieTitle, params.MovieTitle)
}

func TestEnterSeatSelectionUsesLiveAvailability(t *testing.T) {
	cat := &fakeCatalog{
		showtimes: map[string]model.ShowtimeInfo{"st-1": liveShowtime()},
		availability: map[string]model.SeatAvailability{
			"st-1": {
				ShowtimeID:  "st-1",
				Rows:        []model.HallRow{{Row: 1, Seats: 4, Category: model.SeatStandard}, {Row: 2, Seats: 4, Category: model.SeatVIP}},
				BookedSeats: []model.SeatRef{{Row: 1, Number: 2}},
			},
		},
	}
	orc, _, _ := newTestOrchestrator(t, cat, nil, nil)

	info, seats, err := orc.EnterSeatSelection(context.Background(), "1", "st-1")
	require.NoError(t, err)
	assert.Equal(t, "st-1", info.ID)
	require.Len(t, seats, 8)

	byPos := make(map[model.SeatRef]model.Seat)
	for _, s := range seats {
		byPos[model.SeatRef{Row: s.Row, Number: s.Number}] = s
	}
	assert.Equal(t, model.SeatUnavailable, byPos[model.SeatRef{Row: 1, Number: 2}].Category)
	assert.Equal(t, model.SeatStandard, byPos[model.SeatRef{Row: 1, Number: 1}].Category)
	assert.Equal(t, 180, byPos[model.SeatRef{Row: 1, Number: 1}].Price)
	assert.Equal(t, model.SeatVIP, byPos[model.SeatRef{Row: 2, Number: 3}].Category)
	assert.Equal(t, 270, byPos[model.SeatRef{Row: 2, Number: 3}].Price)
}

func TestEnterSeatSelectionReusesPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{err: catalog.ErrUnavailable}
	orc, _, store := newTestOrchestrator(t, cat, nil, nil)

	saved := liveShowtime()
	saved.ID = "st-9"
	saved.MovieTitle = "Saved Title"
	require.NoError(t, session.SetJSON(ctx, store, session.KeySelectedShowtime, saved))

	info, seats, err := orc.EnterSeatSelection(ctx, "1", "st-9")
	require.NoError(t, err)
	assert.Equal(t, "Saved Title", info.MovieTitle)
	assert.NotEmpty(t, seats)
	assert.Equal(t, 0, cat.calls(), "matching snapshot skips the showtime fetch")
}

func TestStaleResolutionDiscarded(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{
		showtimes: map[string]model.ShowtimeInfo{
			"st-slow": {ID: "st-slow", MovieID: "1", Price: 180},
			"st-fast": {ID: "st-fast", MovieID: "1", Price: 180},
		},
		blockID: "st-slow",
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	orc, fl, _ := newTestOrchestrator(t, cat, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, _, err := orc.EnterSeatSelection(ctx, "1", "st-slow")
		done <- err
	}()
	<-cat.entered // slow resolution is now in flight

	// The user picks another showtime before the first one resolves.
	_, _, err := orc.EnterSeatSelection(ctx, "1", "st-fast")
	require.NoError(t, err)

	close(cat.release)
	assert.ErrorIs(t, <-done, ErrStaleShowtime)
	require.NotNil(t, fl.Showtime())
	assert.Equal(t, "st-fast", fl.Showtime().ID, "late result must not overwrite the current showtime")
}

func TestProceedRequiresShowtimeAndSeats(t *testing.T) {
	ctx := context.Background()
	orc, fl, _ := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)

	assert.ErrorIs(t, orc.ProceedToSnacks(ctx), ErrNoBooking)

	fl.SetShowtime(liveShowtime())
	assert.ErrorIs(t, orc.ProceedToSnacks(ctx), ErrNoSeatsSelected)
	assert.ErrorIs(t, orc.ProceedToPayment(ctx), ErrNoSeatsSelected)
}

func TestPersistAndResumeAcrossReload(t *testing.T) {
	ctx := context.Background()
	orc, fl, store := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	bookToPayment(t, orc, fl)

	// Simulated page reload: fresh flow and orchestrator, same store.
	fl2 := booking.NewFlow(store)
	orc2 := New(fl2, store, &fakeCatalog{}, payment.NewSimulator(0, 0), nil, nil, "kg")

	snap, err := orc2.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StepPayment, snap.Step)
	assert.Equal(t, fl.SelectedSeats(), fl2.SelectedSeats())
	assert.Equal(t, fl.CartItems(), fl2.CartItems())
	require.NotNil(t, fl2.Showtime())
	assert.Equal(t, "st-1", fl2.Showtime().ID)
	assert.Equal(t, model.Totals{SeatsTotal: 360, SnacksTotal: 400, GrandTotal: 760}, fl2.Totals())
}

func TestResumeWithNothingPersisted(t *testing.T) {
	orc, _, _ := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	_, err := orc.Resume(context.Background())
	assert.ErrorIs(t, err, ErrNoBooking)
}

func TestResumeClearsCorruptState(t *testing.T) {
	ctx := context.Background()
	orc, _, store := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	require.NoError(t, store.Set(ctx, session.KeyBookingData, []byte("{corrupt")))

	_, err := orc.Resume(ctx)
	assert.ErrorIs(t, err, ErrNoBooking)

	// The corrupt entry was cleared, not left behind.
	_, err = store.Get(ctx, session.KeyBookingData)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCompletePaymentSuccessPurgesBooking(t *testing.T) {
	ctx := context.Background()
	orc, fl, store := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	bookToPayment(t, orc, fl)

	rec, err := orc.CompletePayment(ctx, validCard())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, strings.HasPrefix(rec.Code, "BC-"))
	assert.Len(t, rec.Code, 9)
	assert.NotEmpty(t, rec.PaymentRef)
	assert.Equal(t, 760, rec.Booking.GrandTotal)
	assert.Equal(t, model.StepConfirmation, fl.Step())
	assert.WithinDuration(t, time.Now(), rec.PurchasedAt, time.Minute)

	for _, key := range session.BookingKeys {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, session.ErrNotFound, key)
	}
}

func TestCompletePaymentDeclinedRetainsBooking(t *testing.T) {
	ctx := context.Background()
	declining := payment.NewSimulator(0, 1)
	orc, fl, store := newTestOrchestrator(t, &fakeCatalog{}, declining, nil)
	bookToPayment(t, orc, fl)

	_, err := orc.CompletePayment(ctx, validCard())
	assert.ErrorIs(t, err, payment.ErrDeclined)

	// Everything is still there for a retry.
	var fb model.FinalizedBooking
	require.NoError(t, session.GetJSON(ctx, store, session.KeyBookingData, &fb))
	assert.Len(t, fb.Seats, 2)
}

func TestCompletePaymentRejectsInvalidCard(t *testing.T) {
	orc, fl, _ := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	bookToPayment(t, orc, fl)

	card := validCard()
	card.CVV = "1"
	_, err := orc.CompletePayment(context.Background(), card)
	assert.ErrorIs(t, err, payment.ErrInvalidCard)
}

func TestCompletePaymentWithoutBooking(t *testing.T) {
	orc, _, _ := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	_, err := orc.CompletePayment(context.Background(), validCard())
	assert.ErrorIs(t, err, ErrNoBooking)
}

func TestCompletePaymentAuthGate(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	fl := booking.NewFlow(store)
	tokens := auth.NewTokenStore(store)
	orc := New(fl, store, &fakeCatalog{}, payment.NewSimulator(0, 0), tokens, nil, "kg")
	bookToPayment(t, orc, fl)

	_, err := orc.CompletePayment(ctx, validCard())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// After login the same call goes through.
	claims := jwt.MapClaims{"sub": "demo", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, tokens.SetToken(ctx, tok))

	rec, err := orc.CompletePayment(ctx, validCard())
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Code)
}

func TestCompletePaymentRecomputesTotalsDefensively(t *testing.T) {
	ctx := context.Background()
	orc, _, store := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)

	// A legacy snapshot: seats without per-seat prices and a stale
	// grand total.  The recompute prices them flat.
	fb := model.FinalizedBooking{
		ShowtimeID: "st-1",
		Seats:      []model.Seat{{Row: 1, Number: 3}, {Row: 1, Number: 4}},
		Snacks:     []model.CartItem{{Snack: model.Snack{ID: 2, Price: 200}, Quantity: 2}},
		GrandTotal: 9999,
		Step:       model.StepPayment,
	}
	require.NoError(t, session.SetJSON(ctx, store, session.KeyBookingData, fb))

	rec, err := orc.CompletePayment(ctx, validCard())
	require.NoError(t, err)
	assert.Equal(t, 2*fallback.DefaultSeatPrice, rec.Booking.SeatsTotal)
	assert.Equal(t, 400, rec.Booking.SnacksTotal)
	assert.Equal(t, 2*fallback.DefaultSeatPrice+400, rec.Booking.GrandTotal)
}

func TestLoadSnacksFallsBack(t *testing.T) {
	orc, _, _ := newTestOrchestrator(t, &fakeCatalog{err: catalog.ErrUnavailable}, nil, nil)
	menu := orc.LoadSnacks(context.Background())
	assert.Len(t, menu, 11)
}

func TestLoadSnacksPrefersLiveMenu(t *testing.T) {
	live := []model.Snack{{ID: 100, Name: "Tea", Price: 60}}
	orc, _, _ := newTestOrchestrator(t, &fakeCatalog{snacks: live}, nil, nil)
	assert.Equal(t, live, orc.LoadSnacks(context.Background()))
}

func TestAbandonBookingPurges(t *testing.T) {
	ctx := context.Background()
	orc, fl, store := newTestOrchestrator(t, &fakeCatalog{}, nil, nil)
	bookToPayment(t, orc, fl)

	require.NoError(t, orc.AbandonBooking(ctx))
	assert.Nil(t, fl.Showtime())
	assert.Equal(t, model.Totals{}, fl.Totals())
	_, err := store.Get(ctx, session.KeyBookingData)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestConfirmationCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := ConfirmationCode()
		require.Len(t, code, 9)
		assert.True(t, strings.HasPrefix(code, "BC-"))
		for _, r := range code[3:] {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not repeat constantly")
}

func validCard() payment.Card {
	return payment.Card{
		Number:     "4242 4242 4242 4242",
		Expiry:     "12/30",
		CVV:        "123",
		HolderName: "Demo User",
	}
}
