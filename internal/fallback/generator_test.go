package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-client/internal/model"
)

func TestSeatMapDeterministic(t *testing.T) {
	a := SeatMap("st-1", 180)
	b := SeatMap("st-1", 180)
	assert.Equal(t, a, b)
}

func TestSeatMapShape(t *testing.T) {
	seats := SeatMap("st-1", 180)
	require.Len(t, seats, HallRows*SeatsPerRow)

	unavailable := 0
	for _, s := range seats {
		assert.GreaterOrEqual(t, s.Row, 1)
		assert.LessOrEqual(t, s.Row, HallRows)
		assert.GreaterOrEqual(t, s.Number, 1)
		assert.LessOrEqual(t, s.Number, SeatsPerRow)
		switch s.Category {
		case model.SeatStandard:
			assert.Less(t, s.Row, 7, "standard seats sit in front rows")
			assert.Equal(t, 180, s.Price)
		case model.SeatVIP:
			assert.GreaterOrEqual(t, s.Row, 7, "vip seats sit in back rows")
			assert.Equal(t, 270, s.Price)
		case model.SeatUnavailable:
			unavailable++
		default:
			t.Fatalf("unexpected category %q", s.Category)
		}
	}

	// Roughly a fifth of the hall is blocked; leave a wide band so
	// the assertion does not depend on one particular seed.
	assert.Greater(t, unavailable, HallRows*SeatsPerRow/20)
	assert.Less(t, unavailable, HallRows*SeatsPerRow/2)
}

func TestSeatMapDefaultsBasePrice(t *testing.T) {
	seats := SeatMap("st-1", 0)
	for _, s := range seats {
		if s.Category == model.SeatStandard {
			assert.Equal(t, DefaultSeatPrice, s.Price)
			return
		}
	}
	t.Fatal("no standard seat generated")
}

func TestShowtimeForUnknownMovieStillUsable(t *testing.T) {
	st := ShowtimeFor(MovieByID("does-not-exist"), "", "ru")
	assert.Equal(t, MockShowtimeID, st.ID)
	assert.NotEmpty(t, st.MovieTitle)
	assert.NotEmpty(t, st.HallName)
	assert.Equal(t, DefaultSeatPrice, st.Price)
}

func TestShowtimeForUsesLanguage(t *testing.T) {
	m := SampleMovies()[0]
	assert.Equal(t, m.TitleRU, ShowtimeFor(m, "x", "ru").MovieTitle)
	assert.Equal(t, m.TitleKG, ShowtimeFor(m, "x", "kg").MovieTitle)
}

func TestAvailabilityMatchesSeatMap(t *testing.T) {
	seats := SeatMap("st-2", 180)
	av := Availability("st-2", 180)

	blocked := make(map[model.SeatRef]bool)
	for _, ref := range av.BookedSeats {
		blocked[ref] = true
	}
	for _, s := range seats {
		assert.Equal(t, s.Category == model.SeatUnavailable, blocked[model.SeatRef{Row: s.Row, Number: s.Number}])
	}
	assert.Equal(t, len(seats), av.TotalSeats)
	assert.Equal(t, len(seats)-len(av.BookedSeats), av.AvailableSeats)
}

func TestSampleShowtimesCoverSampleMovies(t *testing.T) {
	sts := SampleShowtimes("kg")
	require.Len(t, sts, 2*len(SampleMovies()))
	ids := make(map[string]bool)
	for _, st := range sts {
		assert.False(t, ids[st.ID], "showtime ids must be unique")
		ids[st.ID] = true
	}
}

func TestSnackMenuPrices(t *testing.T) {
	menu := SnackMenu()
	require.Len(t, menu, 11)
	byName := make(map[string]int)
	for _, s := range menu {
		byName[s.Name] = s.Price
	}
	assert.Equal(t, 200, byName["Medium Popcorn"])
	assert.Equal(t, 450, byName["Combo #2"])
}
