// Package fallback generates the data the booking flow runs on when
// the catalog service is unreachable.  Generation is deterministic:
// the seat map for a given showtime id is always the same, so demos
// and tests behave reproducibly.  The stub API serves this same data,
// which keeps the online and offline paths in agreement.
package fallback

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/iliyamo/cinema-booking-client/internal/model"
)

const (
	// HallRows and SeatsPerRow shape the generated hall: 8 rows of
	// 12 seats, the last two rows sold as VIP.
	HallRows    = 8
	SeatsPerRow = 12
	vipFromRow  = 7

	// unavailableFraction is the share of seats marked unavailable
	// so the seat map exercises the blocked-seat path offline.
	unavailableFraction = 0.2

	// DefaultSeatPrice is the standard per-seat price in soms used
	// when no showtime supplies one.
	DefaultSeatPrice = 180

	// MockShowtimeID is the identifier given to a generated
	// showtime when the caller has none.
	MockShowtimeID = "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"
)

// VIPPrice returns the VIP seat price for a standard base price.
func VIPPrice(base int) int { return base * 3 / 2 }

// seed derives a stable PRNG seed from a showtime identifier.
func seed(showtimeID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(showtimeID))
	return int64(h.Sum64())
}

// SeatMap generates the full seat map for a showtime.  Rows 1 through
// 6 are standard at basePrice, rows 7 and 8 are VIP at VIPPrice, and
// roughly a fifth of the seats come out unavailable, chosen by a PRNG
// seeded from the showtime id.
func SeatMap(showtimeID string, basePrice int) []model.Seat {
	if basePrice <= 0 {
		basePrice = DefaultSeatPrice
	}
	rng := rand.New(rand.NewSource(seed(showtimeID)))
	seats := make([]model.Seat, 0, HallRows*SeatsPerRow)
	for row := 1; row <= HallRows; row++ {
		for num := 1; num <= SeatsPerRow; num++ {
			s := model.Seat{Row: row, Number: num}
			switch {
			case rng.Float64() < unavailableFraction:
				s.Category = model.SeatUnavailable
			case row >= vipFromRow:
				s.Category = model.SeatVIP
				s.Price = VIPPrice(basePrice)
			default:
				s.Category = model.SeatStandard
				s.Price = basePrice
			}
			seats = append(seats, s)
		}
	}
	return seats
}

// ShowtimeFor builds a usable showtime for a movie when the catalog
// has none.  The screening is placed tomorrow evening in Hall 1.
func ShowtimeFor(m model.Movie, showtimeID, lang string) model.ShowtimeInfo {
	if showtimeID == "" {
		showtimeID = MockShowtimeID
	}
	return model.ShowtimeInfo{
		ID:         showtimeID,
		MovieID:    m.ID,
		MovieTitle: m.Title(lang),
		Poster:     m.Poster,
		HallID:     "hall-1",
		HallName:   "Hall 1",
		Date:       time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Time:       "19:30",
		Language:   m.Language,
		Price:      DefaultSeatPrice,
		Format:     "2D",
	}
}

// SampleShowtimes derives a fixed schedule from the sample movies:
// two screenings per movie with stable identifiers, used by the stub
// API and by offline schedule browsing.
func SampleShowtimes(lang string) []model.ShowtimeInfo {
	var out []model.ShowtimeInfo
	times := []string{"16:00", "19:30"}
	for _, m := range SampleMovies() {
		for i, t := range times {
			st := ShowtimeFor(m, fmt.Sprintf("st-%s-%d", m.ID, i+1), lang)
			st.Time = t
			if i == 1 {
				st.HallID = "hall-2"
				st.HallName = "Hall 2"
				st.Format = "3D"
			}
			out = append(out, st)
		}
	}
	return out
}

// Availability renders the generated seat map in the availability
// payload shape the live endpoint uses, so the stub API can serve it.
func Availability(showtimeID string, basePrice int) model.SeatAvailability {
	seats := SeatMap(showtimeID, basePrice)
	av := model.SeatAvailability{
		ShowtimeID: showtimeID,
		TotalSeats: len(seats),
	}
	for row := 1; row <= HallRows; row++ {
		cat := model.SeatStandard
		if row >= vipFromRow {
			cat = model.SeatVIP
		}
		av.Rows = append(av.Rows, model.HallRow{Row: row, Seats: SeatsPerRow, Category: cat})
	}
	for _, s := range seats {
		if s.Category == model.SeatUnavailable {
			av.BookedSeats = append(av.BookedSeats, model.SeatRef{Row: s.Row, Number: s.Number})
		} else {
			av.AvailableSeats++
		}
	}
	return av
}
