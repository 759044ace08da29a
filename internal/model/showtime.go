package model

// ShowtimeInfo identifies the specific screening the user is booking.
// It is immutable once chosen for the current booking and replaced
// wholesale when the user picks a different showtime.  The catalog
// service is the source of truth; one copy is cached in the session
// store for the duration of a booking attempt.
//
// Fields:
//  ID         – showtime identifier in the catalog service.
//  MovieID    – identifier of the movie being screened.
//  MovieTitle – display title resolved for the active language.
//  Poster     – poster image reference for the movie.
//  HallID     – identifier of the hall.
//  HallName   – display name of the hall.
//  Date       – screening date as shown to the user (YYYY-MM-DD).
//  Time       – screening start time as shown to the user (HH:MM).
//  Language   – audio language of the screening.
//  Price      – price in soms for one standard seat.
//  Format     – projection format (2D, 3D, IMAX).
type ShowtimeInfo struct {
	ID         string `json:"id"`
	MovieID    string `json:"movie"`
	MovieTitle string `json:"movie_title"`
	Poster     string `json:"poster"`
	HallID     string `json:"hall"`
	HallName   string `json:"hall_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Language   string `json:"language"`
	Price      int    `json:"price"`
	Format     string `json:"format"`
}

// HallRow describes one row of a hall layout as reported by the seat
// availability endpoint.
type HallRow struct {
	Row      int          `json:"row"`
	Seats    int          `json:"seats"`
	Category SeatCategory `json:"category"`
}

// SeatAvailability is the availability payload for one showtime: the
// hall layout plus the seats that are already booked.  The client
// turns this into a seat map, marking every booked seat unavailable.
type SeatAvailability struct {
	ShowtimeID     string    `json:"showtime"`
	Rows           []HallRow `json:"hall_layout"`
	BookedSeats    []SeatRef `json:"booked_seats"`
	AvailableSeats int       `json:"available_seats"`
	TotalSeats     int       `json:"total_seats"`
}
