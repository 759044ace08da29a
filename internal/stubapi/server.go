// Package stubapi is a development stand-in for the cinema's REST
// backend.  It serves the same fixed sample data the offline fallback
// generator produces, so the client behaves identically whether it
// talks to this stub or runs with no server at all.  List endpoints
// deliberately answer in both collection shapes the real API uses:
// movies come wrapped in a paginated envelope, everything else as a
// bare array, which keeps the client's shape normalization honest.
package stubapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking-client/internal/fallback"
	"github.com/iliyamo/cinema-booking-client/internal/model"
)

// Server holds the stub's fixed dataset and auth settings.
type Server struct {
	jwtSecret    string
	accessTTLMin int
	demoEmail    string
	demoHash     string

	movies    []model.Movie
	showtimes []model.ShowtimeInfo
	snacks    []model.Snack
	news      []model.NewsItem
	gallery   []model.GalleryItem
}

// New builds a stub server with the sample dataset and one demo user
// (demo@cinema.kg / demo123).
func New(jwtSecret string, accessTTLMin int) *Server {
	if accessTTLMin <= 0 {
		accessTTLMin = 60
	}
	return &Server{
		jwtSecret:    jwtSecret,
		accessTTLMin: accessTTLMin,
		demoEmail:    "demo@cinema.kg",
		demoHash:     hashPassword("demo123"),
		movies:       fallback.SampleMovies(),
		showtimes:    fallback.SampleShowtimes("kg"),
		snacks:       fallback.SnackMenu(),
		news:         fallback.SampleNews(),
		gallery:      fallback.SampleGallery(),
	}
}

// RegisterRoutes registers every stub endpoint on the provided Echo
// instance.  Only booking creation requires a token.
func RegisterRoutes(e *echo.Echo, s *Server) {
	e.GET("/healthz", s.Health)

	e.GET("/v1/movies", s.ListMovies)
	e.GET("/v1/movies/:id", s.GetMovie)
	e.GET("/v1/showtimes", s.ListShowtimes)
	e.GET("/v1/showtimes/:id", s.GetShowtime)
	e.GET("/v1/showtimes/:id/seats", s.GetShowtimeSeats)
	e.GET("/v1/snacks", s.ListSnacks)
	e.GET("/v1/news", s.ListNews)
	e.GET("/v1/gallery", s.ListGallery)

	e.POST("/v1/auth/login", s.Login)

	protected := e.Group("/v1")
	protected.Use(jwtAuth(s.jwtSecret))
	protected.POST("/bookings", s.CreateBooking)
}

// Health reports that the stub is up.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// ListMovies answers with the paginated envelope shape: {"count": n,
// "results": [...]}.  Supported filters: showing, genre, search.
func (s *Server) ListMovies(c echo.Context) error {
	showing := c.QueryParam("showing")
	genre := c.QueryParam("genre")
	search := strings.ToLower(c.QueryParam("search"))

	results := make([]model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		if showing == "true" && !m.IsShowing {
			continue
		}
		if showing == "false" && m.IsShowing {
			continue
		}
		if genre != "" && !strings.EqualFold(m.Genre, genre) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.TitleKG), search) &&
			!strings.Contains(strings.ToLower(m.TitleRU), search) {
			continue
		}
		results = append(results, m)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(results), "results": results})
}

// GetMovie returns one movie by id.
func (s *Server) GetMovie(c echo.Context) error {
	id := c.Param("id")
	for _, m := range s.movies {
		if m.ID == id {
			return c.JSON(http.StatusOK, m)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
}

// ListShowtimes answers with a bare array, optionally filtered by
// movie or date.
func (s *Server) ListShowtimes(c echo.Context) error {
	movie := c.QueryParam("movie")
	date := c.QueryParam("date")
	out := make([]model.ShowtimeInfo, 0, len(s.showtimes))
	for _, st := range s.showtimes {
		if movie != "" && st.MovieID != movie {
			continue
		}
		if date != "" && st.Date != date {
			continue
		}
		out = append(out, st)
	}
	return c.JSON(http.StatusOK, out)
}

// GetShowtime returns one showtime by id.
func (s *Server) GetShowtime(c echo.Context) error {
	if st, ok := s.findShowtime(c.Param("id")); ok {
		return c.JSON(http.StatusOK, st)
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
}

// GetShowtimeSeats returns the availability payload for a showtime.
// The layout comes from the same generator the offline path uses, so
// a given showtime id has the same blocked seats everywhere.
func (s *Server) GetShowtimeSeats(c echo.Context) error {
	st, ok := s.findShowtime(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
	}
	return c.JSON(http.StatusOK, fallback.Availability(st.ID, st.Price))
}

// ListSnacks answers with a bare array.
func (s *Server) ListSnacks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.snacks)
}

// ListNews answers with a bare array of published entries.
func (s *Server) ListNews(c echo.Context) error {
	out := make([]model.NewsItem, 0, len(s.news))
	for _, n := range s.news {
		if n.Published {
			out = append(out, n)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// ListGallery answers with a bare array.
func (s *Server) ListGallery(c echo.Context) error {
	return c.JSON(http.StatusOK, s.gallery)
}

// bookingRequest mirrors the payload the real backend accepts for
// booking creation.
type bookingRequest struct {
	Showtime    string          `json:"showtime"`
	Seats       []model.SeatRef `json:"seats_json"`
	SnackTotal  int             `json:"snack_total"`
	TicketTotal int             `json:"ticket_total"`
}

// CreateBooking accepts a finalized booking from an authenticated
// client and echoes a confirmed record back.  The stub performs no
// seat locking; it exists so the post-payment request path can be
// exercised end to end.
func (s *Server) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Showtime == "" || len(req.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime and seats are required"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          uuid.NewString(),
		"showtime":    req.Showtime,
		"seats_json":  req.Seats,
		"snack_total": req.SnackTotal,
		"ticket_total": req.TicketTotal,
		"grand_total": req.SnackTotal + req.TicketTotal,
		"status":      "confirmed",
	})
}

func (s *Server) findShowtime(id string) (model.ShowtimeInfo, bool) {
	for _, st := range s.showtimes {
		if st.ID == id {
			return st, true
		}
	}
	return model.ShowtimeInfo{}, false
}
