package stubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-client/internal/catalog"
	"github.com/iliyamo/cinema-booking-client/internal/fallback"
	"github.com/iliyamo/cinema-booking-client/internal/model"
)

func startStub(t *testing.T) (*httptest.Server, *catalog.Client) {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e, New("test-secret", 30))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, catalog.New(srv.URL+"/v1", 5*time.Second)
}

// The stub is exercised through the real catalog client so that both
// response shapes (movie envelope, bare arrays) stay decodable.
func TestCatalogClientAgainstStub(t *testing.T) {
	_, client := startStub(t)
	ctx := context.Background()

	movies, err := client.GetMovies(ctx, catalog.MovieFilter{})
	require.NoError(t, err)
	assert.Len(t, movies, len(fallback.SampleMovies()))

	showing := true
	nowShowing, err := client.GetMovies(ctx, catalog.MovieFilter{Showing: &showing})
	require.NoError(t, err)
	assert.NotEmpty(t, nowShowing)
	for _, m := range nowShowing {
		assert.True(t, m.IsShowing)
	}

	movie, err := client.GetMovie(ctx, movies[0].ID)
	require.NoError(t, err)
	assert.Equal(t, movies[0].ID, movie.ID)

	_, err = client.GetMovie(ctx, "no-such-movie")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	showtimes, err := client.GetShowtimes(ctx, catalog.ShowtimeFilter{MovieID: movie.ID})
	require.NoError(t, err)
	require.NotEmpty(t, showtimes)
	for _, st := range showtimes {
		assert.Equal(t, movie.ID, st.MovieID)
	}

	st, err := client.GetShowtime(ctx, showtimes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, showtimes[0].ID, st.ID)

	snacks, err := client.GetSnacks(ctx)
	require.NoError(t, err)
	assert.Len(t, snacks, 11)

	news, err := client.GetNews(ctx)
	require.NoError(t, err)
	for _, n := range news {
		assert.True(t, n.Published)
	}

	gallery, err := client.GetGallery(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, gallery)
}

// Availability served over HTTP must match what the offline generator
// produces for the same showtime, seat for seat.
func TestSeatAvailabilityMatchesGenerator(t *testing.T) {
	_, client := startStub(t)
	ctx := context.Background()

	showtimes, err := client.GetShowtimes(ctx, catalog.ShowtimeFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, showtimes)
	st := showtimes[0]

	av, err := client.GetSeatAvailability(ctx, st.ID)
	require.NoError(t, err)

	want := fallback.Availability(st.ID, st.Price)
	assert.Equal(t, want.TotalSeats, av.TotalSeats)
	assert.Equal(t, want.AvailableSeats, av.AvailableSeats)
	assert.ElementsMatch(t, want.BookedSeats, av.BookedSeats)
	assert.Equal(t, want.Rows, av.Rows)
}

func TestLoginAndCreateBooking(t *testing.T) {
	srv, _ := startStub(t)

	login := func(email, password string) (*http.Response, map[string]any) {
		t.Helper()
		body, _ := json.Marshal(map[string]string{"email": email, "password": password})
		resp, err := http.Post(srv.URL+"/v1/auth/login", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp, out
	}

	resp, _ := login("demo@cinema.kg", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, out := login("demo@cinema.kg", "demo123")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := out["access_token"].(string)
	require.NotEmpty(t, token)

	postBooking := func(token string, payload any) *http.Response {
		t.Helper()
		body, _ := json.Marshal(payload)
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/bookings", bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	booking := map[string]any{
		"showtime":     "st-1-1",
		"seats_json":   []model.SeatRef{{Row: 1, Number: 3}, {Row: 1, Number: 4}},
		"snack_total":  400,
		"ticket_total": 360,
	}

	resp = postBooking("", booking)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postBooking("not-a-jwt", booking)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postBooking(token, booking)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "confirmed", created["status"])
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, float64(760), created["grand_total"])

	resp = postBooking(token, map[string]any{"showtime": "", "seats_json": []model.SeatRef{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
