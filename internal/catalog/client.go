package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/cinema-booking-client/internal/model"
)

// Client calls the catalog REST API.  All methods take a context and
// return either the decoded payload or a sentinel error from this
// package; raw transport errors never escape.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for the API rooted at base (for example
// "http://localhost:8080/v1").  A non-positive timeout falls back to
// ten seconds.
func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// MovieFilter narrows GetMovies.  Zero values mean "no filter".
type MovieFilter struct {
	Showing *bool
	Genre   string
	Search  string
}

// ShowtimeFilter narrows GetShowtimes by movie or by date.
type ShowtimeFilter struct {
	MovieID string
	Date    string
}

// GetMovies lists movies matching the filter.
func (c *Client) GetMovies(ctx context.Context, f MovieFilter) ([]model.Movie, error) {
	q := url.Values{}
	if f.Showing != nil {
		q.Set("showing", fmt.Sprintf("%t", *f.Showing))
	}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var out []model.Movie
	if err := c.getList(ctx, "/movies", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMovie fetches one movie by id.
func (c *Client) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	var m model.Movie
	if err := c.getOne(ctx, "/movies/"+url.PathEscape(id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetShowtimes lists showtimes, optionally filtered by movie or date.
func (c *Client) GetShowtimes(ctx context.Context, f ShowtimeFilter) ([]model.ShowtimeInfo, error) {
	q := url.Values{}
	if f.MovieID != "" {
		q.Set("movie", f.MovieID)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	var out []model.ShowtimeInfo
	if err := c.getList(ctx, "/showtimes", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetShowtime fetches one showtime by id.
func (c *Client) GetShowtime(ctx context.Context, id string) (*model.ShowtimeInfo, error) {
	var st model.ShowtimeInfo
	if err := c.getOne(ctx, "/showtimes/"+url.PathEscape(id), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetSeatAvailability fetches the hall layout and booked seats for a
// showtime.
func (c *Client) GetSeatAvailability(ctx context.Context, showtimeID string) (*model.SeatAvailability, error) {
	var av model.SeatAvailability
	if err := c.getOne(ctx, "/showtimes/"+url.PathEscape(showtimeID)+"/seats", &av); err != nil {
		return nil, err
	}
	return &av, nil
}

// GetSnacks lists the concession menu.
func (c *Client) GetSnacks(ctx context.Context) ([]model.Snack, error) {
	var out []model.Snack
	if err := c.getList(ctx, "/snacks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNews lists published news entries.
func (c *Client) GetNews(ctx context.Context) ([]model.NewsItem, error) {
	var out []model.NewsItem
	if err := c.getList(ctx, "/news", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGallery lists gallery photos.
func (c *Client) GetGallery(ctx context.Context) ([]model.GalleryItem, error) {
	var out []model.GalleryItem
	if err := c.getList(ctx, "/gallery", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs one GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}

// getOne decodes a single-record response.
func (c *Client) getOne(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// getList decodes a collection response.  List endpoints answer with
// either a bare JSON array or a paginated {"count": n, "results":
// [...]} envelope; both shapes are normalized here so ambiguity never
// reaches the orchestrator.
func (c *Client) getList(ctx context.Context, path string, q url.Values, out any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, err)
		}
		if env.Results == nil {
			return fmt.Errorf("%w: %s: envelope without results", ErrUnavailable, path)
		}
		trimmed = env.Results
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, path, err)
	}
	return nil
}
