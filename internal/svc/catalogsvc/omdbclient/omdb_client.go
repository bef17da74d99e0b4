// Package omdbclient looks up movie metadata from the OMDb HTTP API.
// The catalog service consumes it through the Client interface; every failure
// is one of the typed errors below so callers can report it and abort cleanly.
package omdbclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("omdb client not configured")
	// ErrTitleNotFound is returned when the API does not know the title.
	ErrTitleNotFound = errors.New("title not found")
	// ErrMalformedResponse is returned when the API response is missing
	// required fields or carries unparsable values.
	ErrMalformedResponse = errors.New("malformed api response")
	// ErrRequestFailed is returned on transport failures, timeouts and
	// non-200 responses.
	ErrRequestFailed = errors.New("api request failed")
)

// Client defines the interface for movie metadata lookup.
type Client interface {
	// Lookup returns a movie record populated from the external source.
	// The record's Title is the canonical title reported by the source.
	Lookup(ctx context.Context, title string) (domain.Movie, error)
}

// HTTPClientConfig holds configuration for the OMDb HTTP client.
type HTTPClientConfig struct {
	// APIURL is the OMDb endpoint
	APIURL string `env:"API_URL" default:"https://www.omdbapi.com/"`

	// APIKey authenticates against the API; without it lookups fail with
	// ErrNotConfigured
	APIKey string `env:"API_KEY" default:""`

	// Timeout bounds each lookup, in seconds
	Timeout int `env:"TIMEOUT" default:"10"`
}

// HTTPClient implements Client using HTTP requests against the OMDb API.
type HTTPClient struct {
	httpClient *http.Client
	log        logging.Logger
	cfg        HTTPClientConfig
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTPClient with the given configuration.
// If httpClient is nil, a client with the configured timeout is used.
func NewHTTPClient(cfg HTTPClientConfig, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		}
	}

	return &HTTPClient{
		httpClient: httpClient,
		log:        logging.GetLogger("svc.catalogsvc.omdb_client"),
		cfg:        cfg,
	}
}

type lookupResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	IMDbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	IMDbID     string `json:"imdbID"`
	Country    string `json:"Country"`
}

// Lookup implements Client.Lookup by querying the OMDb title endpoint.
func (c *HTTPClient) Lookup(ctx context.Context, title string) (mov domain.Movie, err error) {
	log := c.log.With(logging.Group("lookup", "title", title))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "lookup failed", "error", err)
		} else {
			log.DebugContext(ctx, "lookup succeeded", "imdbID", mov.IMDbID)
		}
	}()

	if c.cfg.APIKey == "" {
		return domain.Movie{}, ErrNotConfigured
	}

	reqURL, err := url.Parse(c.cfg.APIURL)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("parse api url: %w", err)
	}

	query := reqURL.Query()
	query.Set("apikey", c.cfg.APIKey)
	query.Set("t", title)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Movie{}, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Movie{}, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var payload lookupResponse

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Movie{}, errors.Join(ErrMalformedResponse, err)
	}

	if payload.Response == "False" {
		return domain.Movie{}, fmt.Errorf("%w: %s", ErrTitleNotFound, payload.Error)
	}

	return c.parseMovie(payload)
}

func (c *HTTPClient) parseMovie(payload lookupResponse) (domain.Movie, error) {
	if payload.Title == "" || payload.Year == "" || payload.IMDbRating == "" || payload.Poster == "" {
		return domain.Movie{}, fmt.Errorf("%w: incomplete data", ErrMalformedResponse)
	}

	rating, err := strconv.ParseFloat(payload.IMDbRating, 64)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%w: rating %q", ErrMalformedResponse, payload.IMDbRating)
	}

	if rating < domain.RatingMin || rating > domain.RatingMax {
		return domain.Movie{}, fmt.Errorf("%w: rating %v out of range", ErrMalformedResponse, rating)
	}

	year, err := strconv.Atoi(payload.Year)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%w: year %q", ErrMalformedResponse, payload.Year)
	}

	if year < domain.FirstMovieRelease || year > time.Now().Year() {
		return domain.Movie{}, fmt.Errorf("%w: year %d out of range", ErrMalformedResponse, year)
	}

	return domain.Movie{
		Title:     payload.Title,
		Year:      year,
		Rating:    rating,
		PosterURL: payload.Poster,
		IMDbID:    payload.IMDbID,
		Country:   payload.Country,
	}, nil
}
