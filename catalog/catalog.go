// Package catalog holds the client-side snapshot of the movie catalog:
// the current listing, the top list, a random pick, the genre list and a
// single-lookup result. Each fetch overwrites its field wholesale; nothing
// is ever merged.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinectl/cinemaguide"
)

// DefaultSearchLimit caps the title-search result list.
const DefaultSearchLimit = 5

// Catalog is the catalog state container.
type Catalog struct {
	mu     sync.Mutex
	api    *cinemaguide.Client
	logger zerolog.Logger

	movies  []cinemaguide.Movie
	top     []cinemaguide.Movie
	random  *cinemaguide.Movie
	byID    *cinemaguide.Movie
	genres  []string
	results []cinemaguide.Movie

	// loading is a depth counter so concurrent fetches (the home fan-out)
	// keep the flag raised until the last one finishes.
	loading     int
	searching   int
	lastErr     string
	searchLimit int
}

// New creates a catalog container backed by the given client.
func New(api *cinemaguide.Client, logger zerolog.Logger) *Catalog {
	return &Catalog{
		api:         api,
		logger:      logger,
		searchLimit: DefaultSearchLimit,
	}
}

// SetSearchLimit overrides the title-search result cap.
func (c *Catalog) SetSearchLimit(limit int) {
	if limit > 0 {
		c.mu.Lock()
		c.searchLimit = limit
		c.mu.Unlock()
	}
}

// FetchMovies retrieves the movie listing, optionally filtered
// server-side, and replaces the held listing.
func (c *Catalog) FetchMovies(ctx context.Context, params cinemaguide.MovieParams) ([]cinemaguide.Movie, error) {
	c.begin()
	defer c.end()

	movies, err := c.api.Movies(ctx, params)
	if err != nil {
		return nil, c.fail("fetch movies", err)
	}

	c.mu.Lock()
	c.movies = movies
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(movies)).Str("genre", params.Genre).Str("title", params.Title).
		Msg("Catalog listing updated")
	return movies, nil
}

// FetchByGenre is a convenience wrapper over FetchMovies.
func (c *Catalog) FetchByGenre(ctx context.Context, genre string) ([]cinemaguide.Movie, error) {
	return c.FetchMovies(ctx, cinemaguide.MovieParams{Genre: genre})
}

// FetchTop retrieves the fixed top-10 listing.
func (c *Catalog) FetchTop(ctx context.Context) ([]cinemaguide.Movie, error) {
	c.begin()
	defer c.end()

	movies, err := c.api.TopMovies(ctx)
	if err != nil {
		return nil, c.fail("fetch top movies", err)
	}

	c.mu.Lock()
	c.top = movies
	c.mu.Unlock()
	return movies, nil
}

// FetchRandom retrieves one random movie.
func (c *Catalog) FetchRandom(ctx context.Context) (*cinemaguide.Movie, error) {
	c.begin()
	defer c.end()

	movie, err := c.api.RandomMovie(ctx)
	if err != nil {
		return nil, c.fail("fetch random movie", err)
	}

	c.mu.Lock()
	c.random = movie
	c.mu.Unlock()
	return movie, nil
}

// FetchGenres retrieves the distinct genre list.
func (c *Catalog) FetchGenres(ctx context.Context) ([]string, error) {
	c.begin()
	defer c.end()

	genres, err := c.api.Genres(ctx)
	if err != nil {
		return nil, c.fail("fetch genres", err)
	}

	c.mu.Lock()
	c.genres = genres
	c.mu.Unlock()
	return genres, nil
}

// FetchByID retrieves a single movie by identifier.
func (c *Catalog) FetchByID(ctx context.Context, id int64) (*cinemaguide.Movie, error) {
	c.begin()
	defer c.end()

	movie, err := c.api.MovieByID(ctx, id)
	if err != nil {
		return nil, c.fail(fmt.Sprintf("fetch movie %d", id), err)
	}

	c.mu.Lock()
	c.byID = movie
	c.mu.Unlock()
	return movie, nil
}

// begin raises the loading flag and clears any prior error.
func (c *Catalog) begin() {
	c.mu.Lock()
	c.loading++
	c.lastErr = ""
	c.mu.Unlock()
}

func (c *Catalog) end() {
	c.mu.Lock()
	c.loading--
	c.mu.Unlock()
}

// fail records a human-readable message and passes the error through.
func (c *Catalog) fail(op string, err error) error {
	message := cinemaguide.ErrorMessage(err)
	c.mu.Lock()
	c.lastErr = message
	c.mu.Unlock()
	c.logger.Error().Str("operation", op).Str("error", message).Msg("Catalog operation failed")
	return err
}

// Movies returns the held listing, or nil before the first fetch.
func (c *Catalog) Movies() []cinemaguide.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movies
}

// Top returns the held top list.
func (c *Catalog) Top() []cinemaguide.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.top
}

// Random returns the held random pick.
func (c *Catalog) Random() *cinemaguide.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.random
}

// Genres returns the held genre list.
func (c *Catalog) Genres() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genres
}

// ByID returns the held single-lookup result.
func (c *Catalog) ByID() *cinemaguide.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byID
}

// Loading reports whether any listing fetch is in flight.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

// LastError returns the most recent failure message, or "".
func (c *Catalog) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
