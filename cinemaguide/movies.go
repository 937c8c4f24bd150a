package cinemaguide

import (
	"context"
	"fmt"
	"strconv"
)

// Movies retrieves the movie listing, optionally filtered by server-side
// query parameters.
func (c *Client) Movies(ctx context.Context, params MovieParams) ([]Movie, error) {
	var movies []Movie
	if err := c.getJSON(ctx, "/movie", params.values(), &movies); err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	c.logger.Debug().Int("count", len(movies)).Msg("Retrieved movies")
	return movies, nil
}

// TopMovies retrieves the fixed top-10 listing.
func (c *Client) TopMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.getJSON(ctx, "/movie/top10", nil, &movies); err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	c.logger.Debug().Int("count", len(movies)).Msg("Retrieved top movies")
	return movies, nil
}

// RandomMovie retrieves one random movie from the catalog.
func (c *Client) RandomMovie(ctx context.Context) (*Movie, error) {
	var movie Movie
	if err := c.getJSON(ctx, "/movie/random", nil, &movie); err != nil {
		return nil, fmt.Errorf("failed to get random movie: %w", err)
	}

	return &movie, nil
}

// Genres retrieves the distinct genre list.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var genres []string
	if err := c.getJSON(ctx, "/movie/genres", nil, &genres); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}

	return genres, nil
}

// MovieByID retrieves a single movie by its identifier.
func (c *Client) MovieByID(ctx context.Context, id int64) (*Movie, error) {
	var movie Movie
	if err := c.getJSON(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &movie); err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	return &movie, nil
}
