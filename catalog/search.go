package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/s0up4200/cinectl/cinemaguide"
)

// minFilterQuery is the shortest query the derived filter acts on.
const minFilterQuery = 2

// SearchByTitle performs a server-side title search, truncated to the
// configured limit. It runs under its own flag so it never disturbs the
// main listing's loading indicator, and it does not touch the listing.
func (c *Catalog) SearchByTitle(ctx context.Context, query string) ([]cinemaguide.Movie, error) {
	c.mu.Lock()
	c.searching++
	c.lastErr = ""
	limit := c.searchLimit
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.searching--
		c.mu.Unlock()
	}()

	movies, err := c.api.Movies(ctx, cinemaguide.MovieParams{Title: query})
	if err != nil {
		return nil, c.fail("search by title", err)
	}

	if len(movies) > limit {
		movies = movies[:limit]
	}

	c.mu.Lock()
	c.results = movies
	c.mu.Unlock()
	return movies, nil
}

// Results returns the held search results.
func (c *Catalog) Results() []cinemaguide.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// Searching reports whether a title search is in flight.
func (c *Catalog) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching > 0
}

// Filter is the derived view over the already-fetched listing: a
// case-insensitive substring match on title when the query is at least
// two characters, otherwise the unfiltered listing. Purely a projection,
// never persisted.
func (c *Catalog) Filter(query string) []cinemaguide.Movie {
	c.mu.Lock()
	movies := c.movies
	c.mu.Unlock()

	if utf8.RuneCountInString(query) < minFilterQuery {
		return movies
	}

	needle := strings.ToLower(query)
	var filtered []cinemaguide.Movie
	for _, movie := range movies {
		if strings.Contains(strings.ToLower(movie.Title), needle) {
			filtered = append(filtered, movie)
		}
	}
	return filtered
}
