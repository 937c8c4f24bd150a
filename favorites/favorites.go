// Package favorites holds the user's favorited movies and the
// add/remove/toggle operations over them. Unlike the original front-end,
// failures are returned to the caller instead of being swallowed;
// favorites may be non-critical, but the caller decides that.
package favorites

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinectl/cinemaguide"
)

// Favorites is the favorites state container.
type Favorites struct {
	mu     sync.Mutex
	api    *cinemaguide.Client
	logger zerolog.Logger

	movies  []cinemaguide.Movie
	loaded  bool
	lastErr string
}

// New creates a favorites container backed by the given client.
func New(api *cinemaguide.Client, logger zerolog.Logger) *Favorites {
	return &Favorites{api: api, logger: logger}
}

// Fetch retrieves the favorites list and replaces the held copy.
func (f *Favorites) Fetch(ctx context.Context) ([]cinemaguide.Movie, error) {
	movies, err := f.api.Favorites(ctx)
	if err != nil {
		return nil, f.fail("fetch favorites", err)
	}
	if movies == nil {
		movies = []cinemaguide.Movie{}
	}

	f.mu.Lock()
	f.movies = movies
	f.loaded = true
	f.lastErr = ""
	f.mu.Unlock()
	return movies, nil
}

// Add marks a movie as favorite, then unconditionally refetches the list.
func (f *Favorites) Add(ctx context.Context, id int64) error {
	if err := f.api.AddFavorite(ctx, id); err != nil {
		return f.fail("add favorite", err)
	}

	f.logger.Debug().Int64("movie_id", id).Msg("Added to favorites")
	_, err := f.Fetch(ctx)
	return err
}

// Remove deletes a movie from the favorites. The local copy is filtered
// optimistically before the list is refetched; if the refetch fails the
// optimistic state stands and the refetch error is returned.
func (f *Favorites) Remove(ctx context.Context, id int64) error {
	if err := f.api.RemoveFavorite(ctx, id); err != nil {
		return f.fail("remove favorite", err)
	}

	f.mu.Lock()
	kept := f.movies[:0:0]
	for _, movie := range f.movies {
		if movie.ID != id {
			kept = append(kept, movie)
		}
	}
	f.movies = kept
	f.mu.Unlock()

	f.logger.Debug().Int64("movie_id", id).Msg("Removed from favorites")
	_, err := f.Fetch(ctx)
	return err
}

// Toggle adds the movie when it is absent from the held list and removes
// it when present. It reports whether the movie ended up favorited.
func (f *Favorites) Toggle(ctx context.Context, movie cinemaguide.Movie) (bool, error) {
	f.mu.Lock()
	loaded := f.loaded
	f.mu.Unlock()

	if !loaded {
		if _, err := f.Fetch(ctx); err != nil {
			return false, err
		}
	}

	if f.IsFavorite(movie.ID) {
		return false, f.Remove(ctx, movie.ID)
	}
	return true, f.Add(ctx, movie.ID)
}

// IsFavorite reports membership by identifier equality in the held list.
func (f *Favorites) IsFavorite(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, movie := range f.movies {
		if movie.ID == id {
			return true
		}
	}
	return false
}

// Movies returns the held favorites list, or nil before the first fetch.
func (f *Favorites) Movies() []cinemaguide.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movies
}

// LastError returns the most recent failure message, or "".
func (f *Favorites) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Favorites) fail(op string, err error) error {
	message := cinemaguide.ErrorMessage(err)
	f.mu.Lock()
	f.lastErr = message
	f.mu.Unlock()
	f.logger.Error().Str("operation", op).Str("error", message).Msg("Favorites operation failed")
	return err
}
