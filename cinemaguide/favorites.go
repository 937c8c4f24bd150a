package cinemaguide

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Favorites retrieves the current user's favorites list.
func (c *Client) Favorites(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.getJSON(ctx, "/favorites", nil, &movies); err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	c.logger.Debug().Int("count", len(movies)).Msg("Retrieved favorites")
	return movies, nil
}

// AddFavorite marks a movie as favorite. The API expects the id as a
// string in the request body.
func (c *Client) AddFavorite(ctx context.Context, id int64) error {
	payload := map[string]string{"id": strconv.FormatInt(id, 10)}
	if _, err := c.doRequest(ctx, http.MethodPost, "/favorites", nil, payload); err != nil {
		return fmt.Errorf("failed to add favorite %d: %w", id, err)
	}

	c.logger.Debug().Int64("movie_id", id).Msg("Added favorite")
	return nil
}

// RemoveFavorite removes a movie from the favorites list.
func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	endpoint := "/favorites/" + strconv.FormatInt(id, 10)
	if _, err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to remove favorite %d: %w", id, err)
	}

	c.logger.Debug().Int64("movie_id", id).Msg("Removed favorite")
	return nil
}
