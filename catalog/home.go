package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinectl/cinemaguide"
)

// HomeView bundles the snapshots the home screen renders.
type HomeView struct {
	Top    []cinemaguide.Movie
	Random *cinemaguide.Movie
	Genres []string
}

// FetchHome fetches the top list, a random pick and the genre list
// concurrently. Each underlying fetch still issues exactly one call; only
// the composition fans out.
func (c *Catalog) FetchHome(ctx context.Context) (*HomeView, error) {
	g, ctx := errgroup.WithContext(ctx)
	view := &HomeView{}

	g.Go(func() error {
		top, err := c.FetchTop(ctx)
		if err != nil {
			return err
		}
		view.Top = top
		return nil
	})
	g.Go(func() error {
		random, err := c.FetchRandom(ctx)
		if err != nil {
			return err
		}
		view.Random = random
		return nil
	})
	g.Go(func() error {
		genres, err := c.FetchGenres(ctx)
		if err != nil {
			return err
		}
		view.Genres = genres
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}
