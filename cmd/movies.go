package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinectl/cinemaguide"
	"github.com/s0up4200/cinectl/filter"
	"github.com/s0up4200/cinectl/movieutil"
)

var (
	listGenre   string
	listTitle   string
	filterExpr  string
	showDetails bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies from the catalog",
	Long: `List movies from the catalog, optionally narrowed server-side by genre
or title, and optionally filtered client-side with a filter expression, e.g.:

  cinectl list --genre drama
  cinectl list --filter 'Rating >= 7.5 && ReleaseYear > 2010'`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listGenre, "genre", "g", "", "filter by genre (server-side)")
	listCmd.Flags().StringVarP(&listTitle, "title", "t", "", "filter by title (server-side)")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
	listCmd.Flags().BoolVar(&showDetails, "details", false, "show movie details")
}

func runList(cmd *cobra.Command, args []string) error {
	// Parse the filter before fetching anything
	var movieFilter *filter.Filter
	if filterExpr != "" {
		var err error
		movieFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	movies, err := catalogStore.FetchMovies(ctx, cinemaguide.MovieParams{
		Genre: listGenre,
		Title: listTitle,
	})
	if err != nil {
		return err
	}

	if movieFilter != nil {
		movies, err = movieFilter.Apply(movies)
		if err != nil {
			return err
		}
	}

	if len(movies) == 0 {
		fmt.Println("No movies found.")
		return nil
	}

	fmt.Printf("\nFound %d movies:\n", len(movies))
	fmt.Println(strings.Repeat("-", 80))
	for _, movie := range movies {
		printMovie(movie, showDetails)
	}

	return nil
}

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top-10 movies",
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := catalogStore.FetchTop(context.Background())
		if err != nil {
			return err
		}

		for i, movie := range movies {
			fmt.Printf("%2d. %s (%d) — %s\n", i+1, movie.Title, movie.ReleaseYear,
				movieutil.FormatRating(movie.TmdbRating))
		}
		return nil
	},
}

// randomCmd represents the random command
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show one random movie",
	RunE: func(cmd *cobra.Command, args []string) error {
		movie, err := catalogStore.FetchRandom(context.Background())
		if err != nil {
			return err
		}

		printMovie(*movie, true)
		return nil
	},
}

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the available genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := catalogStore.FetchGenres(context.Background())
		if err != nil {
			return err
		}

		for _, genre := range genres {
			fmt.Printf("• %s\n", movieutil.GenreTitle(genre))
		}
		return nil
	},
}

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show one movie by its identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie id %q: must be a number", args[0])
		}

		movie, err := catalogStore.FetchByID(context.Background(), id)
		if err != nil {
			return err
		}

		printMovie(*movie, true)
		return nil
	},
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		movies, err := catalogStore.SearchByTitle(context.Background(), query)
		if err != nil {
			return err
		}

		if len(movies) == 0 {
			fmt.Println("No movies found.")
			return nil
		}

		for _, movie := range movies {
			printMovie(movie, false)
		}
		return nil
	},
}

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home overview (top ten, random pick, genres)",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := catalogStore.FetchHome(context.Background())
		if err != nil {
			return err
		}

		fmt.Println("Random pick:")
		printMovie(*view.Random, true)

		fmt.Println("\nTop 10:")
		for i, movie := range view.Top {
			fmt.Printf("%2d. %s (%d) — %s\n", i+1, movie.Title, movie.ReleaseYear,
				movieutil.FormatRating(movie.TmdbRating))
		}

		titles := make([]string, 0, len(view.Genres))
		for _, genre := range view.Genres {
			titles = append(titles, movieutil.GenreTitle(genre))
		}
		fmt.Printf("\nGenres: %s\n", strings.Join(titles, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(homeCmd)
}

// printMovie renders one movie line, with an optional detail block.
func printMovie(movie cinemaguide.Movie, details bool) {
	rating := movieutil.FormatRating(movie.TmdbRating)
	fmt.Printf("• %s (%d) [%s %s]\n", movie.Title, movie.ReleaseYear,
		rating, movieutil.RatingColor(movie.TmdbRating))

	if !details {
		return
	}
	if len(movie.Genres) > 0 {
		titles := make([]string, 0, len(movie.Genres))
		for _, genre := range movie.Genres {
			titles = append(titles, movieutil.GenreTitle(genre))
		}
		fmt.Printf("  Genres: %s\n", strings.Join(titles, ", "))
	}
	if movie.Runtime > 0 {
		fmt.Printf("  Runtime: %s\n", movieutil.TimeFormat(movie.Runtime))
	}
	if movie.Director != "" {
		fmt.Printf("  Director: %s\n", movie.Director)
	}
	if movie.TrailerURL != "" {
		fmt.Printf("  Trailer: %s\n", movieutil.ConvertYoutubeURL(movie.TrailerURL))
	}
	if movie.Plot != "" {
		fmt.Printf("  %s\n", movie.Plot)
	}
}
