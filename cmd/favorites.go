package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the favorites list",
	Long:  `List, add, remove or toggle movies on the authenticated user's favorites list.`,
	RunE:  runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorited movies",
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a movie to the favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		if err := favStore.Add(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("✓ Added movie %d to favorites (%d total)\n", id, len(favStore.Movies()))
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a movie from the favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		if err := favStore.Remove(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("✓ Removed movie %d from favorites (%d total)\n", id, len(favStore.Movies()))
		return nil
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a movie on the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		movie, err := catalogStore.FetchByID(ctx, id)
		if err != nil {
			return err
		}

		added, err := favStore.Toggle(ctx, *movie)
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("✓ Added %q to favorites\n", movie.Title)
		} else {
			fmt.Printf("✓ Removed %q from favorites\n", movie.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	movies, err := favStore.Fetch(context.Background())
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}

	fmt.Printf("Favorites (%d):\n", len(movies))
	fmt.Println(strings.Repeat("-", 40))
	for _, movie := range movies {
		printMovie(movie, false)
	}
	return nil
}

func parseMovieID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid movie id %q: must be a number", arg)
	}
	return id, nil
}
