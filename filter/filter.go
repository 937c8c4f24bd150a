// Package filter compiles expr-language predicates over catalog movies,
// used by the list command's --filter flag. Expressions see one movie at
// a time, e.g.:
//
//	Rating >= 7.5 && "drama" in Genres
//	ReleaseYear < 2000 || hasGenre("western")
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinectl/cinemaguide"
)

// Filter is a compiled movie predicate.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and type-checks an expression. Errors are reported here,
// before any network call happens.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("filter expression is empty")
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(cinemaguide.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the predicate against one movie.
func (f *Filter) Match(movie cinemaguide.Movie) (bool, error) {
	output, err := expr.Run(f.program, environment(movie))
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to a boolean")
	}
	return result, nil
}

// Apply returns the movies matching the predicate, preserving order.
func (f *Filter) Apply(movies []cinemaguide.Movie) ([]cinemaguide.Movie, error) {
	var matched []cinemaguide.Movie
	for _, movie := range movies {
		ok, err := f.Match(movie)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, movie)
		}
	}
	return matched, nil
}

// environment exposes one movie's fields plus a few helpers to the
// expression.
func environment(movie cinemaguide.Movie) map[string]any {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	return map[string]any{
		"ID":            movie.ID,
		"Title":         movie.Title,
		"OriginalTitle": movie.OriginalTitle,
		"ReleaseYear":   movie.ReleaseYear,
		"Genres":        genres,
		"Rating":        movie.TmdbRating,
		"Runtime":       movie.Runtime,
		"Director":      movie.Director,

		"hasGenre": func(genre string) bool {
			for _, g := range genres {
				if strings.EqualFold(g, genre) {
					return true
				}
			}
			return false
		},
		"titleContains": func(substr string) bool {
			return strings.Contains(strings.ToLower(movie.Title), strings.ToLower(substr))
		},
	}
}
