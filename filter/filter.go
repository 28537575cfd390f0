package filter

import (
	"strings"

	"github.com/s0up4200/filmreel/movies"
)

// Apply returns the movies matching f, in their original order
func Apply(f Filter, list []movies.Movie) []movies.Movie {
	matches := make([]movies.Movie, 0, len(list))
	for _, movie := range list {
		if f.Evaluate(movie) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// ApplyExpression compiles expression with c and applies it. A blank
// expression keeps every movie.
func ApplyExpression(c Compiler, expression string, list []movies.Movie) ([]movies.Movie, error) {
	if strings.TrimSpace(expression) == "" {
		return list, nil
	}

	f, err := c.Compile(expression)
	if err != nil {
		return nil, err
	}
	return Apply(f, list), nil
}
