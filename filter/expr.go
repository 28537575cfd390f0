package filter

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/filmreel/movies"
)

const dateLayout = "2006-01-02"

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 16),
	}
	addHelperFunctions(c.helperFuncs)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Err:        ErrEmptyExpression,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type-check against a zero movie so field typos fail here, not per movie
	env := movieEnvironment(movies.Movie{})
	maps.Copy(env, c.helperFuncs)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a movie. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie movies.Movie) bool {
	env := movieEnvironment(movie)
	maps.Copy(env, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	matched, _ := result.(bool)
	return matched
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func addHelperFunctions(env map[string]any) {
	env["parseDate"] = parseDate
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// movieEnvironment exposes a movie's fields and the helpers bound to it
func movieEnvironment(movie movies.Movie) map[string]any {
	released := parseDate(movie.ReleaseDate)

	env := make(map[string]any, 24)
	env["Movie"] = movie
	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["OpeningText"] = movie.OpeningText
	env["ReleaseDate"] = movie.ReleaseDate
	env["Year"] = releaseYear(movie)
	env["Released"] = released

	env["releasedBefore"] = func(date string) bool {
		return !released.IsZero() && released.Before(parseDate(date))
	}
	env["releasedAfter"] = func(date string) bool {
		return !released.IsZero() && released.After(parseDate(date))
	}
	env["crawlMentions"] = func(word string) bool {
		return strings.Contains(strings.ToLower(movie.OpeningText), strings.ToLower(word))
	}

	return env
}

// parseDate returns the zero time for anything that is not YYYY-MM-DD
func parseDate(dateStr string) time.Time {
	t, _ := time.Parse(dateLayout, strings.TrimSpace(dateStr))
	return t
}

func releaseYear(movie movies.Movie) int {
	year, err := strconv.Atoi(movie.Year())
	if err != nil {
		return 0
	}
	return year
}
