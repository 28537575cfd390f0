package movies

import (
	"fmt"
	"strings"
)

// Formatter defines the interface for formatting movie output
type Formatter interface {
	FormatMovieList(movies []Movie, options FormatOptions) string
}

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowOpeningText bool
	// MaxOpeningLines caps the opening crawl lines printed per movie, 0 means no limit
	MaxOpeningLines int
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats a list of movies for console display
func (f *ConsoleFormatter) FormatMovieList(movies []Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return "Found No Movies...."
	}

	var sb strings.Builder

	sb.WriteString("\nMovie")
	if len(movies) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, movie, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// formatMovie formats a single movie entry
func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── #%d %s", prefix, movie.ID, movie.Title)
	if year := movie.Year(); year != "" {
		fmt.Fprintf(sb, " (%s)", year)
	}
	sb.WriteString("\n")

	indent := "│   "
	if isLast {
		indent = "    "
	}

	if movie.ReleaseDate != "" {
		fmt.Fprintf(sb, "%sReleased: %s\n", indent, movie.ReleaseDate)
	}

	if !options.ShowOpeningText || strings.TrimSpace(movie.OpeningText) == "" {
		return
	}

	lines := openingLines(movie.OpeningText)
	truncated := false
	if options.MaxOpeningLines > 0 && len(lines) > options.MaxOpeningLines {
		lines = lines[:options.MaxOpeningLines]
		truncated = true
	}
	for _, line := range lines {
		fmt.Fprintf(sb, "%s%s\n", indent, line)
	}
	if truncated {
		fmt.Fprintf(sb, "%s...\n", indent)
	}
}

// openingLines splits an opening crawl into its non-empty lines.
// Upstream crawls use CRLF line endings.
func openingLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
