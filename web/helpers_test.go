package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/filter"
	"github.com/s0up4200/filmreel/movies"
)

// stubController serves a fixed state and records what handlers asked for
type stubController struct {
	mu        sync.Mutex
	state     fetcher.State
	added     []movies.Movie
	cancelled bool
	starts    int
	panics    bool
}

func (c *stubController) Snapshot() fetcher.State {
	if c.panics {
		panic("snapshot exploded")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *stubController) Start(ctx context.Context) <-chan error {
	c.mu.Lock()
	c.starts++
	c.mu.Unlock()

	done := make(chan error, 1)
	done <- nil
	close(done)
	return done
}

func (c *stubController) CancelRetry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelled = true
	c.state.CancelRetry = true
}

func (c *stubController) AddMovie(title, openingText, releaseDate string) movies.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := movies.Movie{ID: len(c.added) + 1, Title: title, OpeningText: openingText, ReleaseDate: releaseDate}
	c.added = append(c.added, m)
	return m
}

func (c *stubController) Subscribe() (<-chan fetcher.State, func()) {
	ch := make(chan fetcher.State, 1)
	ch <- c.Snapshot()
	return ch, func() {}
}

func newTestServer(ctrl Controller, opts ...func(*Config)) *Server {
	cfg := Config{Addr: "127.0.0.1:0", Version: "test"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewServer(cfg, ctrl, filter.NewExprCompiler(filter.WithCache(8)), zerolog.Nop())
}

func serve(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func parsePage(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	return doc
}

var sampleMovies = []movies.Movie{
	{ID: 4, Title: "A New Hope", OpeningText: "It is a period of civil war.\r\nRebel spaceships, striking\r\n\r\nfrom a hidden base", ReleaseDate: "1977-05-25"},
	{ID: 5, Title: "The Empire Strikes Back", OpeningText: "It is a dark time for the Rebellion.", ReleaseDate: "1980-05-17"},
	{ID: 1, Title: "The Phantom Menace", OpeningText: "Turmoil has engulfed the Galactic Republic.", ReleaseDate: "1999-05-19"},
}
