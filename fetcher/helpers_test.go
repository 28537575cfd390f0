package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/s0up4200/filmreel/swapi"
)

// fakeSource answers GetFilms from a scripted sequence of results. Once the
// script runs out it keeps returning the last entry.
type fakeSource struct {
	mu    sync.Mutex
	calls int
	seq   []fakeResult
}

type fakeResult struct {
	films []swapi.Film
	err   error
	// fn, when set, produces the result and may block on ctx
	fn func(ctx context.Context) ([]swapi.Film, error)
}

func (f *fakeSource) GetFilms(ctx context.Context) ([]swapi.Film, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	if idx >= len(f.seq) {
		idx = len(f.seq) - 1
	}
	r := f.seq[idx]
	f.mu.Unlock()

	if r.fn != nil {
		return r.fn(ctx)
	}
	return r.films, r.err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeSleeper records requested waits without waiting. onSleep runs before
// returning, with the 1-based count of waits so far.
type fakeSleeper struct {
	mu      sync.Mutex
	waits   []time.Duration
	onSleep func(n int)
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	n := len(s.waits)
	hook := s.onSleep
	s.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return ctx.Err()
}

func (s *fakeSleeper) Waits() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.waits))
	copy(out, s.waits)
	return out
}

func statusErr(code int) error {
	return &swapi.APIError{StatusCode: code, Message: http.StatusText(code)}
}

func sampleFilms(n int) []swapi.Film {
	films := make([]swapi.Film, 0, n)
	for i := 1; i <= n; i++ {
		films = append(films, swapi.Film{
			EpisodeID:    i,
			Title:        fmt.Sprintf("Episode %d", i),
			OpeningCrawl: fmt.Sprintf("Crawl %d", i),
			ReleaseDate:  fmt.Sprintf("19%02d-05-25", 76+i),
		})
	}
	return films
}
