package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/movies"
)

func TestIndex_Empty(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Status: fetcher.StatusSucceeded, Movies: []movies.Movie{}}}
	rr := serve(t, newTestServer(ctrl).Handler(), http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := parsePage(t, rr)
	assert.Equal(t, "empty", doc.Find("body").AttrOr("data-view", ""))
	assert.Equal(t, "Found No Movies....", doc.Find("#empty").Text())
	assert.Zero(t, doc.Find("#movie-list").Length())
	assert.Zero(t, doc.Find("#loading").Length())
	assert.Zero(t, doc.Find("#error").Length())
	assert.Equal(t, 1, doc.Find("#cancel-retry").Length())
	assert.Equal(t, 1, doc.Find("#movie-form").Length())
}

func TestIndex_Loading(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Status: fetcher.StatusLoading, Movies: sampleMovies}}
	doc := parsePage(t, serve(t, newTestServer(ctrl).Handler(), http.MethodGet, "/", ""))

	assert.Equal(t, "Loading...", doc.Find("#loading").Text())
	assert.Zero(t, doc.Find("#movie-list").Length(), "list is hidden while loading")
	assert.Zero(t, doc.Find("#empty").Length())
	assert.Zero(t, doc.Find("#cancel-retry").Length(), "cancel button is hidden while loading")
}

func TestIndex_Populated(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Status: fetcher.StatusSucceeded, Movies: sampleMovies}}
	doc := parsePage(t, serve(t, newTestServer(ctrl).Handler(), http.MethodGet, "/", ""))

	items := doc.Find("#movie-list li.movie")
	require.Equal(t, 3, items.Length())
	assert.Equal(t, "A New Hope", items.First().Find("h2").Text())
	assert.Equal(t, "1977-05-25", items.First().Find("h3").Text())
	assert.Equal(t, "4", items.First().AttrOr("data-id", ""))
	assert.Equal(t, 3, items.First().Find("p").Length(), "blank crawl lines are dropped")

	assert.Zero(t, doc.Find("#empty").Length())
	assert.Zero(t, doc.Find("#error").Length())
	assert.Equal(t, 1, doc.Find("#cancel-retry").Length())
}

func TestIndex_ErroredKeepsManualMovies(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{
		Status:       fetcher.StatusFailed,
		ErrorMessage: fetcher.RetryExhaustedMessage,
		Movies:       []movies.Movie{{ID: 1, Title: "Fan edit"}},
	}}
	doc := parsePage(t, serve(t, newTestServer(ctrl).Handler(), http.MethodGet, "/", ""))

	assert.Equal(t, "errored", doc.Find("body").AttrOr("data-view", ""))
	assert.Equal(t, "Something went wrong ....Retrying", doc.Find("#error").Text())
	assert.Equal(t, 1, doc.Find("#movie-list li.movie").Length())
	assert.Zero(t, doc.Find("#empty").Length())
}

func TestIndex_Filter(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Status: fetcher.StatusSucceeded, Movies: sampleMovies}}
	h := newTestServer(ctrl).Handler()

	t.Run("narrows list", func(t *testing.T) {
		rr := serve(t, h, http.MethodGet, "/?filter="+url.QueryEscape(`Year < 1990`), "")
		require.Equal(t, http.StatusOK, rr.Code)

		doc := parsePage(t, rr)
		assert.Equal(t, 2, doc.Find("#movie-list li.movie").Length())
		assert.Equal(t, "Year < 1990", doc.Find(`#filter-form input[name="filter"]`).AttrOr("value", ""))
	})

	t.Run("no matches", func(t *testing.T) {
		doc := parsePage(t, serve(t, h, http.MethodGet, "/?filter="+url.QueryEscape(`Year > 3000`), ""))
		assert.Equal(t, 1, doc.Find("#no-match").Length())
		assert.Zero(t, doc.Find("#empty").Length(), "the collection itself is not empty")
	})

	t.Run("invalid expression", func(t *testing.T) {
		rr := serve(t, h, http.MethodGet, "/?filter="+url.QueryEscape(`Year >`), "")
		require.Equal(t, http.StatusBadRequest, rr.Code)

		doc := parsePage(t, rr)
		assert.Contains(t, doc.Find("#filter-error").Text(), "compilation error")
		assert.Equal(t, 3, doc.Find("#movie-list li.movie").Length())
	})
}

func TestAddMovie(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Movies: []movies.Movie{}}}
	h := newTestServer(ctrl).Handler()

	rr := serve(t, h, http.MethodPost, "/movies", "title=Rogue+One&openingText=&releaseDate=2016-12-16")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = serve(t, h, http.MethodPost, "/movies", "title=&openingText=&releaseDate=")
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	require.Len(t, ctrl.added, 2)
	assert.Equal(t, movies.Movie{ID: 1, Title: "Rogue One", ReleaseDate: "2016-12-16"}, ctrl.added[0])
	assert.Equal(t, movies.Movie{ID: 2}, ctrl.added[1])
}

func TestCancelRetry(t *testing.T) {
	ctrl := &stubController{}
	rr := serve(t, newTestServer(ctrl).Handler(), http.MethodPost, "/retry/cancel", "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.True(t, ctrl.cancelled)
}

func TestFetch(t *testing.T) {
	ctrl := &stubController{}
	rr := serve(t, newTestServer(ctrl).Handler(), http.MethodPost, "/fetch", "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	assert.Equal(t, 1, ctrl.starts)
}

func TestListMovies(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{
		Status:      fetcher.StatusSucceeded,
		Movies:      sampleMovies,
		CancelRetry: true,
		Attempt:     2,
	}}
	h := newTestServer(ctrl).Handler()

	rr := serve(t, h, http.MethodGet, "/v1/movies?filter="+url.QueryEscape(`hasPrefix(Title, "the")`), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body struct {
		View  string        `json:"view"`
		State fetcher.State `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	assert.Equal(t, "populated", body.View)
	assert.Equal(t, fetcher.StatusSucceeded, body.State.Status)
	assert.True(t, body.State.CancelRetry)
	assert.Equal(t, 2, body.State.Attempt)
	require.Len(t, body.State.Movies, 2)
	assert.Equal(t, "The Empire Strikes Back", body.State.Movies[0].Title)

	assert.Contains(t, rr.Body.String(), `"status": "succeeded"`)
	assert.Contains(t, rr.Body.String(), `"openingText"`)

	rr = serve(t, h, http.MethodGet, "/v1/movies?filter="+url.QueryEscape(`nope(`), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthcheck(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Status: fetcher.StatusFailed, Movies: sampleMovies}}
	rr := serve(t, newTestServer(ctrl).Handler(), http.MethodGet, "/v1/healthcheck", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Status     string `json:"status"`
		SystemInfo struct {
			Version    string `json:"version"`
			Fetch      string `json:"fetch"`
			MovieCount int    `json:"movie_count"`
		} `json:"system_info"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, "test", body.SystemInfo.Version)
	assert.Equal(t, "failed", body.SystemInfo.Fetch)
	assert.Equal(t, 3, body.SystemInfo.MovieCount)
}

func TestRoutingErrors(t *testing.T) {
	h := newTestServer(&stubController{}).Handler()

	rr := serve(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "could not be found")

	rr = serve(t, h, http.MethodDelete, "/movies", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), "DELETE method is not supported")
}

func TestIndex_FilterPlaceholderCompiles(t *testing.T) {
	ctrl := &stubController{state: fetcher.State{Status: fetcher.StatusSucceeded, Movies: sampleMovies}}
	h := newTestServer(ctrl).Handler()

	doc := parsePage(t, serve(t, h, http.MethodGet, "/", ""))
	example := doc.Find(`#filter-form input[name="filter"]`).AttrOr("placeholder", "")
	require.NotEmpty(t, example)

	rr := serve(t, h, http.MethodGet, "/?filter="+url.QueryEscape(example), "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, parsePage(t, rr).Find("#filter-error").Length())
}
