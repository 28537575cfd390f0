package web

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/filter"
	"github.com/s0up4200/filmreel/movies"
)

const maxFormBytes = 1 << 20

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	state := s.controller.Snapshot()
	expression := strings.TrimSpace(r.URL.Query().Get("filter"))

	data := pageData{
		View:    ViewOf(state),
		State:   state,
		Movies:  state.Movies,
		Filter:  expression,
		Version: s.cfg.Version,
	}

	status := http.StatusOK
	list, err := s.filterMovies(expression, state.Movies)
	if err != nil {
		status = http.StatusBadRequest
		data.FilterError = err.Error()
	} else {
		data.Movies = list
	}

	// Render into a buffer so a template error does not leave half a page
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) addMovieHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	s.controller.AddMovie(
		r.PostForm.Get("title"),
		r.PostForm.Get("openingText"),
		r.PostForm.Get("releaseDate"),
	)

	redirectHome(w, r)
}

func (s *Server) cancelRetryHandler(w http.ResponseWriter, r *http.Request) {
	s.controller.CancelRetry()
	redirectHome(w, r)
}

func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	done := s.controller.Start(s.baseCtx)

	go func() {
		if err := <-done; err != nil && !errors.Is(err, fetcher.ErrSuperseded) {
			s.logger.Debug().Err(err).Msg("Requested fetch ended with error")
		}
	}()

	redirectHome(w, r)
}

func (s *Server) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	state := s.controller.Snapshot()
	view := ViewOf(state)

	list, err := s.filterMovies(r.URL.Query().Get("filter"), state.Movies)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	state.Movies = list

	env := envelope{
		"state": state,
		"view":  view.String(),
	}
	if err := s.writeJSON(w, http.StatusOK, env, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	state := s.controller.Snapshot()

	env := envelope{
		"status": "available",
		"system_info": map[string]any{
			"version":     s.cfg.Version,
			"fetch":       state.Status.String(),
			"movie_count": len(state.Movies),
		},
	}

	if err := s.writeJSON(w, http.StatusOK, env, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) filterMovies(expression string, list []movies.Movie) ([]movies.Movie, error) {
	if s.compiler == nil {
		return list, nil
	}
	return filter.ApplyExpression(s.compiler, expression, list)
}
