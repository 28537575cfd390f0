package web

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(s.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(s.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", s.indexHandler)
	router.HandlerFunc(http.MethodPost, "/movies", s.addMovieHandler)
	router.HandlerFunc(http.MethodPost, "/retry/cancel", s.cancelRetryHandler)
	router.HandlerFunc(http.MethodPost, "/fetch", s.fetchHandler)

	router.HandlerFunc(http.MethodGet, "/v1/movies", s.listMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", s.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/ws", s.websocketHandler)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return s.metrics(s.recoverPanic(s.rateLimit(router)))
}
