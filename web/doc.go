// Package web serves the filmreel browser UI and its JSON and websocket
// endpoints.
//
// The page is rendered on the server from a controller snapshot. A
// websocket at /ws pushes every state transition so an open page can
// reload itself while a fetch is retrying.
//
// Routes:
//
//	GET  /                 HTML page, optional ?filter=<expr>
//	POST /movies           add a movie from form fields
//	POST /retry/cancel     stop further retries
//	POST /fetch            start a new fetch
//	GET  /v1/movies        JSON state
//	GET  /v1/healthcheck   status and version
//	GET  /ws               websocket state stream
//	GET  /debug/vars       expvar metrics
package web
