package web

import (
	"html/template"
	"strings"
)

var pageFuncs = template.FuncMap{
	"lines": func(s string) []string {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	},
}

const pageTpl = `<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>filmreel</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:760px;margin:0 auto;padding:1rem}
section{margin-bottom:1.5rem}
.form-control{display:flex;flex-direction:column;margin-bottom:1rem}
.movie{border-bottom:1px solid #ddd;padding:.75rem 0}
.movie h2{margin:0 0 .25rem;font-size:1.2rem}
.movie h3{margin:0 0 .5rem;font-size:.9rem;color:#555}
.error{color:#b00020}
.muted{color:#777;font-size:.85rem}
</style>
<body data-view="{{.View}}" data-status="{{.State.Status}}" data-attempt="{{.State.Attempt}}" data-count="{{len .State.Movies}}" data-cancel="{{.State.CancelRetry}}">
<section>
  <form id="movie-form" class="movie-form" method="post" action="/movies">
    <div class="form-control">
      <label for="title">Title</label>
      <input type="text" id="title" name="title" />
    </div>
    <div class="form-control">
      <label for="openingText">Opening Text</label>
      <textarea id="openingText" name="openingText" rows="3"></textarea>
    </div>
    <div class="form-control">
      <label for="releaseDate">Release Date</label>
      <input type="date" id="releaseDate" name="releaseDate" />
    </div>
    <button type="submit">Add Movie</button>
  </form>
</section>

<section>
  <form id="filter-form" method="get" action="/">
    <input type="text" name="filter" value="{{.Filter}}" placeholder='Year > 1990 and hasText(Title, "the")' />
    <button type="submit">Filter</button>
  </form>
  {{- if .FilterError}}
  <p id="filter-error" class="error">{{.FilterError}}</p>
  {{- end}}
</section>

<section id="movies">
  {{- if eq .View.String "loading"}}
  <p id="loading">Loading...</p>
  {{- end}}

  {{- if .ShowList}}
  <ul id="movie-list">
    {{- range .Movies}}
    <li class="movie" data-id="{{.ID}}">
      <h2>{{.Title}}</h2>
      <h3>{{.ReleaseDate}}</h3>
      {{- range lines .OpeningText}}
      <p>{{.}}</p>
      {{- end}}
    </li>
    {{- else}}
    <li id="no-match" class="muted">No movies match the filter</li>
    {{- end}}
  </ul>
  {{- end}}

  {{- if eq .View.String "empty"}}
  <p id="empty">Found No Movies....</p>
  {{- end}}

  {{- if and (ne .View.String "loading") .State.HasError}}
  <p id="error" class="error">{{.State.ErrorMessage}}</p>
  {{- end}}

  {{- if .ShowCancel}}
  <form id="cancel-retry" method="post" action="/retry/cancel">
    <button type="submit">Cancel Retry</button>
  </form>
  {{- end}}

  <form id="refetch" method="post" action="/fetch">
    <button type="submit">Fetch Movies</button>
  </form>
</section>

<footer class="muted">filmreel {{.Version}}{{if .State.CancelRetry}} · retrying cancelled{{end}}</footer>

<script>
(function () {
  if (!("WebSocket" in window)) return;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  var d = document.body.dataset;
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data), st = msg.state;
    if (msg.view === d.view && st.status === d.status && String(st.attempt) === d.attempt &&
        String(st.movies.length) === d.count && String(st.cancelRetry) === d.cancel) {
      return;
    }
    location.reload();
  };
})();
</script>
</body>
</html>
`
