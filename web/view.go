package web

import (
	"github.com/s0up4200/filmreel/fetcher"
	"github.com/s0up4200/filmreel/movies"
)

// View is what the page shows for a given controller state
type View int

const (
	ViewLoading View = iota
	ViewPopulated
	ViewEmpty
	ViewErrored
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewPopulated:
		return "populated"
	case ViewEmpty:
		return "empty"
	case ViewErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// ViewOf derives the view. Loading wins over everything, an error wins over
// the list.
func ViewOf(state fetcher.State) View {
	switch {
	case state.IsLoading():
		return ViewLoading
	case state.HasError():
		return ViewErrored
	case len(state.Movies) > 0:
		return ViewPopulated
	default:
		return ViewEmpty
	}
}

// pageData feeds the page template
type pageData struct {
	View        View
	State       fetcher.State
	Movies      []movies.Movie
	Filter      string
	FilterError string
	Version     string
}

// ShowList is true whenever the collection has entries and nothing is
// loading, so manual entries stay visible next to an error
func (p pageData) ShowList() bool {
	return p.View != ViewLoading && len(p.State.Movies) > 0
}

// ShowCancel mirrors the list: the button is hidden while a request runs
func (p pageData) ShowCancel() bool {
	return p.View != ViewLoading
}
