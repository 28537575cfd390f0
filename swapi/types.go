package swapi

import (
	"github.com/s0up4200/filmreel/movies"
)

// Film represents a single film record as returned by the listing endpoint
type Film struct {
	Title        string   `json:"title"`
	EpisodeID    int      `json:"episode_id"`
	OpeningCrawl string   `json:"opening_crawl"`
	Director     string   `json:"director,omitempty"`
	Producer     string   `json:"producer,omitempty"`
	ReleaseDate  string   `json:"release_date"`
	Characters   []string `json:"characters,omitempty"`
	URL          string   `json:"url,omitempty"`
	Created      string   `json:"created,omitempty"`
	Edited       string   `json:"edited,omitempty"`
}

// ToMovie converts a Film into the collection's Movie representation
func (f *Film) ToMovie() movies.Movie {
	return movies.Movie{
		ID:          f.EpisodeID,
		Title:       f.Title,
		OpeningText: f.OpeningCrawl,
		ReleaseDate: f.ReleaseDate,
	}
}

// FilmsResponse represents the listing endpoint's response body
type FilmsResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Film  `json:"results"`
}

// ToMovies maps every film in the response, preserving order
func ToMovies(films []Film) []movies.Movie {
	out := make([]movies.Movie, 0, len(films))
	for i := range films {
		out = append(out, films[i].ToMovie())
	}
	return out
}
